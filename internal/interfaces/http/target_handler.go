package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/hamagardy/mandoubi-api/internal/application/dto"
	"github.com/hamagardy/mandoubi-api/internal/application/usecase"
)

// TargetHandler handles monthly sales targets.
type TargetHandler struct {
	uc *usecase.TargetUseCase
}

// NewTargetHandler builds the handler.
func NewTargetHandler(uc *usecase.TargetUseCase) *TargetHandler {
	return &TargetHandler{uc: uc}
}

type setTargetRequest struct {
	Value decimal.Decimal `json:"value"` // IQD
}

type targetResponse struct {
	MonthIndex int             `json:"monthIndex"`
	Value      decimal.Decimal `json:"value"`
}

// Get returns the caller's target for one month index (0-11).
func (h *TargetHandler) Get(c *fiber.Ctx) error {
	month, err := c.ParamsInt("month")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month must be an integer 0-11"})
	}
	value, err := h.uc.GetTarget(c.Context(), GetUserID(c), month)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(targetResponse{MonthIndex: month, Value: value})
}

// Set writes the caller's target for one month index. Admin callers fan the
// value out to every user; partial failures come back in the response body.
func (h *TargetHandler) Set(c *fiber.Ctx) error {
	month, err := c.ParamsInt("month")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month must be an integer 0-11"})
	}
	var in setTargetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.SetTarget(c.Context(), GetUserID(c), month, in.Value)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
