package usecase_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hamagardy/mandoubi-api/internal/domain/entity"
	"github.com/hamagardy/mandoubi-api/internal/domain/permission"
	"github.com/hamagardy/mandoubi-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func adminUser(id string) *entity.User {
	return &entity.User{ID: id, Email: id + "@example.com", Name: id, Role: entity.RoleAdmin}
}

func memberUser(id string, caps ...string) *entity.User {
	perms := permission.DefaultMemberSet()
	for _, c := range caps {
		perms[c] = true
	}
	return &entity.User{ID: id, Email: id + "@example.com", Name: id, Role: entity.RoleMember, Permissions: perms}
}

func saleOn(id, userID, customer string, date time.Time, amount int64) *entity.Sale {
	s := &entity.Sale{
		ID:           id,
		UserID:       userID,
		CustomerName: customer,
		Items: []entity.SaleItem{{
			ItemID:   "item-" + id,
			Name:     "Product " + id,
			Price:    decimal.NewFromInt(amount),
			Quantity: 1,
		}},
		Date:   date,
		Status: entity.StatusNotVisited,
	}
	s.RecomputeTotal()
	return s
}
