package usecase

import (
	"context"

	"github.com/hamagardy/mandoubi-api/internal/domain/entity"
	"github.com/hamagardy/mandoubi-api/internal/domain/permission"
	"github.com/hamagardy/mandoubi-api/internal/domain/repository"
)

// Scope is the set of sales a caller may read: either the whole collection
// or one user's records. It is the single chokepoint for data isolation and
// is resolved before any query or aggregation runs.
type Scope struct {
	All    bool
	UserID string
}

// ResolveScope applies the visibility rules for a caller and an optional
// explicitly selected user:
//
//   - admin with a selection        -> that user's sales only
//   - admin without a selection     -> all sales
//   - member with viewAllSalesData  -> all sales, optionally narrowed by the
//     explicit selection
//   - any other member              -> the member's own sales, regardless of
//     what was selected
func ResolveScope(caller *entity.User, selectedUserID string) Scope {
	if caller.IsAdmin() {
		if selectedUserID != "" {
			return Scope{UserID: selectedUserID}
		}
		return Scope{All: true}
	}
	if permission.CanAccess(caller, permission.CapViewAllSalesData) {
		if selectedUserID != "" {
			return Scope{UserID: selectedUserID}
		}
		return Scope{All: true}
	}
	return Scope{UserID: caller.ID}
}

// fetchScoped loads the sales the scope allows.
func fetchScoped(ctx context.Context, repo repository.SaleRepository, scope Scope) ([]entity.Sale, error) {
	if scope.All {
		return repo.ListAll(ctx)
	}
	return repo.ListByUser(ctx, scope.UserID)
}
