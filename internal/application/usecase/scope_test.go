package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hamagardy/mandoubi-api/internal/application/usecase"
	"github.com/hamagardy/mandoubi-api/internal/domain/permission"
)

func TestResolveScopeAdmin(t *testing.T) {
	admin := adminUser("admin-1")

	assert.Equal(t, usecase.Scope{All: true}, usecase.ResolveScope(admin, ""))
	assert.Equal(t, usecase.Scope{UserID: "member-2"}, usecase.ResolveScope(admin, "member-2"))
}

func TestResolveScopeMemberWithViewAll(t *testing.T) {
	viewer := memberUser("member-1", permission.CapViewAllSalesData)

	assert.Equal(t, usecase.Scope{All: true}, usecase.ResolveScope(viewer, ""))
	assert.Equal(t, usecase.Scope{UserID: "member-2"}, usecase.ResolveScope(viewer, "member-2"))
}

func TestResolveScopePlainMemberIsPinnedToSelf(t *testing.T) {
	member := memberUser("member-1")

	// A selection must not widen a plain member's scope.
	assert.Equal(t, usecase.Scope{UserID: "member-1"}, usecase.ResolveScope(member, ""))
	assert.Equal(t, usecase.Scope{UserID: "member-1"}, usecase.ResolveScope(member, "member-2"))
	assert.Equal(t, usecase.Scope{UserID: "member-1"}, usecase.ResolveScope(member, "admin-1"))
}

func TestResolveScopeMemberWithNilPermissions(t *testing.T) {
	member := memberUser("member-1")
	member.Permissions = nil

	assert.Equal(t, usecase.Scope{UserID: "member-1"}, usecase.ResolveScope(member, "member-2"))
}
