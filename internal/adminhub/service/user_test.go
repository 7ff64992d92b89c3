package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/adminhub/pkg/access"
)

func TestSearchByEmail(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	c := seedCompany(t, st, "acme", "boss@acme.io")
	admin := seedUser(t, st, "boss@acme.io", "password123", access.RoleAdmin, c.ID)
	analyst := seedUser(t, st, "amy@acme.io", "password123", access.RoleAnalyst, c.ID)
	seedUser(t, st, "eve@other.io", "password123", access.RoleAdmin, "")

	svc := &UserService{Store: st, Policy: access.DefaultTenantPolicy}

	t.Run("same domain", func(t *testing.T) {
		u, err := svc.SearchByEmail(ctx, identityOf(admin), "AMY@acme.io")
		require.NoError(t, err)
		require.Equal(t, analyst.ID, u.ID)
	})

	t.Run("other domain is forbidden", func(t *testing.T) {
		_, err := svc.SearchByEmail(ctx, identityOf(admin), "eve@other.io")
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("analyst cannot search", func(t *testing.T) {
		_, err := svc.SearchByEmail(ctx, identityOf(analyst), "boss@acme.io")
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.SearchByEmail(ctx, identityOf(admin), "ghost@acme.io")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("partial email", func(t *testing.T) {
		_, err := svc.SearchByEmail(ctx, identityOf(admin), "amy")
		require.ErrorIs(t, err, ErrInvalidSearch)
	})
}

func TestSetRole(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	a := seedCompany(t, st, "alpha", "boss@alpha.io")
	b := seedCompany(t, st, "bravo", "boss@bravo.io")
	admin := seedUser(t, st, "boss@alpha.io", "password123", access.RoleAdmin, a.ID)
	member := seedUser(t, st, "new@alpha.io", "password123", access.RoleNone, a.ID)
	outsider := seedUser(t, st, "x@bravo.io", "password123", access.RoleNone, b.ID)

	svc := &UserService{Store: st, Policy: access.DefaultTenantPolicy, Clock: fixedClock(testNow)}

	u, err := svc.SetRole(ctx, identityOf(admin), member.ID, access.RoleAnalyst)
	require.NoError(t, err)
	require.Equal(t, access.RoleAnalyst, u.Role)

	stored, err := st.Users().GetUserByID(ctx, member.ID)
	require.NoError(t, err)
	require.Equal(t, access.RoleAnalyst, stored.Role)

	list, err := svc.ListByCompany(ctx, identityOf(admin), "")
	require.NoError(t, err)
	require.Len(t, list, 2)

	_, err = svc.SetRole(ctx, identityOf(admin), outsider.ID, access.RoleAnalyst)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.SetRole(ctx, identityOf(admin), admin.ID, access.RoleAnalyst)
	require.ErrorIs(t, err, ErrSelfDemotion)

	_, err = svc.SetRole(ctx, identityOf(admin), member.ID, access.Role("owner"))
	require.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.SetRole(ctx, identityOf(admin), "missing", access.RoleNone)
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.SetRole(ctx, identityOf(stored), admin.ID, access.RoleNone)
	require.ErrorIs(t, err, ErrForbidden)
}
