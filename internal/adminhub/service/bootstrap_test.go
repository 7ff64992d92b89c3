package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
	"github.com/aussiebroadwan/adminhub/pkg/access"
)

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	req := domain.BootstrapData{
		CompanyName:      "Acme Widgets",
		AdminEmail:       "Root@Acme.io",
		AdminDisplayName: "Root",
		AdminPassword:    "bootstrap-pass",
	}

	t.Run("disabled without token", func(t *testing.T) {
		svc := &BootstrapService{Store: st}
		_, err := svc.Bootstrap(ctx, "", req)
		require.ErrorIs(t, err, ErrBootstrapDisabled)
	})

	svc := &BootstrapService{Store: st, Token: "s3cret", Clock: fixedClock(testNow)}

	t.Run("wrong token", func(t *testing.T) {
		_, err := svc.Bootstrap(ctx, "guess", req)
		require.ErrorIs(t, err, ErrBootstrapUnauthorized)
	})

	t.Run("invalid request", func(t *testing.T) {
		bad := req
		bad.CompanyName = " "
		_, err := svc.Bootstrap(ctx, "s3cret", bad)
		require.ErrorIs(t, err, ErrInvalidBootstrapRequest)

		bad = req
		bad.AdminPassword = "x"
		_, err = svc.Bootstrap(ctx, "s3cret", bad)
		require.ErrorIs(t, err, ErrWeakPassword)
	})

	res, err := svc.Bootstrap(ctx, "s3cret", req)
	require.NoError(t, err)

	c, err := st.Companies().GetCompany(ctx, res.CompanyID)
	require.NoError(t, err)
	require.Equal(t, "acme-widgets", c.Slug)
	require.Equal(t, "root@acme.io", c.AdminEmail)
	require.Equal(t, res.AdminUserID, c.AdminUserID)

	u, err := st.Users().GetUserByID(ctx, res.AdminUserID)
	require.NoError(t, err)
	require.Equal(t, access.RoleAdmin, u.Role)
	require.Equal(t, res.CompanyID, u.CompanyID)

	done, err := svc.IsBootstrapped(ctx)
	require.NoError(t, err)
	require.True(t, done)

	_, err = svc.Bootstrap(ctx, "s3cret", req)
	require.ErrorIs(t, err, ErrBootstrapAlready)
}
