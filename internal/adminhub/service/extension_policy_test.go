package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/adminhub/pkg/access"
)

func TestExtensionPolicy(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	a := seedCompany(t, st, "alpha", "boss@alpha.io")
	b := seedCompany(t, st, "bravo", "boss@bravo.io")
	admin := &access.Identity{UserID: "u1", Role: access.RoleAdmin, CompanyID: a.ID}
	analyst := &access.Identity{UserID: "u2", Role: access.RoleAnalyst, CompanyID: a.ID}

	svc := &ExtensionPolicyService{Store: st, Policy: access.DefaultTenantPolicy, Clock: fixedClock(testNow)}

	_, err := svc.Get(ctx, admin, a.ID)
	require.ErrorIs(t, err, ErrPolicyNotFound)

	p, err := svc.Put(ctx, admin, a.ID, json.RawMessage(` {"blocklist": ["x.com"]} `), nil)
	require.NoError(t, err)
	require.Equal(t, 1, p.Version)
	require.Equal(t, "u1", p.UpdatedBy)

	t.Run("version check", func(t *testing.T) {
		_, err := svc.Put(ctx, admin, a.ID, json.RawMessage(`{}`), ptr(0))
		require.ErrorIs(t, err, ErrPolicyVersionConflict)

		p, err := svc.Put(ctx, admin, a.ID, json.RawMessage(`{"metrics": true}`), ptr(1))
		require.NoError(t, err)
		require.Equal(t, 2, p.Version)
	})

	t.Run("analyst reads own but cannot write", func(t *testing.T) {
		got, err := svc.Get(ctx, analyst, "")
		require.NoError(t, err)
		require.Equal(t, 2, got.Version)
		require.JSONEq(t, `{"metrics": true}`, string(got.Document))

		_, err = svc.Put(ctx, analyst, a.ID, json.RawMessage(`{}`), nil)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin cannot write another tenant", func(t *testing.T) {
		_, err := svc.Put(ctx, admin, b.ID, json.RawMessage(`{}`), nil)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("document must be an object", func(t *testing.T) {
		for _, doc := range []string{``, `[]`, `"x"`, `{`} {
			_, err := svc.Put(ctx, admin, a.ID, json.RawMessage(doc), nil)
			require.ErrorIs(t, err, ErrInvalidPolicy, doc)
		}
	})
}
