package rbac_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenithfinancial/portal/pkg/rbac"
)

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	t.Run("overrides defaults", func(t *testing.T) {
		t.Parallel()
		p, err := rbac.ParsePolicy([]byte(`
public_paths: ["/", "/status"]
role_prefixes:
  advisor: ["/advisor", "/research"]
`))
		require.NoError(t, err)
		assert.Equal(t, "/login", p.LoginPath)
		assert.True(t, p.IsPublic("/status"))
		assert.False(t, p.IsPublic("/healthz"))

		owner, ok := p.Owner("/research/notes")
		require.True(t, ok)
		assert.Equal(t, rbac.RoleAdvisor, owner)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		_, err := rbac.ParsePolicy([]byte("public_paths: [unterminated"))
		assert.ErrorIs(t, err, rbac.ErrInvalidPolicy)
	})

	t.Run("invalid policy", func(t *testing.T) {
		t.Parallel()
		_, err := rbac.ParsePolicy([]byte(`public_prefixes: ["/"]`))
		assert.ErrorIs(t, err, rbac.ErrInvalidPolicy)
	})
}

func TestFileSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("login_path: /signin\npublic_prefixes: [\"/signin\", \"/api/auth/\"]\n"), 0o600))

	p, err := rbac.LoadPolicy(context.Background(), rbac.NewFileSource(path))
	require.NoError(t, err)
	assert.Equal(t, "/signin", p.LoginPath)
	assert.Equal(t, rbac.Decision{Outcome: rbac.RedirectToLogin, Location: "/signin"}, p.Decide("/client", "", false))

	_, err = rbac.LoadPolicy(context.Background(), rbac.NewFileSource(filepath.Join(dir, "missing.yaml")))
	assert.ErrorIs(t, err, rbac.ErrPolicyNotFound)
}

func TestStaticSource(t *testing.T) {
	t.Parallel()

	base := rbac.DefaultPolicy()
	src := rbac.NewStaticSource(base)
	base.RolePrefixes[rbac.RoleClient] = []string{"/mutated"}

	p, err := rbac.LoadPolicy(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []string{"/client"}, p.RolePrefixes[rbac.RoleClient])

	p.PublicPaths[0] = "/changed"
	again, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/", again.PublicPaths[0])

	bad := rbac.DefaultPolicy()
	bad.LoginPath = ""
	_, err = rbac.LoadPolicy(context.Background(), rbac.NewStaticSource(bad))
	assert.ErrorIs(t, err, rbac.ErrInvalidPolicy)
}
