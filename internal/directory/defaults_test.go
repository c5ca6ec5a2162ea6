package directory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rinhomdf/userdir/internal/config"
	"github.com/rinhomdf/userdir/internal/directory/users"
)

func TestSetupDefaults(t *testing.T) {
	content := `common:
  seed:
    users:
      - name: John Doe
        email: john@example.com
        profile:
          age: 30
          address: 123 Main St
          phone: 555-0100
      - name: Jane Doe
        email: jane@example.com
`
	path := filepath.Join(t.TempDir(), "userdir.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	require.NoError(t, config.LoadFromFile(path))

	svc := users.NewUserService(users.NewUserStore())
	require.NoError(t, SetupDefaults(context.Background(), svc))

	list, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, "John Doe", list[0].Name)

	first, err := svc.GetUserByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, first.Profile)
	assert.Equal(t, 30, first.Profile.Age)

	second, err := svc.GetUserByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Nil(t, second.Profile)
}

func TestSetupDefaults_NoSeedUsers(t *testing.T) {
	config.LoadDefault()

	svc := users.NewUserService(users.NewUserStore())
	require.NoError(t, SetupDefaults(context.Background(), svc))

	list, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
