// pkg/commands/internal/repository_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real FS (temp dir), testutil environment
// PURPOSE: Test repository root discovery order and Open errors

package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotman/pkg/config"
	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/manifest"
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/arthur-debert/dotman/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRoot_Order(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	cfg := config.Default()

	root, source, err := ResolveRoot(nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, env.DefaultRoot, root)
	assert.Equal(t, RootFromDefault, source)

	pointed := env.Home("src", "dots")
	require.NoError(t, manifest.WritePointer(env.FS, paths.PointerPath(), pointed))
	root, source, err = ResolveRoot(nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, pointed, root)
	assert.Equal(t, RootFromPointer, source)

	cfg.Repository.Root = "~/configured"
	root, source, err = ResolveRoot(nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, env.Home("configured"), root)
	assert.Equal(t, RootFromConfig, source)
}

func TestResolveRoot_RepositoryName(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	cfg := config.Default()
	cfg.Repository.Name = ".dots"

	root, _, err := ResolveRoot(nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, env.Home(".dots"), root)
}

func TestResolveRoot_CorruptPointer(t *testing.T) {
	testutil.NewTestEnvironment(t)
	path := paths.PointerPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("dotfiles_dir = "), 0644))

	_, _, err := ResolveRoot(nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestParse))
}

func TestOpen(t *testing.T) {
	t.Run("missing repository", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)

		_, err := Open(nil, nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRepoNotInitialized))
		assert.Equal(t, env.DefaultRoot, errors.GetErrorDetails(err)["root"])
	})

	t.Run("directory without manifest", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		require.NoError(t, os.MkdirAll(env.DefaultRoot, 0755))

		_, err := Open(nil, nil)
		assert.True(t, errors.IsErrorCode(err, errors.ErrManifestRead))
	})

	t.Run("loads manifest", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		require.NoError(t, os.MkdirAll(env.DefaultRoot, 0755))
		m := manifest.Create(env.DefaultRoot)
		m.Add("bashrc", env.Home(".bashrc"))
		require.NoError(t, manifest.NewStore(nil).Save(m))

		repo, err := Open(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, env.DefaultRoot, repo.Root)
		assert.Equal(t, RootFromDefault, repo.Source)
		assert.Equal(t, []string{"bashrc"}, repo.Manifest.Names())

		m.Add("vimrc", env.Home(".vimrc"))
		require.NoError(t, repo.Store.Save(m))
		require.NoError(t, repo.Reload())
		assert.Equal(t, 2, repo.Manifest.Len())
	})
}
