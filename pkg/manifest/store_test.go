// pkg/manifest/store_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Memory FS (afero)
// PURPOSE: Test manifest load/save, round-trips and error classification

package manifest

import (
	"testing"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const root = "/home/u/dotfiles"

func newMemStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll(root, 0755))
	return NewStore(filesystem.NewAferoFS(mem)), mem
}

func TestCreate_IsEmptyAndUnsaved(t *testing.T) {
	store, mem := newMemStore(t)

	m := Create(root)
	assert.Equal(t, root, m.Root)
	assert.True(t, m.IsEmpty())
	assert.NotNil(t, m.Files)

	exists, err := afero.Exists(mem, root+"/dotfiles.toml")
	require.NoError(t, err)
	assert.False(t, exists, "Create must not touch disk")
	assert.False(t, store.Exists(root))
}

func TestSave_EmptyManifestFormat(t *testing.T) {
	store, mem := newMemStore(t)

	require.NoError(t, store.Save(Create(root)))

	data, err := afero.ReadFile(mem, root+"/dotfiles.toml")
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "dotfiles_dir = '/home/u/dotfiles'")
	assert.Contains(t, content, "[files]")
	assert.True(t, store.Exists(root))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store, _ := newMemStore(t)

	original := Create(root)
	original.Add("bashrc", "/home/u/.bashrc")
	original.Add("gitconfig", "/home/u/.gitconfig")
	original.Add("init.vim", "/home/u/.config/nvim/init.vim")
	original.Add("it's", "/home/u/it's")

	require.NoError(t, store.Save(original))

	loaded, err := store.Load(root)
	require.NoError(t, err)
	assert.Equal(t, original.Root, loaded.Root)
	assert.Equal(t, original.Files, loaded.Files)

	// Saving what was loaded yields the same manifest again
	require.NoError(t, store.Save(loaded))
	reloaded, err := store.Load(root)
	require.NoError(t, err)
	assert.Equal(t, loaded, reloaded)
}

func TestSave_IsAtomic(t *testing.T) {
	store, mem := newMemStore(t)

	m := Create(root)
	m.Add("bashrc", "/home/u/.bashrc")
	require.NoError(t, store.Save(m))
	m.Add("vimrc", "/home/u/.vimrc")
	require.NoError(t, store.Save(m))

	entries, err := afero.ReadDir(mem, root)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files should be renamed away")
	assert.Equal(t, "dotfiles.toml", entries[0].Name())

	loaded, err := store.Load(root)
	require.NoError(t, err)
	assert.Len(t, loaded.Files, 2)
}

func TestSave_LeavesOtherFilesAlone(t *testing.T) {
	store, mem := newMemStore(t)
	require.NoError(t, afero.WriteFile(mem, root+"/dotfiles.toml.tmp", []byte("user data"), 0644))

	m := Create(root)
	m.Add("bashrc", "/home/u/.bashrc")
	require.NoError(t, store.Save(m))

	data, err := afero.ReadFile(mem, root+"/dotfiles.toml.tmp")
	require.NoError(t, err)
	assert.Equal(t, "user data", string(data))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		code    errors.ErrorCode
	}{
		{name: "missing file", content: nil, code: errors.ErrManifestRead},
		{name: "malformed toml", content: strPtr("dotfiles_dir = [unterminated"), code: errors.ErrManifestParse},
		{name: "wrong type", content: strPtr("dotfiles_dir = 42"), code: errors.ErrManifestParse},
		{name: "relative target", content: strPtr("dotfiles_dir = '/home/u/dotfiles'\n[files]\nbashrc = '.bashrc'\n"), code: errors.ErrManifestParse},
		{name: "name with separator", content: strPtr("dotfiles_dir = '/home/u/dotfiles'\n[files]\n'a/b' = '/home/u/.b'\n"), code: errors.ErrManifestParse},
		{name: "reserved name", content: strPtr("dotfiles_dir = '/home/u/dotfiles'\n[files]\n'dotfiles.toml' = '/home/u/.dotfiles.toml'\n"), code: errors.ErrManifestParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mem := newMemStore(t)
			if tt.content != nil {
				require.NoError(t, afero.WriteFile(mem, root+"/dotfiles.toml", []byte(*tt.content), 0644))
			}

			_, err := store.Load(root)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			assert.Equal(t, root+"/dotfiles.toml", errors.GetErrorDetails(err)["path"])
		})
	}
}

func TestLoad_HandEditedManifest(t *testing.T) {
	store, mem := newMemStore(t)
	content := `dotfiles_dir = "/somewhere/else"

[files]
"bashrc" = "/home/u/.bashrc"
`
	require.NoError(t, afero.WriteFile(mem, root+"/dotfiles.toml", []byte(content), 0644))

	m, err := store.Load(root)
	require.NoError(t, err)
	assert.Equal(t, root, m.Root, "root always follows the manifest location")
	assert.Equal(t, map[string]string{"bashrc": "/home/u/.bashrc"}, m.Files)
}

func TestLoad_MissingFilesTable(t *testing.T) {
	store, mem := newMemStore(t)
	require.NoError(t, afero.WriteFile(mem, root+"/dotfiles.toml", []byte("dotfiles_dir = '/home/u/dotfiles'\n"), 0644))

	m, err := store.Load(root)
	require.NoError(t, err)
	assert.NotNil(t, m.Files)
	assert.True(t, m.IsEmpty())
}

func TestSave_WriteError(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll(root, 0755))
	store := NewStore(filesystem.NewAferoFS(afero.NewReadOnlyFs(mem)))

	err := store.Save(Create(root))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestWrite))
}

func strPtr(s string) *string { return &s }
