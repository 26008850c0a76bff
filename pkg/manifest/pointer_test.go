// pkg/manifest/pointer_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Memory FS (afero)
// PURPOSE: Test the active repository pointer file

package manifest

import (
	"testing"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pointerPath = "/home/u/.config/dotman/repository.toml"

func TestPointer_WriteThenRead(t *testing.T) {
	fs := filesystem.NewMemory()

	require.NoError(t, WritePointer(fs, pointerPath, "/data/dots"))

	got, err := ReadPointer(fs, pointerPath)
	require.NoError(t, err)
	assert.Equal(t, "/data/dots", got)

	require.NoError(t, WritePointer(fs, pointerPath, "/data/other"))
	got, err = ReadPointer(fs, pointerPath)
	require.NoError(t, err)
	assert.Equal(t, "/data/other", got)
}

func TestPointer_Missing(t *testing.T) {
	_, err := ReadPointer(filesystem.NewMemory(), pointerPath)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestPointer_Invalid(t *testing.T) {
	tests := map[string]string{
		"malformed": "dotfiles_dir = ",
		"empty":     "",
		"relative":  "dotfiles_dir = 'dots'",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			mem := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(mem, pointerPath, []byte(content), 0644))

			_, err := ReadPointer(filesystem.NewAferoFS(mem), pointerPath)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrManifestParse))
		})
	}
}
