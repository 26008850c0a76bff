// pkg/commands/list/list_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real FS (temp dir), testutil environment
// PURPOSE: Test the list report and per-entry link states

package list

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotman/pkg/commands/add"
	"github.com/arthur-debert/dotman/pkg/commands/initialize"
	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/linker"
	"github.com/arthur-debert/dotman/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_Empty(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	_, err := initialize.Init(initialize.InitOptions{})
	require.NoError(t, err)

	result, err := List(ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, env.DefaultRoot, result.Root)
	assert.NotNil(t, result.Entries)
	assert.Empty(t, result.Entries)
}

func TestList_States(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	_, err := initialize.Init(initialize.InitOptions{})
	require.NoError(t, err)

	for _, name := range []string{".a", ".b", ".c", ".d", ".e"} {
		env.WriteHomeFile(name, name)
		_, err := add.Add(add.AddOptions{Path: env.Home(name)})
		require.NoError(t, err)
	}

	// a: linked
	// b: target removed
	require.NoError(t, os.Remove(env.Home(".b")))
	// c: replaced by a real file
	require.NoError(t, os.Remove(env.Home(".c")))
	env.WriteHomeFile(".c", "real")
	// d: points elsewhere
	require.NoError(t, os.Remove(env.Home(".d")))
	require.NoError(t, os.Symlink(env.Home(".c"), env.Home(".d")))
	// e: repository copy deleted
	require.NoError(t, os.Remove(filepath.Join(env.DefaultRoot, "e")))

	result, err := List(ListOptions{})
	require.NoError(t, err)

	want := []struct {
		name  string
		state linker.EntryState
	}{
		{"a", linker.Linked},
		{"b", linker.NotLinked},
		{"c", linker.Conflict},
		{"d", linker.WrongTarget},
		{"e", linker.SourceMissing},
	}
	require.Len(t, result.Entries, len(want))
	for i, w := range want {
		assert.Equal(t, w.name, result.Entries[i].Name)
		assert.Equal(t, w.state, result.Entries[i].State, "entry %s", w.name)
		assert.Equal(t, filepath.Join(env.DefaultRoot, w.name), result.Entries[i].Source)
		assert.Equal(t, env.Home("."+w.name), result.Entries[i].Target)
	}

	// Read-only
	testutil.AssertNotExists(t, env.Home(".b"))
	testutil.AssertRegularFile(t, env.Home(".c"))
}

func TestList_RequiresRepository(t *testing.T) {
	testutil.NewTestEnvironment(t)

	_, err := List(ListOptions{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrRepoNotInitialized))
}
