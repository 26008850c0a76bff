// pkg/output/renderer_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test rendering of command results in text, json and yaml

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/arthur-debert/dotman/pkg/commands"
	"github.com/arthur-debert/dotman/pkg/config"
	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/linker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleList() *commands.ListResult {
	return &commands.ListResult{
		Root: "/home/u/dotfiles",
		Entries: []commands.ListEntry{
			{Name: "bashrc", Source: "/home/u/dotfiles/bashrc", Target: "/home/u/.bashrc", State: linker.Linked},
			{Name: "vimrc", Source: "/home/u/dotfiles/vimrc", Target: "/home/u/.vimrc", State: linker.WrongTarget},
		},
	}
}

func plain(t *testing.T) (*Renderer, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	return NewRenderer(buf, false), buf
}

func TestNoColorHasNoEscapes(t *testing.T) {
	r, buf := plain(t)

	r.RenderInit(&commands.InitResult{Root: "/home/u/dotfiles"})
	require.NoError(t, r.RenderList(sampleList(), config.FormatText))
	r.RenderError(errors.New(errors.ErrRepoNotInitialized, "run init"))

	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestColorAlwaysEmitsEscapes(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewRenderer(buf, true)
	t.Cleanup(func() { NewRenderer(&bytes.Buffer{}, false) })

	r.Success("done")
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestRenderInit(t *testing.T) {
	r, buf := plain(t)
	r.RenderInit(&commands.InitResult{Root: "/home/u/dotfiles"})
	assert.Contains(t, buf.String(), "Initialized dotman repository at /home/u/dotfiles")

	buf.Reset()
	r.RenderInit(&commands.InitResult{Root: "/home/u/dotfiles", AlreadyExists: true})
	assert.Contains(t, buf.String(), "Warning:")
	assert.Contains(t, buf.String(), "already exists")
	assert.NotContains(t, buf.String(), "[")

	buf.Reset()
	r.RenderInit(&commands.InitResult{
		Root:          "/home/u/dotfiles",
		AlreadyExists: true,
		Warning:       errors.New(errors.ErrRepoExists, "directory /home/u/dotfiles already exists"),
	})
	assert.Contains(t, buf.String(), "already exists. Nothing to do. [REPO_EXISTS]")
}

func TestRenderAdd(t *testing.T) {
	r, buf := plain(t)
	r.RenderAdd(&commands.AddResult{Name: "bashrc", Source: "/d/bashrc", Target: "/h/.bashrc"})
	assert.Contains(t, buf.String(), "Moved /h/.bashrc to /d/bashrc")
	assert.Contains(t, buf.String(), "Added and linked bashrc")

	buf.Reset()
	r.RenderAdd(&commands.AddResult{Name: "bashrc", Target: "/h/.bashrc", AlreadyManaged: true})
	assert.Contains(t, buf.String(), "already managed")
}

func TestRenderLink(t *testing.T) {
	r, buf := plain(t)

	r.RenderLink(&commands.LinkResult{NothingToDo: true, BatchResult: &linker.BatchResult{}})
	assert.Contains(t, buf.String(), "No files to link")

	buf.Reset()
	r.RenderLink(&commands.LinkResult{BatchResult: &linker.BatchResult{Results: []linker.LinkResult{
		{Name: "a", Source: "/d/a", Destination: "/h/.a", Outcome: linker.Created},
		{Name: "b", Source: "/d/b", Destination: "/h/.b", Outcome: linker.SkippedExists},
		{Name: "c", Source: "/d/c", Destination: "/h/.c", Outcome: linker.SkippedExists, AlreadyLinked: true},
		{Name: "d", Source: "/d/d", Destination: "/h/.d", Outcome: linker.Failed, Err: fmt.Errorf("boom")},
	}}})
	out := buf.String()
	assert.Contains(t, out, "Linked /h/.a -> /d/a")
	assert.Contains(t, out, "Skipped /h/.b (already exists)")
	assert.Contains(t, out, "Already linked /h/.c")
	assert.Contains(t, out, "Failed /h/.d: boom")
	assert.Contains(t, out, "1 of 4 files could not be linked")

	buf.Reset()
	r.RenderLink(nil)
	assert.Empty(t, buf.String())
}

func TestRenderUnlink(t *testing.T) {
	r, buf := plain(t)
	r.RenderUnlink(&commands.UnlinkResult{BatchResult: &linker.BatchResult{Results: []linker.LinkResult{
		{Name: "a", Destination: "/h/.a", Outcome: linker.Removed},
		{Name: "b", Destination: "/h/.b", Outcome: linker.SkippedNotSymlink},
	}}})
	assert.Contains(t, buf.String(), "Removed symlink /h/.a")
	assert.Contains(t, buf.String(), "Skipped /h/.b (not a symlink")
	assert.Contains(t, buf.String(), "All symlinks removed")
}

func TestRenderList_Text(t *testing.T) {
	r, buf := plain(t)
	require.NoError(t, r.RenderList(sampleList(), config.FormatText))

	out := buf.String()
	assert.Contains(t, out, "/home/u/dotfiles")
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "bashrc")
	assert.Contains(t, out, "wrong target")
	assert.Less(t, strings.Index(out, "bashrc"), strings.Index(out, "vimrc"))

	buf.Reset()
	require.NoError(t, r.RenderList(&commands.ListResult{Root: "/r"}, ""))
	assert.Contains(t, buf.String(), "No files are currently managed")
}

func TestRenderList_JSON(t *testing.T) {
	r, buf := plain(t)
	require.NoError(t, r.RenderList(sampleList(), config.FormatJSON))

	var decoded struct {
		Root    string `json:"root"`
		Entries []struct {
			Name  string `json:"name"`
			State string `json:"state"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "/home/u/dotfiles", decoded.Root)
	require.Len(t, decoded.Entries, 2)
	assert.Equal(t, "linked", decoded.Entries[0].State)
	assert.Equal(t, "wrong_target", decoded.Entries[1].State)
}

func TestRenderList_YAML(t *testing.T) {
	r, buf := plain(t)
	require.NoError(t, r.RenderList(sampleList(), config.FormatYAML))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "/home/u/dotfiles", decoded["root"])
	assert.Contains(t, buf.String(), "state: linked")
}

func TestRenderList_UnknownFormat(t *testing.T) {
	r, _ := plain(t)
	err := r.RenderList(sampleList(), "xml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRenderError(t *testing.T) {
	r, buf := plain(t)

	r.RenderError(errors.Wrap(fmt.Errorf("permission denied"), errors.ErrFileMove, "failed to move"))
	assert.Contains(t, buf.String(), "Error: failed to move: permission denied [FILE_MOVE]")

	buf.Reset()
	r.RenderError(fmt.Errorf("plain"))
	assert.Contains(t, buf.String(), "Error: plain")

	buf.Reset()
	r.RenderError(nil)
	assert.Empty(t, buf.String())
}

func TestDetectColor(t *testing.T) {
	buf := &bytes.Buffer{}
	assert.True(t, DetectColor(config.ColorAlways, buf))
	assert.False(t, DetectColor(config.ColorNever, buf))
	assert.False(t, DetectColor(config.ColorAuto, buf), "non-file writers are never coloured")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, DetectColor(config.ColorAuto, buf))
}
