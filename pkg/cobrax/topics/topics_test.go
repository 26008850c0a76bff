// pkg/cobrax/topics/topics_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: fstest.MapFS
// PURPOSE: Test topic discovery, lookup and the topic command

package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSource() fstest.MapFS {
	return fstest.MapFS{
		"overview.md":        {Data: []byte("# Overview\n\nManaging dotfiles")},
		"repository.txt":     {Data: []byte("The repository holds your files")},
		"option-force.md":    {Data: []byte("Force replaces existing files")},
		"nested/manifest.md": {Data: []byte("# Manifest")},
		"notes.json":         {Data: []byte(`{"ignored": true}`)},
	}
}

func TestNew_ScansSupportedExtensions(t *testing.T) {
	m, err := New(testSource(), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"manifest", "option-force", "overview", "repository"}, m.Names())

	topic, ok := m.Get("repository")
	require.True(t, ok)
	assert.Equal(t, "The repository holds your files", topic.Content)
	assert.Equal(t, "repository.txt", topic.FilePath)

	_, ok = m.Get("notes")
	assert.False(t, ok)
}

func TestNew_CustomExtensions(t *testing.T) {
	m, err := New(testSource(), Options{Extensions: []string{".json"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes"}, m.Names())
}

func TestGet_FlagStyle(t *testing.T) {
	m, err := New(testSource(), Options{})
	require.NoError(t, err)

	for _, name := range []string{"--force", "-force", "force", "option-force"} {
		topic, ok := m.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-force", topic.Name)
	}
}

type upperRenderer struct{}

func (upperRenderer) Render(content, format string) string {
	if format != ".md" {
		return content
	}
	return strings.ToUpper(content)
}

func TestCommand(t *testing.T) {
	m, err := New(testSource(), Options{Renderer: upperRenderer{}, Default: "overview"})
	require.NoError(t, err)

	run := func(args ...string) (string, error) {
		cmd := m.NewCommand("guide [topic]", "Show the guide", "")
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(append([]string{}, args...))
		err := cmd.Execute()
		return out.String(), err
	}

	t.Run("default topic", func(t *testing.T) {
		out, err := run()
		require.NoError(t, err)
		assert.Contains(t, out, "# OVERVIEW")
	})

	t.Run("named text topic is not rendered", func(t *testing.T) {
		out, err := run("repository")
		require.NoError(t, err)
		assert.Equal(t, "The repository holds your files", out)
	})

	t.Run("index", func(t *testing.T) {
		out, err := run("topics")
		require.NoError(t, err)
		assert.Contains(t, out, "Available topics:")
		assert.Contains(t, out, "  repository\n")
		assert.Contains(t, out, "guide <topic>")
	})

	t.Run("unknown topic", func(t *testing.T) {
		_, err := run("nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown topic "nope"`)
	})
}

func TestCommand_NoDefaultShowsIndex(t *testing.T) {
	m, err := New(fstest.MapFS{}, Options{})
	require.NoError(t, err)

	cmd := m.NewCommand("guide", "", "")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "No help topics available.\n", out.String())
}

func TestGlamourRenderer(t *testing.T) {
	r := NewGlamourRenderer(false)
	assert.Equal(t, "notty", r.Style)

	plain := r.Render("just text", ".txt")
	assert.Equal(t, "just text", plain)

	rendered := r.Render("# Title\n\nBody text", ".md")
	assert.Contains(t, rendered, "Title")
	assert.Contains(t, rendered, "Body text")
	assert.NotContains(t, rendered, "\x1b[")
}
