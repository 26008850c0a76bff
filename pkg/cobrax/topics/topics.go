// Package topics provides topic-based help for Cobra CLI applications.
// Topics are markdown or plain text files read from an fs.FS, usually an
// embedded directory, and exposed through a single command.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// Topic is one help document
type Topic struct {
	Name     string
	FilePath string
	Content  string
}

// Options configures the Manager
type Options struct {
	// Extensions is the list of file extensions to consider as topics.
	// Defaults to [".txt", ".md"].
	Extensions []string

	// Renderer formats topic content. Defaults to PlainRenderer.
	Renderer Renderer

	// Default is the topic shown when no name is given
	Default string
}

// Manager holds the topics found in a filesystem
type Manager struct {
	source     fs.FS
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer
	defTopic   string
}

// New scans source and returns a Manager with the topics found
func New(source fs.FS, opts Options) (*Manager, error) {
	m := &Manager{
		source:     source,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
		defTopic:   opts.Default,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".txt", ".md"}
	}
	if m.renderer == nil {
		m.renderer = &PlainRenderer{}
	}

	if err := m.scan(); err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}
	return m, nil
}

func (m *Manager) scan() error {
	return fs.WalkDir(m.source, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := path.Ext(p)
		if !m.supported(ext) {
			return nil
		}

		content, err := fs.ReadFile(m.source, p)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = &Topic{Name: name, FilePath: p, Content: string(content)}
		return nil
	})
}

func (m *Manager) supported(ext string) bool {
	for _, e := range m.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Get retrieves a topic by name. Flag-style names ("--force") also match
// an "option-force" topic.
func (m *Manager) Get(name string) (*Topic, bool) {
	name = strings.TrimPrefix(name, "--")
	name = strings.TrimPrefix(name, "-")

	if topic, ok := m.topics[name]; ok {
		return topic, true
	}
	topic, ok := m.topics["option-"+name]
	return topic, ok
}

// Names returns all topic names, sorted
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns the rendered content of a topic
func (m *Manager) Render(topic *Topic) string {
	return m.renderer.Render(topic.Content, path.Ext(topic.FilePath))
}

// WriteIndex prints the list of available topics
func (m *Manager) WriteIndex(w io.Writer, cmdPath string) {
	names := m.Names()
	if len(names) == 0 {
		fmt.Fprintln(w, "No help topics available.")
		return
	}

	fmt.Fprintln(w, "Available topics:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintf(w, "\nUse '%s <topic>' to read about a specific topic.\n", cmdPath)
}

// Complete is a cobra ValidArgsFunction offering the topic names
func (m *Manager) Complete(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return append([]string{"topics"}, m.Names()...), cobra.ShellCompDirectiveNoFileComp
}

// NewCommand returns a command that prints a topic
func (m *Manager) NewCommand(use, short, long string) *cobra.Command {
	return &cobra.Command{
		Use:               use,
		Short:             short,
		Long:              long,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: m.Complete,
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.Show(cmd.OutOrStdout(), cmd.CommandPath(), args)
		},
	}
}

// Show writes the topic named by args[0], the default topic when args is
// empty, or the index for "topics". cmdPath is used in index hints.
func (m *Manager) Show(w io.Writer, cmdPath string, args []string) error {
	name := m.defTopic
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" || name == "topics" {
		m.WriteIndex(w, cmdPath)
		return nil
	}

	topic, ok := m.Get(name)
	if !ok {
		return fmt.Errorf("unknown topic %q, run '%s topics' to list them", name, cmdPath)
	}
	fmt.Fprint(w, m.Render(topic))
	return nil
}
