package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotman/pkg/commands"
	"github.com/arthur-debert/dotman/pkg/config"
	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/linker"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// Renderer writes command results to a writer
type Renderer struct {
	w      io.Writer
	color  bool
	styles Styles
}

// NewRenderer creates a renderer for w. With color false no escape codes
// are written.
func NewRenderer(w io.Writer, color bool) *Renderer {
	lg := lipgloss.NewRenderer(w)
	if color {
		if lg.ColorProfile() == termenv.Ascii {
			lg.SetColorProfile(termenv.ANSI256)
		}
		pterm.EnableStyling()
	} else {
		lg.SetColorProfile(termenv.Ascii)
		pterm.DisableStyling()
	}

	logger := logging.GetLogger("output")
	logger.Debug().
		Bool("color", color).
		Str("profile", fmt.Sprintf("%v", lg.ColorProfile())).
		Msg("Renderer created")

	return &Renderer{w: w, color: color, styles: NewStyles(lg)}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() Styles {
	return r.styles
}

func (r *Renderer) println(format string, args ...interface{}) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

// Warning prints a styled warning line
func (r *Renderer) Warning(format string, args ...interface{}) {
	r.println("%s %s", r.styles.Warning.Render("Warning:"), fmt.Sprintf(format, args...))
}

// Success prints a styled success line
func (r *Renderer) Success(format string, args ...interface{}) {
	r.println("%s %s", r.styles.Success.Render("Success:"), fmt.Sprintf(format, args...))
}

// RenderError prints err with its code
func (r *Renderer) RenderError(err error) {
	if err == nil {
		return
	}
	msg := err.Error()
	if dErr, ok := err.(*errors.DotmanError); ok {
		msg = dErr.Message
		if dErr.Wrapped != nil {
			msg += ": " + dErr.Wrapped.Error()
		}
		msg += " " + r.codeTag(dErr)
	}
	r.println("%s %s", r.styles.Error.Render("Error:"), msg)
}

// codeTag renders the muted "[CODE]" suffix for err, or "" for errors
// without a code
func (r *Renderer) codeTag(err error) string {
	code := errors.GetErrorCode(err)
	if code == errors.ErrUnknown {
		return ""
	}
	return r.styles.Muted.Render("[" + string(code) + "]")
}

// RenderInit reports the init outcome
func (r *Renderer) RenderInit(res *commands.InitResult) {
	if res.AlreadyExists {
		msg := fmt.Sprintf("Directory %s already exists. Nothing to do.", r.styles.Path.Render(res.Root))
		if tag := r.codeTag(res.Warning); tag != "" {
			msg += " " + tag
		}
		r.Warning("%s", msg)
		return
	}
	r.Success("Initialized dotman repository at %s.", r.styles.Path.Render(res.Root))
	r.println("You can now add files using `dotman add <path-to-file>`.")
}

// RenderAdd reports the add outcome
func (r *Renderer) RenderAdd(res *commands.AddResult) {
	if res.AlreadyManaged {
		r.Warning("%s is already managed as %s. Nothing to do.",
			r.styles.Path.Render(res.Target), r.styles.Name.Render(res.Name))
		return
	}
	r.println("Moved %s to %s", r.styles.Path.Render(res.Target), r.styles.Path.Render(res.Source))
	r.Success("Added and linked %s.", r.styles.Name.Render(res.Name))
}

// RenderLink reports every entry of a link run. It is safe to call with
// the partial result returned alongside an error.
func (r *Renderer) RenderLink(res *commands.LinkResult) {
	if res == nil {
		return
	}
	if res.NothingToDo {
		r.Warning("No files to link. Add some with `dotman add`.")
		return
	}
	r.renderBatch(res.BatchResult)

	if failed := res.Count(linker.Failed); failed > 0 {
		r.println("%s", r.styles.Error.Render(fmt.Sprintf("%d of %d files could not be linked.", failed, len(res.Results))))
		return
	}
	r.println("%s", r.styles.Success.Render("All files linked."))
}

// RenderUnlink reports every entry of an unlink run
func (r *Renderer) RenderUnlink(res *commands.UnlinkResult) {
	if res == nil {
		return
	}
	if res.NothingToDo {
		r.Warning("No files to unlink.")
		return
	}
	r.renderBatch(res.BatchResult)

	if failed := res.Count(linker.Failed); failed > 0 {
		r.println("%s", r.styles.Error.Render(fmt.Sprintf("%d of %d symlinks could not be removed.", failed, len(res.Results))))
		return
	}
	r.println("%s", r.styles.Success.Render("All symlinks removed."))
}

func (r *Renderer) renderBatch(batch *linker.BatchResult) {
	if batch == nil {
		return
	}
	for _, res := range batch.Results {
		dest := r.styles.Path.Render(res.Destination)
		switch res.Outcome {
		case linker.Created:
			r.println("Linked %s -> %s", dest, r.styles.Path.Render(res.Source))
		case linker.Overwritten:
			r.Warning("Overwrote %s (--force), now linked to %s", dest, r.styles.Path.Render(res.Source))
		case linker.SkippedExists:
			if res.AlreadyLinked {
				r.println("%s %s", r.styles.Muted.Render("Already linked"), dest)
			} else {
				r.Warning("Skipped %s (already exists). Use --force to overwrite.", dest)
			}
		case linker.Removed:
			r.println("Removed symlink %s", dest)
		case linker.SkippedNotSymlink:
			r.Warning("Skipped %s (not a symlink or does not exist).", dest)
		case linker.Failed:
			r.println("%s %s: %v", r.styles.Error.Render("Failed"), dest, res.Err)
		}
	}
}

// RenderList prints the managed files in the given format
func (r *Renderer) RenderList(res *commands.ListResult, format string) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case config.FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatText, "":
		return r.renderListText(res)
	}
	return errors.Newf(errors.ErrInvalidInput, "unknown format %q (want text, json or yaml)", format).
		WithDetail("format", format)
}

func (r *Renderer) renderListText(res *commands.ListResult) error {
	if len(res.Entries) == 0 {
		r.println("No files are currently managed by dotman.")
		return nil
	}

	r.println("%s %s", r.styles.Title.Render("Managed dotfiles in"), r.styles.Path.Render(res.Root))
	r.println("")

	data := pterm.TableData{{"NAME", "TARGET", "STATE"}}
	for _, e := range res.Entries {
		data = append(data, []string{e.Name, e.Target, r.stateLabel(e.State)})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to render table")
	}
	r.println("%s", strings.TrimRight(table, "\n"))
	return nil
}

func (r *Renderer) stateLabel(state linker.EntryState) string {
	label := strings.ReplaceAll(state.String(), "_", " ")
	switch state {
	case linker.Linked:
		return r.styles.Success.Render(label)
	case linker.NotLinked:
		return r.styles.Muted.Render(label)
	case linker.SourceMissing:
		return r.styles.Error.Render(label)
	default:
		return r.styles.Warning.Render(label)
	}
}
