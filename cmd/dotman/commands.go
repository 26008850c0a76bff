package dotman

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/arthur-debert/dotman/internal/version"
	"github.com/arthur-debert/dotman/pkg/cobrax/topics"
	"github.com/arthur-debert/dotman/pkg/commands"
	"github.com/arthur-debert/dotman/pkg/config"
	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/output"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app carries what PersistentPreRunE sets up for the subcommands
type app struct {
	verbosity int
	noColor   bool

	cfg   *config.Config
	color bool
	out   *output.Renderer
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	cmd, _ := newRoot()
	return cmd
}

// Execute runs the CLI with the process arguments and returns the exit
// code. Errors are printed to stderr.
func Execute() int {
	rootCmd, a := newRoot()
	if err := rootCmd.Execute(); err != nil {
		a.errorRenderer(os.Stderr).RenderError(err)
		return 1
	}
	return 0
}

func newRoot() (*cobra.Command, *app) {
	initTemplateFormatting()

	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "dotman",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})
	rootCmd.SetHelpCommandGroupID("misc")
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(a.newInitCmd())
	rootCmd.AddCommand(a.newAddCmd())
	rootCmd.AddCommand(a.newLinkCmd())
	rootCmd.AddCommand(a.newUnlinkCmd())
	rootCmd.AddCommand(a.newListCmd())
	rootCmd.AddCommand(a.newGuideCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd, a
}

// setup configures logging, loads the configuration and builds the
// renderer for the command about to run
func (a *app) setup(cmd *cobra.Command, args []string) error {
	logging.SetupLogger(a.verbosity)
	logging.LogCommand(cmd.Name(), args)

	overrides := map[string]interface{}{}
	if a.noColor {
		overrides["output.color"] = config.ColorNever
	}

	cfg, err := config.Load(config.LoadOptions{Overrides: overrides})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.color = output.DetectColor(cfg.Output.Color, cmd.OutOrStdout())
	a.out = output.NewRenderer(cmd.OutOrStdout(), a.color)

	log.Debug().
		Str("command", cmd.Name()).
		Str("repository.root", cfg.Repository.Root).
		Str("repository.name", cfg.Repository.Name).
		Bool("color", a.color).
		Msg("Command started")
	return nil
}

// errorRenderer returns a renderer for w honouring whatever colour setting
// was resolved before the failure
func (a *app) errorRenderer(w io.Writer) *output.Renderer {
	mode := config.ColorAuto
	switch {
	case a.noColor:
		mode = config.ColorNever
	case a.cfg != nil:
		mode = a.cfg.Output.Color
	}
	return output.NewRenderer(w, output.DetectColor(mode, w))
}

func (a *app) newInitCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Init(commands.InitOptions{
				Dir:    dir,
				Config: a.cfg,
			})
			if err != nil {
				return err
			}
			a.out.RenderInit(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", MsgFlagDir)
	_ = cmd.MarkFlagDirname("dir")
	return cmd
}

func (a *app) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <path>",
		Short:   MsgAddShort,
		Long:    MsgAddLong,
		Example: MsgAddExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Add(commands.AddOptions{
				Path:   args[0],
				Config: a.cfg,
			})
			if err != nil {
				return err
			}
			a.out.RenderAdd(result)
			return nil
		},
	}
}

func (a *app) newLinkCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "link",
		Short:   MsgLinkShort,
		Long:    MsgLinkLong,
		Example: MsgLinkExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Link(commands.LinkOptions{
				Force:  force,
				Config: a.cfg,
			})
			// Partial results are still reported
			a.out.RenderLink(result)
			return err
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	return cmd
}

func (a *app) newUnlinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "unlink",
		Short:   MsgUnlinkShort,
		Long:    MsgUnlinkLong,
		Example: MsgUnlinkExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Unlink(commands.UnlinkOptions{
				Config: a.cfg,
			})
			a.out.RenderUnlink(result)
			return err
		},
	}
}

func (a *app) newListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		Example: MsgListExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Output.Format
			}
			if !config.ValidFormat(format) {
				return errors.Newf(errors.ErrInvalidInput, MsgErrFormat, format).
					WithDetail("format", format)
			}

			result, err := commands.List(commands.ListOptions{
				Config: a.cfg,
			})
			if err != nil {
				return err
			}
			return a.out.RenderList(result, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{config.FormatText, config.FormatJSON, config.FormatYAML}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// newGuideCmd serves the embedded markdown topics. The renderer is chosen
// at run time, once the colour setting is known.
func (a *app) newGuideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "guide [topic]",
		Short:   MsgGuideShort,
		Long:    MsgGuideLong,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newGuide(topics.NewGlamourRenderer(a.color))
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to load guide")
			}
			if err := m.Show(cmd.OutOrStdout(), cmd.CommandPath(), args); err != nil {
				return errors.Wrap(err, errors.ErrNotFound, "guide topic not found").
					WithDetail("topic", args[0])
			}
			return nil
		},
	}

	if m, err := newGuide(nil); err == nil {
		cmd.ValidArgsFunction = m.Complete
	}
	return cmd
}

func newGuide(renderer topics.Renderer) (*topics.Manager, error) {
	source, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		return nil, err
	}
	return topics.New(source, topics.Options{
		Extensions: []string{".md"},
		Renderer:   renderer,
		Default:    "overview",
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return errors.Newf(errors.ErrInvalidInput, MsgErrShell, args[0])
		},
	}
}
