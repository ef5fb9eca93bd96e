package cli

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quicknotes-cli/internal/config"
	"quicknotes-cli/internal/format"
	"quicknotes-cli/internal/logging"
	"quicknotes-cli/internal/model"
	"quicknotes-cli/internal/store"
	"quicknotes-cli/internal/tui"
)

type App struct {
	ConfigFile string
	Backend    string
	Key        string
	Glyphs     string
	Debug      bool
	PrettyJSON bool
	Format     string

	cfg      *config.Config
	log      *zap.Logger
	closeLog func()
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "quicknotes",
		Short:        "Quick notes and checklists in your terminal",
		SilenceUsage: true,
		Long: heredoc.Doc(`
			quicknotes keeps a single list of notes and checklists and saves it
			as you type. Run it without arguments for the interactive view; the
			subcommands operate on the same data for scripts.
		`),
		Example: heredoc.Doc(`
			# Start the interactive TUI
			quicknotes

			# Scriptable commands
			quicknotes list
			quicknotes add checklist --title "Groceries"
			quicknotes export --format markdown > notes.md

			# Direct item lookup (shortcut for: quicknotes show <item-id>)
			quicknotes note-abcd1234
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.Options{ConfigFile: app.ConfigFile, Flags: cmd.Flags()})
		if err != nil {
			return writeErr(cmd, err)
		}
		app.cfg = cfg
		log, closeFn, err := logging.New(cfg.LogFile, cfg.LogDebug)
		if err != nil {
			// Logging is best effort; keep going without it.
			log, closeFn = logging.Nop(), func() {}
		}
		app.log = log.With(zap.String("cmd", cmd.CommandPath()))
		app.closeLog = closeFn
		return nil
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.closeLog != nil {
			app.closeLog()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigFile, "config", "", "Path to config.yaml (default: $QUICKNOTES_CONFIG_DIR or ~/.quicknotes)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Storage backend (sqlite|file|redis|postgres)")
	cmd.PersistentFlags().StringVar(&app.Key, "key", "", "Storage key the document lives under (default: quickNotesData)")
	cmd.PersistentFlags().StringVar(&app.Glyphs, "glyphs", "", "TUI glyph set (unicode|ascii)")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "Log at debug level")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "json", "Output format (json|yaml; export also accepts markdown|html)")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newDeleteCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newColorCmd(app))
	cmd.AddCommand(newCheckCmd(app))
	cmd.AddCommand(newClearCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	docs, err := openDocuments(ctxOf(cmd), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer docs.Close()

	return tui.Run(tui.Options{
		Docs:     docs,
		Store:    app.cfg.Store(),
		Autosave: app.cfg.Autosave,
		Glyphs:   app.cfg.Glyphs,
		Log:      app.log,
	})
}

func openDocuments(ctx context.Context, app *App) (*store.DocumentStore, error) {
	kv, err := store.Open(ctx, app.cfg.Store(), app.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", app.cfg.Storage.Backend, err)
	}
	return store.NewDocumentStore(kv, app.cfg.Key), nil
}

// loadDocument opens the backend and loads the document. Callers must Close
// the returned store.
func loadDocument(cmd *cobra.Command, app *App) (*model.Document, *store.DocumentStore, error) {
	docs, err := openDocuments(ctxOf(cmd), app)
	if err != nil {
		return nil, nil, err
	}
	doc, err := docs.Load(ctxOf(cmd))
	if err != nil {
		app.log.Error("load failed", zap.Error(err))
		_ = docs.Close()
		return nil, nil, err
	}
	return doc, docs, nil
}

// saveDocument writes immediately; the CLI has no debounce.
func saveDocument(cmd *cobra.Command, app *App, docs *store.DocumentStore, doc *model.Document) error {
	if err := docs.Save(ctxOf(cmd), doc); err != nil {
		app.log.Error("save failed", zap.Error(err))
		return err
	}
	app.log.Info("saved", zap.Int("items", len(doc.Content)), zap.String("key", docs.Key))
	return nil
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
