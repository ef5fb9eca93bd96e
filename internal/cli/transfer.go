package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"quicknotes-cli/internal/format"
	"quicknotes-cli/internal/mutate"
	"quicknotes-cli/internal/publish"
)

func newExportCmd(app *App) *cobra.Command {
	var out string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the whole document (json|yaml|markdown|html via --format)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, docs, err := loadDocument(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer docs.Close()

			var b strings.Builder
			switch strings.ToLower(app.Format) {
			case "md", "markdown":
				b.WriteString(publish.RenderDocumentMarkdown(doc, publish.RenderOptions{Progress: true, Color: true}))
			case "html":
				page, err := publish.RenderDocumentHTML(doc, "", publish.RenderOptions{Progress: true})
				if err != nil {
					return writeErr(cmd, err)
				}
				b.WriteString(page)
			default:
				// The stored shape, not the CLI envelope.
				if err := format.Write(&b, doc, app.Format, app.PrettyJSON); err != nil {
					return writeErr(cmd, err)
				}
			}

			if strings.TrimSpace(out) == "" || out == "-" {
				_, err := io.WriteString(cmd.OutOrStdout(), b.String())
				return err
			}
			if !overwrite {
				if _, err := os.Stat(out); err == nil {
					return writeErr(cmd, errors.New("file exists (use --overwrite): "+out))
				}
			}
			if err := os.WriteFile(out, []byte(b.String()), 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return format.WriteJSON(cmd.OutOrStdout(), map[string]any{"data": map[string]any{"written": out}}, app.PrettyJSON)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to a file instead of stdout")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing --out file")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.md>",
		Short: "Append items from Markdown: one item per heading, task lists become checklists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src []byte
			var err error
			if args[0] == "-" {
				src, err = io.ReadAll(cmd.InOrStdin())
			} else {
				src, err = os.ReadFile(args[0])
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			items := publish.ParseMarkdown(src)
			if len(items) == 0 {
				return writeErr(cmd, fmt.Errorf("no items found in %s", args[0]))
			}

			doc, docs, err := loadDocument(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer docs.Close()

			added := make([]itemSummary, 0, len(items))
			for _, it := range items {
				if _, err := mutate.AppendItem(doc, it); err != nil {
					return writeErr(cmd, err)
				}
				added = append(added, summarize(it))
			}
			if err := saveDocument(cmd, app, docs, doc); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": added})
		},
	}
	return cmd
}
