package cli

import (
	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/spf13/cobra"

	"quicknotes-cli/internal/mutate"
)

// confirm asks a yes/no question on the terminal. Tests replace it.
var confirm = func(prompt string) (bool, error) {
	return confirmation.New(prompt, confirmation.No).RunPrompt()
}

func newClearCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every note and checklist (asks for confirmation)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, docs, err := loadDocument(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer docs.Close()

			if !yes {
				ok, err := confirm("Clear all notes and checklists?")
				if err != nil {
					return writeErr(cmd, err)
				}
				if !ok {
					// Declining leaves the document untouched.
					return writeErr(cmd, errAborted)
				}
			}
			res := mutate.ClearAll(doc)
			if err := saveDocument(cmd, app, docs, doc); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"cleared": res.Changed}})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
