package cli

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"quicknotes-cli/internal/model"
	"quicknotes-cli/internal/mutate"
)

// itemSummary is one row of `quicknotes list`.
type itemSummary struct {
	ID          string          `json:"id"`
	Type        model.Kind      `json:"type"`
	Title       string          `json:"title"`
	IsCollapsed bool            `json:"isCollapsed"`
	Color       model.Color     `json:"color,omitempty"`
	Progress    *model.Progress `json:"progress,omitempty"`
}

func summarize(it model.Item) itemSummary {
	s := itemSummary{
		ID:          it.ItemID(),
		Type:        it.Kind(),
		Title:       model.Title(it),
		IsCollapsed: model.Collapsed(it),
		Color:       model.ItemColor(it),
	}
	if c, ok := it.(*model.Checklist); ok {
		p := model.ComputeProgress(c)
		s.Progress = &p
	}
	return s
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notes and checklists in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, docs, err := loadDocument(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer docs.Close()

			out := make([]itemSummary, 0, len(doc.Content))
			for _, it := range doc.Content {
				out = append(out, summarize(it))
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show one item with all of its fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, docs, err := loadDocument(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer docs.Close()

			it, err := mutate.Lookup(doc, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := model.MarshalItem(it)
			if err != nil {
				return writeErr(cmd, err)
			}
			env := map[string]any{"data": json.RawMessage(b)}
			if c, ok := it.(*model.Checklist); ok {
				env["progress"] = model.ComputeProgress(c)
			}
			return writeOut(cmd, app, env)
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	var title string
	var body string
	var entries []string

	cmd := &cobra.Command{
		Use:       "add <note|checklist>",
		Short:     "Append a new note or checklist",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(model.KindNote), string(model.KindChecklist)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := model.ParseKind(strings.ToLower(strings.TrimSpace(args[0])))
			if !ok {
				return writeErr(cmd, invalidArgError{name: "kind", value: args[0], want: "note|checklist"})
			}
			doc, docs, err := loadDocument(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer docs.Close()

			res, err := mutate.AddItem(doc, kind)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := res.ItemID
			if cmd.Flags().Changed("title") {
				mutate.SetTitle(doc, id, title)
			}
			switch kind {
			case model.KindNote:
				mutate.SetContent(doc, id, body)
			case model.KindChecklist:
				mutate.SetDescription(doc, id, body)
				if len(entries) > 0 {
					c, _ := mutate.FindChecklist(doc, id)
					// The seeded blank entry takes the first text.
					mutate.SetEntryText(doc, id, c.Items[0].ID, entries[0])
					for _, text := range entries[1:] {
						r, err := mutate.AddChecklistEntry(doc, id)
						if err != nil {
							return writeErr(cmd, err)
						}
						mutate.SetEntryText(doc, id, r.EntryID, text)
					}
				}
			}
			if err := saveDocument(cmd, app, docs, doc); err != nil {
				return writeErr(cmd, err)
			}
			it, _ := mutate.FindItem(doc, id)
			return writeOut(cmd, app, map[string]any{"data": summarize(it)})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Title (default: New Note / My Checklist)")
	cmd.Flags().StringVar(&body, "body", "", "Note content or checklist description")
	cmd.Flags().StringArrayVar(&entries, "entry", nil, "Checklist entry text (repeatable)")
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <item-id> [entry-id]",
		Aliases: []string{"rm"},
		Short:   "Delete an item, or one entry of a checklist",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, docs, err := loadDocument(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer docs.Close()

			var res mutate.Result
			if len(args) == 2 {
				res = mutate.DeleteChecklistEntry(doc, args[0], args[1])
			} else {
				res = mutate.DeleteItem(doc, args[0])
			}
			// Unknown ids leave the document untouched and are not an error.
			if res.Changed {
				if err := saveDocument(cmd, app, docs, doc); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": res.Changed}})
		},
	}
}

func newMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <item-id> <target-id>",
		Short: "Move an item onto a target's position (after it when moving down, before it when moving up)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, docs, err := loadDocument(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer docs.Close()

			for _, id := range args {
				if _, err := mutate.Lookup(doc, id); err != nil {
					return writeErr(cmd, err)
				}
			}
			res := mutate.MoveItem(doc, args[0], args[1])
			if res.Changed {
				if err := saveDocument(cmd, app, docs, doc); err != nil {
					return writeErr(cmd, err)
				}
			}
			order := make([]string, 0, len(doc.Content))
			for _, it := range doc.Content {
				order = append(order, it.ItemID())
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"moved": res.Changed, "order": order}})
		},
	}
}

func newColorCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "color <item-id> [color]",
		Short: "Set an item's color tag (omit the color to clear it)",
		Long:  "Colors: " + colorNames(),
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := model.ColorNone
			if len(args) == 2 {
				c = model.Color(strings.ToLower(strings.TrimSpace(args[1])))
			}
			doc, docs, err := loadDocument(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer docs.Close()

			if _, err := mutate.Lookup(doc, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetColor(doc, args[0], c)
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := saveDocument(cmd, app, docs, doc); err != nil {
					return writeErr(cmd, err)
				}
			}
			it, _ := mutate.FindItem(doc, args[0])
			return writeOut(cmd, app, map[string]any{"data": summarize(it)})
		},
	}
}

func newCheckCmd(app *App) *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "check <checklist-id> <entry-id>",
		Short: "Mark a checklist entry done (or not done with --undo)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, docs, err := loadDocument(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer docs.Close()

			c, ok := mutate.FindChecklist(doc, args[0])
			if !ok {
				return writeErr(cmd, mutate.NotFoundError{Kind: "checklist", ID: args[0]})
			}
			if c.FindEntry(args[1]) == nil {
				return writeErr(cmd, mutate.NotFoundError{Kind: "entry", ID: args[1]})
			}
			res := mutate.SetEntryDone(doc, args[0], args[1], !undo)
			if res.Changed {
				if err := saveDocument(cmd, app, docs, doc); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": summarize(c)})
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the entry not done")
	return cmd
}

func colorNames() string {
	names := make([]string, 0, len(model.Palette))
	for _, c := range model.Palette {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
