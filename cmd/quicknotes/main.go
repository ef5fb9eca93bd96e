package main

import (
	"os"
	"strings"

	"quicknotes-cli/internal/cli"
)

func isItemID(s string) bool {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"note-", "list-"} {
		// Keep it permissive; users may paste ids by hand.
		if strings.HasPrefix(s, prefix) && len(s) > len(prefix) {
			return true
		}
	}
	return false
}

func rewriteDirectItemLookupArgs(argv []string) []string {
	// Convenience: `quicknotes <item-id>` works like `quicknotes show <item-id>`.
	//
	// Cobra treats the first non-flag token as a subcommand, so argv is rewritten
	// before parsing. Persistent flags may come first (e.g. `quicknotes --key work
	// <item-id>`), so we look for the first positional token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	// Unknown flags are skipped without skipping a value, so an item id is
	// never consumed by accident.
	valueFlags := map[string]bool{
		"--config":  true,
		"--backend": true,
		"--key":     true,
		"--glyphs":  true,
		"--format":  true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
		"--debug":  true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			// Everything after "--" is positional, so the subcommand goes in front of it.
			if i+1 < len(argv) && isItemID(argv[i+1]) {
				out := make([]string, 0, len(argv)+1)
				out = append(out, argv[:i]...)
				out = append(out, "show")
				out = append(out, argv[i:]...)
				return out
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}

		if isItemID(a) {
			out := make([]string, 0, len(argv)+1)
			out = append(out, argv[:i]...)
			out = append(out, "show")
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectItemLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
