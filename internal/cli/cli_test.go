package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("QUICKNOTES_CONFIG_DIR", dir)
	return dir
}

func mustRun(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: quicknotes %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v", env)
	}
	return env
}

func dataID(t *testing.T, env map[string]any) string {
	t.Helper()
	id, _ := env["data"].(map[string]any)["id"].(string)
	if id == "" {
		t.Fatalf("expected data.id; got %#v", env["data"])
	}
	return id
}

func listIDs(t *testing.T, args ...string) []string {
	t.Helper()
	env := mustRun(t, append([]string{"list"}, args...)...)
	rows, _ := env["data"].([]any)
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.(map[string]any)["id"].(string))
	}
	return out
}

func TestCLI_AddListMoveDelete(t *testing.T) {
	isolate(t)

	a := dataID(t, mustRun(t, "add", "note", "--title", "A", "--body", "hello"))
	b := dataID(t, mustRun(t, "add", "checklist", "--title", "B", "--entry", "one", "--entry", "two"))
	c := dataID(t, mustRun(t, "add", "note"))

	if got := listIDs(t); strings.Join(got, ",") != strings.Join([]string{a, b, c}, ",") {
		t.Fatalf("unexpected order: %v", got)
	}

	show := mustRun(t, "show", b)
	item := show["data"].(map[string]any)
	if item["type"] != "checklist" || item["title"] != "B" {
		t.Fatalf("unexpected show data: %#v", item)
	}
	entries := item["items"].([]any)
	if len(entries) != 2 || entries[1].(map[string]any)["text"] != "two" {
		t.Fatalf("unexpected entries: %#v", entries)
	}
	progress := show["progress"].(map[string]any)
	if progress["total"] != float64(2) || progress["completed"] != float64(0) {
		t.Fatalf("unexpected progress: %#v", progress)
	}

	defaultNote := mustRun(t, "show", c)["data"].(map[string]any)
	if defaultNote["title"] != "New Note" {
		t.Fatalf("expected default title; got %#v", defaultNote["title"])
	}

	// Moving forward lands after the target.
	mustRun(t, "move", a, b)
	if got := listIDs(t); strings.Join(got, ",") != strings.Join([]string{b, a, c}, ",") {
		t.Fatalf("unexpected order after move: %v", got)
	}

	del := mustRun(t, "delete", "note-missing")
	if del["data"].(map[string]any)["deleted"] != false {
		t.Fatalf("expected missing delete to be a no-op; got %#v", del["data"])
	}
	mustRun(t, "delete", a)
	if got := listIDs(t); len(got) != 2 {
		t.Fatalf("expected 2 items after delete; got %v", got)
	}
}

func TestCLI_CheckAndColor(t *testing.T) {
	isolate(t)

	b := dataID(t, mustRun(t, "add", "checklist", "--entry", "x", "--entry", "y", "--entry", "z"))
	entries := mustRun(t, "show", b)["data"].(map[string]any)["items"].([]any)
	first := entries[0].(map[string]any)["id"].(string)
	second := entries[1].(map[string]any)["id"].(string)

	mustRun(t, "check", b, first)
	env := mustRun(t, "check", b, second)
	p := env["data"].(map[string]any)["progress"].(map[string]any)
	if p["completed"] != float64(2) || p["percentage"] != float64(67) {
		t.Fatalf("unexpected progress: %#v", p)
	}
	mustRun(t, "check", "--undo", b, second)

	env = mustRun(t, "color", b, "blue")
	if env["data"].(map[string]any)["color"] != "blue" {
		t.Fatalf("expected blue; got %#v", env["data"])
	}
	if _, _, err := runCLI(t, []string{"color", b, "magenta"}); err == nil {
		t.Fatalf("expected invalid color error")
	}
	env = mustRun(t, "color", b)
	if _, ok := env["data"].(map[string]any)["color"]; ok {
		t.Fatalf("expected color cleared; got %#v", env["data"])
	}
}

func TestCLI_ShowUnknown(t *testing.T) {
	isolate(t)

	_, stderr, err := runCLI(t, []string{"show", "note-nope"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(string(stderr), "item not found: note-nope") {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
}

func TestCLI_AddRejectsUnknownKind(t *testing.T) {
	isolate(t)

	if _, _, err := runCLI(t, []string{"add", "table"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCLI_ClearRequiresConfirmation(t *testing.T) {
	isolate(t)
	mustRun(t, "add", "note")

	prev := confirm
	t.Cleanup(func() { confirm = prev })

	var asked string
	confirm = func(prompt string) (bool, error) {
		asked = prompt
		return false, nil
	}
	if _, _, err := runCLI(t, []string{"clear"}); !errors.Is(err, errAborted) {
		t.Fatalf("expected aborted; got %v", err)
	}
	if asked == "" {
		t.Fatalf("expected a confirmation prompt")
	}
	if got := listIDs(t); len(got) != 1 {
		t.Fatalf("expected declined clear to keep items; got %v", got)
	}

	confirm = func(string) (bool, error) { return true, nil }
	mustRun(t, "clear")
	if got := listIDs(t); len(got) != 0 {
		t.Fatalf("expected confirmed clear to empty the list; got %v", got)
	}
	mustRun(t, "add", "note")

	env := mustRun(t, "clear", "--yes")
	if env["data"].(map[string]any)["cleared"] != true {
		t.Fatalf("unexpected clear result: %#v", env["data"])
	}
	if got := listIDs(t); len(got) != 0 {
		t.Fatalf("expected empty list; got %v", got)
	}
}

func TestCLI_BackendAndKeyFlags(t *testing.T) {
	dir := isolate(t)

	mustRun(t, "--backend", "file", "--key", "work", "add", "note")
	if _, err := os.Stat(filepath.Join(dir, "data", "work.json")); err != nil {
		t.Fatalf("expected file backend to write work.json: %v", err)
	}
	if got := listIDs(t, "--backend", "file", "--key", "home"); len(got) != 0 {
		t.Fatalf("expected key home to be empty; got %v", got)
	}
	if got := listIDs(t, "--backend", "file", "--key", "work"); len(got) != 1 {
		t.Fatalf("expected key work to hold one item; got %v", got)
	}
	if _, _, err := runCLI(t, []string{"--backend", "dynamo", "list"}); err == nil {
		t.Fatalf("expected unknown backend error")
	}
}

func TestCLI_ExportImportMarkdown(t *testing.T) {
	dir := isolate(t)

	mustRun(t, "add", "checklist", "--title", "Trip", "--entry", "passport", "--entry", "charger")
	mustRun(t, "add", "note", "--title", "Ideas", "--body", "write more")

	stdout, stderr, err := runCLI(t, []string{"export", "--format", "markdown"})
	if err != nil {
		t.Fatalf("export: %v\n%s", err, stderr)
	}
	md := string(stdout)
	for _, want := range []string{"# Trip", "- [ ] passport", "# Ideas", "write more"} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in export:\n%s", want, md)
		}
	}

	path := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(path, stdout, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	env := mustRun(t, "--key", "copy", "import", path)
	added := env["data"].([]any)
	if len(added) != 2 {
		t.Fatalf("expected 2 imported items; got %#v", added)
	}
	if first := added[0].(map[string]any); first["type"] != "checklist" || first["title"] != "Trip" {
		t.Fatalf("unexpected first import: %#v", first)
	}
	if got := listIDs(t, "--key", "copy"); len(got) != 2 {
		t.Fatalf("expected imported items under key copy; got %v", got)
	}
}

func TestCLI_ExportYAMLAndFile(t *testing.T) {
	dir := isolate(t)
	mustRun(t, "add", "note", "--title", "Y")

	stdout, _, err := runCLI(t, []string{"export", "--format", "yaml"})
	if err != nil {
		t.Fatalf("export yaml: %v", err)
	}
	if !strings.HasPrefix(string(stdout), "content:\n") || !strings.Contains(string(stdout), "title: \"Y\"") && !strings.Contains(string(stdout), "title: Y") {
		t.Fatalf("unexpected yaml:\n%s", stdout)
	}

	out := filepath.Join(dir, "doc.json")
	mustRun(t, "export", "--out", out)
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("export is not json: %v\n%s", err, b)
	}
	if items, _ := doc["content"].([]any); len(items) != 1 {
		t.Fatalf("unexpected export: %s", b)
	}
	if _, _, err := runCLI(t, []string{"export", "--out", out}); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
}

func TestCLI_ExportHTML(t *testing.T) {
	isolate(t)
	mustRun(t, "add", "checklist", "--title", "Trip", "--entry", "passport")

	stdout, stderr, err := runCLI(t, []string{"export", "--format", "html"})
	if err != nil {
		t.Fatalf("export html: %v\n%s", err, stderr)
	}
	page := string(stdout)
	for _, want := range []string{"<!doctype html>", "<h1>Trip</h1>", "passport"} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected %q in export:\n%s", want, page)
		}
	}
}

func TestCLI_Docs(t *testing.T) {
	isolate(t)

	stdout, _, err := runCLI(t, []string{"docs"})
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	if !strings.Contains(string(stdout), "storage") {
		t.Fatalf("expected topic list; got %s", stdout)
	}

	stdout, _, err = runCLI(t, []string{"docs", "keys", "--raw"})
	if err != nil {
		t.Fatalf("docs keys: %v", err)
	}
	if !strings.HasPrefix(string(stdout), "# Keys") {
		t.Fatalf("unexpected raw topic: %s", stdout)
	}

	if _, _, err := runCLI(t, []string{"docs", "nope"}); err == nil {
		t.Fatalf("expected unknown topic error")
	}
}
