package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	t.Parallel()

	got := strings.Join(Topics(), ",")
	if got != "config,keys,markdown,storage" {
		t.Fatalf("unexpected topics: %s", got)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	body, ok := Get(" Keys ")
	if !ok || !strings.HasPrefix(body, "# Keys") {
		t.Fatalf("expected keys topic; got ok=%v %q", ok, body)
	}
	for _, bad := range []string{"", "nope", "../docs"} {
		if _, ok := Get(bad); ok {
			t.Fatalf("expected %q to be unknown", bad)
		}
	}
}
