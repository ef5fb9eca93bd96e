package format

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	Zeta  string   `json:"zeta"`
	Alpha int      `json:"alpha"`
	Tags  []string `json:"tags"`
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample{Zeta: "z", Alpha: 1, Tags: []string{}}, "", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "{\"zeta\":\"z\",\"alpha\":1,\"tags\":[]}\n" {
		t.Fatalf("unexpected json: %q", got)
	}
}

func TestWrite_YAMLKeepsFieldOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample{Zeta: "z", Alpha: 1, Tags: []string{"a", "b"}}, "yaml", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "zeta: z\nalpha: 1\ntags:\n  - a\n  - b\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected yaml:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestWrite_YAMLMultilineString(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]string{"content": "milk\neggs"}, "yaml", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "milk") || !strings.Contains(buf.String(), "eggs") {
		t.Fatalf("expected content in yaml: %s", buf.String())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, "edn", false); err == nil {
		t.Fatalf("expected error")
	}
}
