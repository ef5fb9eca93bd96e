package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectItemLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"quicknotes"},
			want: []string{"quicknotes"},
		},
		{
			name: "note id first token",
			in:   []string{"quicknotes", "note-abc123"},
			want: []string{"quicknotes", "show", "note-abc123"},
		},
		{
			name: "checklist id first token",
			in:   []string{"quicknotes", "list-abc123"},
			want: []string{"quicknotes", "show", "list-abc123"},
		},
		{
			name: "item id after value flag",
			in:   []string{"quicknotes", "--key", "work", "note-abc123"},
			want: []string{"quicknotes", "--key", "work", "show", "note-abc123"},
		},
		{
			name: "item id after equals flag",
			in:   []string{"quicknotes", "--backend=file", "note-abc123"},
			want: []string{"quicknotes", "--backend=file", "show", "note-abc123"},
		},
		{
			name: "item id after bool flag",
			in:   []string{"quicknotes", "--pretty", "list-abc123"},
			want: []string{"quicknotes", "--pretty", "show", "list-abc123"},
		},
		{
			name: "item id after double dash",
			in:   []string{"quicknotes", "--key", "work", "--", "note-abc123"},
			want: []string{"quicknotes", "--key", "work", "show", "--", "note-abc123"},
		},
		{
			name: "bare prefix is not an id",
			in:   []string{"quicknotes", "note-"},
			want: []string{"quicknotes", "note-"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"quicknotes", "show", "note-abc123"},
			want: []string{"quicknotes", "show", "note-abc123"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"quicknotes", "wat"},
			want: []string{"quicknotes", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectItemLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectItemLookupArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
