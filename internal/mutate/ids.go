package mutate

import (
	"crypto/rand"
	"encoding/base32"
	"strings"

	"quicknotes-cli/internal/model"
)

const (
	prefixNote      = "note"
	prefixChecklist = "list"
	prefixEntry     = "entry"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

// uniqueID draws ids until exists reports false.
func uniqueID(prefix string, exists func(string) bool) (string, error) {
	for {
		id, err := newRandomID(prefix)
		if err != nil {
			return "", err
		}
		if !exists(id) {
			return id, nil
		}
	}
}

func itemIDExists(doc *model.Document) func(string) bool {
	return func(id string) bool {
		return IndexOf(doc, id) >= 0
	}
}

func entryIDExists(c *model.Checklist) func(string) bool {
	return func(id string) bool {
		return c.FindEntry(id) != nil
	}
}
