package store

import (
	"context"
	"fmt"

	"quicknotes-cli/internal/model"
)

// DefaultKey is the key the Document lives under.
const DefaultKey = "quickNotesData"

// DocumentStore reads and writes the whole Document under one key.
type DocumentStore struct {
	KV  KV
	Key string
}

func NewDocumentStore(kv KV, key string) *DocumentStore {
	if key == "" {
		key = DefaultKey
	}
	return &DocumentStore{KV: kv, Key: key}
}

// Load returns an empty Document when nothing has been saved yet.
func (s *DocumentStore) Load(ctx context.Context) (*model.Document, error) {
	b, ok, err := s.KV.Get(ctx, s.Key)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if !ok {
		return model.NewDocument(), nil
	}
	doc, err := model.DecodeDocument(b)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return doc, nil
}

func (s *DocumentStore) Save(ctx context.Context, doc *model.Document) error {
	b, err := model.EncodeDocument(doc)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return s.SaveRaw(ctx, b)
}

// SaveRaw writes an already encoded Document. The TUI encodes on its event
// loop and writes from a command goroutine.
func (s *DocumentStore) SaveRaw(ctx context.Context, b []byte) error {
	if err := s.KV.Set(ctx, s.Key, b); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func (s *DocumentStore) Close() error {
	if s == nil || s.KV == nil {
		return nil
	}
	return s.KV.Close()
}
