package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const tuiStateFileName = "tui_state.json"

// TUIState stores small UI state for restoring the cursor on relaunch.
// Callers tolerate missing or invalid data.
type TUIState struct {
	Version int `json:"version"`

	// Key scopes the selection to one Document key.
	Key            string `json:"key,omitempty"`
	SelectedItemID string `json:"selectedItemId,omitempty"`
	// Row is the focused row inside the selected block (header|body|entry id|add).
	Row string `json:"row,omitempty"`
}

func (s Store) tuiStatePath() string {
	return filepath.Join(s.Dir, tuiStateFileName)
}

func (s Store) LoadTUIState() (*TUIState, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &TUIState{Version: 1}, nil
	}
	b, err := os.ReadFile(s.tuiStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &TUIState{Version: 1}, nil
		}
		return nil, err
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Corrupt state is treated as missing.
		return &TUIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (s Store) SaveTUIState(st *TUIState) error {
	if st == nil || strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(s.Dir, "tui_state.*.tmp", s.tuiStatePath(), b, 0o644)
}
