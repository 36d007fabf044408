package offline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Journal persists the action queue as a JSON file so queued mutations
// survive restarts. Writes go through a temp file and rename, so a
// crash mid-write leaves the previous snapshot intact.
type Journal struct {
	path string
}

// NewJournal creates a journal backed by the given file path.
func NewJournal(path string) *Journal {
	return &Journal{path: path}
}

// Load reads the persisted queue. A missing file is an empty queue,
// not an error.
func (j *Journal) Load() ([]*Action, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var actions []*Action
	if err := json.Unmarshal(data, &actions); err != nil {
		return nil, fmt.Errorf("failed to decode journal: %w", err)
	}

	return actions, nil
}

// Save atomically replaces the persisted queue.
func (j *Journal) Save(actions []*Action) error {
	if actions == nil {
		actions = []*Action{}
	}

	data, err := json.MarshalIndent(actions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode journal: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(j.path), 0o755); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}

	tmp := j.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}

	if err := os.Rename(tmp, j.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace journal: %w", err)
	}

	return nil
}
