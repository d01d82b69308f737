package persist

import (
	"encoding/json"
	"fmt"

	"github.com/rpggio/quotestudio/internal/repository"
)

// EncodeSnapshot serializes a snapshot to its stored JSON form.
func EncodeSnapshot(snap *repository.Snapshot) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("encode snapshot: %w", repository.ErrInvalidSnapshot)
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a stored snapshot. A bare JSON array of projects is
// accepted as well, which is how browser-local storage kept them.
func DecodeSnapshot(data []byte) (*repository.Snapshot, error) {
	trimmed := firstNonSpace(data)
	if trimmed == '[' {
		var snap repository.Snapshot
		if err := json.Unmarshal(data, &snap.Projects); err != nil {
			return nil, fmt.Errorf("%w: %v", repository.ErrInvalidSnapshot, err)
		}
		return &snap, nil
	}

	var snap repository.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrInvalidSnapshot, err)
	}
	return &snap, nil
}

func firstNonSpace(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		default:
			return b
		}
	}
	return 0
}
