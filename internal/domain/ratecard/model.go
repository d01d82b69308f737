package ratecard

import (
	"encoding/json"

	"github.com/rpggio/quotestudio/internal/domain/project"
)

// Entry is a reusable role definition with a standard daily price.
type Entry struct {
	ID       string           `json:"id"`
	RoleName string           `json:"roleName"`
	Category project.Category `json:"category"`
	Price    float64          `json:"price"`
}

// EntryPatch lists the entry fields to change; nil fields are left untouched.
type EntryPatch struct {
	RoleName *string           `json:"roleName,omitempty"`
	Category *project.Category `json:"category,omitempty"`
	Price    *float64          `json:"price,omitempty"`
}

// Card is the studio's catalog of rate entries keyed by id.
type Card struct {
	entries []Entry
}

// New builds a card from entries, dropping duplicate ids.
func New(entries []Entry) Card {
	var c Card
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.ID == "" || seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		c.entries = append(c.entries, e)
	}
	return c
}

// MarshalJSON encodes the card as a plain list of entries.
func (c Card) MarshalJSON() ([]byte, error) {
	if c.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.entries)
}

// UnmarshalJSON decodes a list of entries.
func (c *Card) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*c = New(entries)
	return nil
}
