package ratecard

import (
	"github.com/google/uuid"

	"github.com/rpggio/quotestudio/internal/domain/project"
)

// Entries returns a copy of the card's entries.
func (c Card) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries.
func (c Card) Len() int {
	return len(c.entries)
}

// Get returns the entry with the given id.
func (c Card) Get(id string) (Entry, bool) {
	for _, e := range c.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Add appends an entry under a freshly generated id and returns the new card
// with the stored entry.
func (c Card) Add(e Entry) (Card, Entry) {
	e.ID = c.freshID()
	if !e.Category.Valid() {
		e.Category = project.CategoryOther
	}
	if e.Price < 0 {
		e.Price = 0
	}
	next := Card{entries: append(c.Entries(), e)}
	return next, e
}

// Update merges patch into the entry with the given id; unknown ids are a no-op.
// Service items copied from the entry earlier are not affected.
func (c Card) Update(id string, patch EntryPatch) Card {
	next := Card{entries: c.Entries()}
	for i := range next.entries {
		if next.entries[i].ID != id {
			continue
		}
		e := &next.entries[i]
		if patch.RoleName != nil {
			e.RoleName = *patch.RoleName
		}
		if patch.Category != nil && patch.Category.Valid() {
			e.Category = *patch.Category
		}
		if patch.Price != nil && *patch.Price >= 0 {
			e.Price = *patch.Price
		}
		return next
	}
	return c
}

// Remove drops the entry with the given id. Items referencing it keep their
// copied values and a dangling role id.
func (c Card) Remove(id string) Card {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	if len(out) == len(c.entries) {
		return c
	}
	return Card{entries: out}
}

// Selection returns the item patch that applies entry e to a service item.
// Values are copied at selection time only.
func (e Entry) Selection() project.ItemPatch {
	roleID := e.ID
	name := e.RoleName
	category := e.Category
	price := e.Price
	return project.ItemPatch{
		RoleID:    &roleID,
		Name:      &name,
		Category:  &category,
		DailyCost: &price,
	}
}

// Template returns an item template pre-filled from e.
func (e Entry) Template() project.ItemTemplate {
	return project.ItemTemplate{
		RoleID:    e.ID,
		Category:  e.Category,
		Name:      e.RoleName,
		DailyCost: e.Price,
	}
}

func (c Card) freshID() string {
	for {
		id := uuid.NewString()
		if _, taken := c.Get(id); !taken {
			return id
		}
	}
}
