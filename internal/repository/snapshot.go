package repository

import (
	"time"

	"github.com/rpggio/quotestudio/internal/domain/project"
	"github.com/rpggio/quotestudio/internal/domain/ratecard"
)

// Snapshot is the full persisted state of one owner's workspace.
type Snapshot struct {
	Projects        []project.Project `json:"projects"`
	ActiveProjectID string            `json:"activeProjectId,omitempty"`
	Rates           ratecard.Card     `json:"rates"`
	SavedAt         time.Time         `json:"savedAt"`
}

// Empty reports whether the snapshot carries no projects.
func (s *Snapshot) Empty() bool {
	return s == nil || len(s.Projects) == 0
}
