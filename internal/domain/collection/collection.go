package collection

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tiendc/go-deepcopy"

	"github.com/rpggio/quotestudio/internal/domain/project"
)

// CopyPrefix marks the name of a duplicated project.
const CopyPrefix = "Copy of "

// Collection is the ordered project history with exactly one active project.
// Operations return a new Collection and never modify the receiver.
type Collection struct {
	projects []project.Project
	activeID string
}

// New builds a collection from projects, dropping duplicate project ids and
// duplicate item ids inside each project. Unknown item categories become
// project.CategoryOther. The active id falls back to the first
// project when it does not match. An empty list is rejected.
func New(projects []project.Project, activeID string) (Collection, error) {
	var c Collection
	seen := map[string]bool{}
	for _, p := range projects {
		if p.ID == "" || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		c.projects = append(c.projects, dedupeItems(p))
	}
	if len(c.projects) == 0 {
		return Collection{}, ErrEmpty
	}
	c.activeID = activeID
	if c.index(activeID) < 0 {
		c.activeID = c.projects[0].ID
	}
	return c, nil
}

// Projects returns copies of the projects in history order.
func (c Collection) Projects() []project.Project {
	out := make([]project.Project, len(c.projects))
	for i, p := range c.projects {
		out[i] = p.Clone()
	}
	return out
}

// Len returns the number of projects.
func (c Collection) Len() int {
	return len(c.projects)
}

// ActiveID returns the id of the active project.
func (c Collection) ActiveID() string {
	return c.activeID
}

// Active returns the active project.
func (c Collection) Active() project.Project {
	if i := c.index(c.activeID); i >= 0 {
		return c.projects[i].Clone()
	}
	return project.Project{}
}

// Get returns the project with the given id.
func (c Collection) Get(id string) (project.Project, bool) {
	if i := c.index(id); i >= 0 {
		return c.projects[i].Clone(), true
	}
	return project.Project{}, false
}

// Summaries lists the projects for the history view.
func (c Collection) Summaries() []project.ProjectSummary {
	out := make([]project.ProjectSummary, len(c.projects))
	for i, p := range c.projects {
		out[i] = p.Summary()
		out[i].Active = p.ID == c.activeID
	}
	return out
}

// Select makes id the active project; unknown ids are a no-op.
func (c Collection) Select(id string) Collection {
	if c.index(id) < 0 {
		return c
	}
	next := c.clone()
	next.activeID = id
	return next
}

// Create prepends a new project built from tmpl and makes it active.
func (c Collection) Create(tmpl project.Project) (Collection, project.Project) {
	p := tmpl.Clone()
	p.ID = uuid.NewString()
	items := make([]project.ServiceItem, 0, len(p.Items))
	for _, item := range p.Items {
		item.ID = uuid.NewString()
		items = append(items, item)
	}
	p.Items = items
	p.UpdatedAt = time.Now()

	next := c.clone()
	next.projects = append([]project.Project{p}, next.projects...)
	next.activeID = p.ID
	return next, p.Clone()
}

// Duplicate deep-copies the project with the given id under fresh project and
// item ids, prepends the copy and makes it active. Unknown ids are a no-op and
// report false.
func (c Collection) Duplicate(id string) (Collection, project.Project, bool, error) {
	src, ok := c.Get(id)
	if !ok {
		return c, project.Project{}, false, nil
	}

	var dup project.Project
	if err := deepcopy.Copy(&dup, &src); err != nil {
		return c, project.Project{}, false, fmt.Errorf("copying project: %w", err)
	}
	dup.Name = CopyPrefix + src.Name

	next, created := c.Create(dup)
	return next, created, true, nil
}

// Delete removes the project with the given id. Deleting the only project is
// refused with ErrLastProject. When the active project is removed the first
// remaining project becomes active. Unknown ids are a no-op.
func (c Collection) Delete(id string) (Collection, error) {
	i := c.index(id)
	if i < 0 {
		return c, nil
	}
	if len(c.projects) == 1 {
		return c, ErrLastProject
	}

	next := c.clone()
	next.projects = append(next.projects[:i:i], next.projects[i+1:]...)
	if next.activeID == id {
		next.activeID = next.projects[0].ID
	}
	return next, nil
}

// Replace swaps in a new state for the project with the same id. The project
// keeps its position; unknown ids are a no-op.
func (c Collection) Replace(p project.Project) Collection {
	i := c.index(p.ID)
	if i < 0 {
		return c
	}
	next := c.clone()
	next.projects[i] = dedupeItems(p)
	return next
}

// UpdateActive applies fn to the active project.
func (c Collection) UpdateActive(fn func(project.Project) project.Project) Collection {
	return c.Replace(fn(c.Active()))
}

func (c Collection) index(id string) int {
	for i, p := range c.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (c Collection) clone() Collection {
	projects := make([]project.Project, len(c.projects))
	copy(projects, c.projects)
	return Collection{projects: projects, activeID: c.activeID}
}

func dedupeItems(p project.Project) project.Project {
	p = p.Clone()
	seen := make(map[string]bool, len(p.Items))
	items := p.Items[:0]
	for _, item := range p.Items {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		item.Category = project.ParseCategory(string(item.Category))
		items = append(items, item)
	}
	p.Items = items
	return p
}
