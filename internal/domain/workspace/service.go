// Package workspace holds the authoritative per-owner state: the project
// collection and rate card. Every presentation layer reads and mutates
// through Service; each mutation schedules a debounced save of the whole
// workspace.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rpggio/quotestudio/internal/domain/collection"
	"github.com/rpggio/quotestudio/internal/domain/project"
	"github.com/rpggio/quotestudio/internal/domain/quote"
	"github.com/rpggio/quotestudio/internal/domain/ratecard"
	"github.com/rpggio/quotestudio/internal/domain/suggest"
	"github.com/rpggio/quotestudio/internal/domain/workday"
	"github.com/rpggio/quotestudio/internal/persist"
	"github.com/rpggio/quotestudio/internal/repository"
)

const (
	DefaultSaveDelay = time.Second
	saveTimeout      = 30 * time.Second
)

// Options tunes the service.
type Options struct {
	SaveDelay time.Duration
	Now       func() time.Time
}

// Service handles workspace state and its persistence.
type Service struct {
	store     Store
	suggester Suggester
	logger    *slog.Logger
	now       func() time.Time

	debouncer *persist.Debouncer
	tracker   *suggest.Tracker

	mu     sync.Mutex
	owners map[string]*owner
}

// owner guards one owner's workspace. mu covers st, including the first read
// from the store, so a slow store only holds up that owner. saveMu runs the
// owner's saves one at a time.
type owner struct {
	mu sync.Mutex
	st *state

	saveMu       sync.Mutex
	savedVersion uint64
}

type state struct {
	projects collection.Collection
	rates    ratecard.Card

	// version counts committed mutations. A save is skipped when the store
	// already holds this version.
	version uint64

	// degraded marks a seed standing in for a workspace that could not be
	// read. It is never saved, and the store is read again on next access.
	degraded bool
}

// View is everything a client needs to render the workspace.
type View struct {
	OwnerID       string                   `json:"ownerId"`
	ActiveProject project.Project          `json:"activeProject"`
	Projects      []project.ProjectSummary `json:"projects"`
	Rates         []ratecard.Entry         `json:"rates"`
	Quote         quote.Quote              `json:"quote"`
	Workdays      workday.Span             `json:"workdays"`
	Allocation    []quote.Slice            `json:"allocation"`
}

// NewService creates a new workspace service. A nil store behaves like
// persist.NullStore and a nil suggester like NullSuggester.
func NewService(store Store, suggester Suggester, logger *slog.Logger, opts Options) *Service {
	if store == nil {
		store = persist.NewNullStore()
	}
	if suggester == nil {
		suggester = NullSuggester{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.SaveDelay <= 0 {
		opts.SaveDelay = DefaultSaveDelay
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Service{
		store:     store,
		suggester: suggester,
		logger:    logger,
		now:       opts.Now,
		tracker:   suggest.NewTracker(),
		owners:    map[string]*owner{},
	}
	s.debouncer = persist.NewDebouncer(opts.SaveDelay, s.saveInBackground)
	return s
}

// Workspace returns the owner's full view, including derived figures for the
// active project.
func (s *Service) Workspace(ctx context.Context, ownerID string) View {
	var v View
	s.read(ctx, ownerID, func(st *state) {
		active := st.projects.Active()
		v = View{
			OwnerID:       ownerID,
			ActiveProject: active,
			Projects:      st.projects.Summaries(),
			Rates:         st.rates.Entries(),
			Quote:         quote.Compute(active),
			Workdays:      workday.Compute(active.StartDate, active.EndDate),
			Allocation:    quote.Allocation(active),
		}
	})
	return v
}

// Snapshot returns the owner's state in its persisted form.
func (s *Service) Snapshot(ctx context.Context, ownerID string) *repository.Snapshot {
	var snap *repository.Snapshot
	s.read(ctx, ownerID, func(st *state) {
		snap = st.snapshot(s.now())
	})
	return snap
}

// Projects lists the history.
func (s *Service) Projects(ctx context.Context, ownerID string) []project.ProjectSummary {
	var out []project.ProjectSummary
	s.read(ctx, ownerID, func(st *state) {
		out = st.projects.Summaries()
	})
	return out
}

// Project returns the project with the given id, or the active project when
// id is empty.
func (s *Service) Project(ctx context.Context, ownerID, id string) (project.Project, error) {
	var (
		p  project.Project
		ok bool
	)
	s.read(ctx, ownerID, func(st *state) {
		if id == "" {
			p, ok = st.projects.Active(), true
			return
		}
		p, ok = st.projects.Get(id)
	})
	if !ok {
		return project.Project{}, project.ErrProjectNotFound
	}
	return p, nil
}

// Quote computes the quotation for the active project.
func (s *Service) Quote(ctx context.Context, ownerID string) quote.Quote {
	var q quote.Quote
	s.read(ctx, ownerID, func(st *state) {
		q = quote.Compute(st.projects.Active())
	})
	return q
}

// Allocation computes the cost allocation for the active project.
func (s *Service) Allocation(ctx context.Context, ownerID string) []quote.Slice {
	var out []quote.Slice
	s.read(ctx, ownerID, func(st *state) {
		out = quote.Allocation(st.projects.Active())
	})
	return out
}

// Workdays computes the active project's schedule span.
func (s *Service) Workdays(ctx context.Context, ownerID string) workday.Span {
	var span workday.Span
	s.read(ctx, ownerID, func(st *state) {
		active := st.projects.Active()
		span = workday.Compute(active.StartDate, active.EndDate)
	})
	return span
}

// SelectProject makes id the active project. Unknown ids leave the selection
// unchanged.
func (s *Service) SelectProject(ctx context.Context, ownerID, id string) project.Project {
	var active project.Project
	s.mutate(ctx, ownerID, func(st *state) error {
		st.projects = st.projects.Select(id)
		active = st.projects.Active()
		return nil
	})
	return active
}

// CreateProject prepends a blank project, applying patch on top of the
// defaults, and makes it active.
func (s *Service) CreateProject(ctx context.Context, ownerID string, patch project.FieldsPatch) project.Project {
	var created project.Project
	s.mutate(ctx, ownerID, func(st *state) error {
		tmpl := project.UpdateFields(collection.BlankProject(ownerID, s.now()), patch)
		st.projects, created = st.projects.Create(tmpl)
		return nil
	})
	return created
}

// DuplicateProject copies the project with the given id and makes the copy
// active. The boolean is false when id is unknown.
func (s *Service) DuplicateProject(ctx context.Context, ownerID, id string) (project.Project, bool, error) {
	var (
		dup project.Project
		ok  bool
	)
	err := s.mutate(ctx, ownerID, func(st *state) error {
		next, created, found, err := st.projects.Duplicate(id)
		if err != nil {
			return err
		}
		if !found {
			return errNoChange
		}
		st.projects, dup, ok = next, created, true
		return nil
	})
	if err != nil {
		return project.Project{}, false, err
	}
	return dup, ok, nil
}

// DeleteProject removes a project and returns the project that is active
// afterwards. Deleting the only project fails with collection.ErrLastProject.
func (s *Service) DeleteProject(ctx context.Context, ownerID, id string) (project.Project, error) {
	var active project.Project
	err := s.mutate(ctx, ownerID, func(st *state) error {
		next, err := st.projects.Delete(id)
		if err != nil {
			return err
		}
		st.projects = next
		active = next.Active()
		return nil
	})
	if err != nil {
		return project.Project{}, err
	}
	return active, nil
}

// UpdateProject merges patch into the active project.
func (s *Service) UpdateProject(ctx context.Context, ownerID string, patch project.FieldsPatch) project.Project {
	return s.updateActive(ctx, ownerID, func(p project.Project) project.Project {
		return project.UpdateFields(p, patch)
	})
}

// AddItem appends a new item built from tmpl to the active project.
func (s *Service) AddItem(ctx context.Context, ownerID string, tmpl project.ItemTemplate) (project.Project, project.ServiceItem) {
	var item project.ServiceItem
	p := s.updateActive(ctx, ownerID, func(p project.Project) project.Project {
		p, item = project.AddItem(p, tmpl)
		return p
	})
	return p, item
}

// UpdateItem merges patch into one item of the active project.
func (s *Service) UpdateItem(ctx context.Context, ownerID, itemID string, patch project.ItemPatch) project.Project {
	return s.updateItem(ctx, ownerID, itemID, func(p project.Project) project.Project {
		return project.UpdateItem(p, itemID, patch)
	})
}

// EditItem merges patch into one item of the active project and then changes
// its estimated days by daysDelta, as a single mutation.
func (s *Service) EditItem(ctx context.Context, ownerID, itemID string, patch project.ItemPatch, daysDelta float64) project.Project {
	return s.updateItem(ctx, ownerID, itemID, func(p project.Project) project.Project {
		p = project.UpdateItem(p, itemID, patch)
		if daysDelta != 0 {
			p = project.AdjustDays(p, itemID, daysDelta)
		}
		return p
	})
}

// RemoveItem removes one item from the active project.
func (s *Service) RemoveItem(ctx context.Context, ownerID, itemID string) project.Project {
	return s.updateItem(ctx, ownerID, itemID, func(p project.Project) project.Project {
		return project.RemoveItem(p, itemID)
	})
}

// AdjustDays changes an item's estimated days by delta, never below zero.
func (s *Service) AdjustDays(ctx context.Context, ownerID, itemID string, delta float64) project.Project {
	return s.updateItem(ctx, ownerID, itemID, func(p project.Project) project.Project {
		return project.AdjustDays(p, itemID, delta)
	})
}

// ApplyRate copies a rate entry's role, category and price into an item of
// the active project. Unknown rate or item ids are a no-op.
func (s *Service) ApplyRate(ctx context.Context, ownerID, itemID, rateID string) project.Project {
	var active project.Project
	s.mutate(ctx, ownerID, func(st *state) error {
		active = st.projects.Active()
		entry, ok := st.rates.Get(rateID)
		if !ok {
			return errNoChange
		}
		if _, ok := active.Item(itemID); !ok {
			return errNoChange
		}
		st.projects = st.projects.UpdateActive(func(p project.Project) project.Project {
			return project.UpdateItem(p, itemID, entry.Selection())
		})
		active = st.projects.Active()
		return nil
	})
	return active
}

// Rates lists the rate card.
func (s *Service) Rates(ctx context.Context, ownerID string) []ratecard.Entry {
	var out []ratecard.Entry
	s.read(ctx, ownerID, func(st *state) {
		out = st.rates.Entries()
	})
	return out
}

// AddRate appends an entry to the rate card under a fresh id.
func (s *Service) AddRate(ctx context.Context, ownerID string, entry ratecard.Entry) ratecard.Entry {
	var added ratecard.Entry
	s.mutate(ctx, ownerID, func(st *state) error {
		st.rates, added = st.rates.Add(entry)
		return nil
	})
	return added
}

// UpdateRate merges patch into a rate entry. Existing items are unaffected.
func (s *Service) UpdateRate(ctx context.Context, ownerID, id string, patch ratecard.EntryPatch) []ratecard.Entry {
	var out []ratecard.Entry
	s.mutate(ctx, ownerID, func(st *state) error {
		st.rates = st.rates.Update(id, patch)
		out = st.rates.Entries()
		return nil
	})
	return out
}

// RemoveRate drops a rate entry. Items that referenced it keep their values.
func (s *Service) RemoveRate(ctx context.Context, ownerID, id string) []ratecard.Entry {
	var out []ratecard.Entry
	s.mutate(ctx, ownerID, func(st *state) error {
		st.rates = st.rates.Remove(id)
		out = st.rates.Entries()
		return nil
	})
	return out
}

// SuggestItems asks the suggestion service for items and appends them to the
// project that was active when the request started. A newer request for the
// same owner supersedes this one; its results are then discarded with
// suggest.ErrSuperseded.
func (s *Service) SuggestItems(ctx context.Context, ownerID, prompt string) ([]project.ServiceItem, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, suggest.ErrEmptyPrompt
	}

	var targetID string
	s.read(ctx, ownerID, func(st *state) {
		targetID = st.projects.ActiveID()
	})
	ticket := s.tracker.Begin(ownerID)

	suggestions, err := s.suggester.Suggest(ctx, prompt)
	if err != nil {
		s.logger.Warn("suggestion request failed", "owner", ownerID, "error", err)
		if errors.Is(err, suggest.ErrUnavailable) || errors.Is(err, suggest.ErrEmptyPrompt) {
			return nil, fmt.Errorf("suggest items: %w", err)
		}
		return nil, fmt.Errorf("suggest items: %w: %w", suggest.ErrUnavailable, err)
	}

	var added []project.ServiceItem
	err = s.mutate(ctx, ownerID, func(st *state) error {
		if !s.tracker.Current(ownerID, ticket) {
			return suggest.ErrSuperseded
		}
		target, ok := st.projects.Get(targetID)
		if !ok {
			target = st.projects.Active()
		}
		for _, tmpl := range suggest.Templates(suggestions) {
			var item project.ServiceItem
			target, item = project.AddItem(target, tmpl)
			added = append(added, item)
		}
		if len(added) == 0 {
			return errNoChange
		}
		st.projects = st.projects.Replace(target)
		return nil
	})
	if err != nil {
		if errors.Is(err, suggest.ErrSuperseded) {
			s.logger.Info("discarding superseded suggestions", "owner", ownerID, "count", len(suggestions))
		}
		return nil, err
	}

	s.logger.Info("suggested items added", "owner", ownerID, "project_id", targetID, "count", len(added))
	if added == nil {
		added = []project.ServiceItem{}
	}
	return added, nil
}

// Flush cancels pending debounced saves and writes every workspace with
// unsaved changes. It waits for saves already in flight.
func (s *Service) Flush(ctx context.Context) error {
	s.debouncer.Stop()

	s.mu.Lock()
	ownerIDs := make([]string, 0, len(s.owners))
	for ownerID := range s.owners {
		ownerIDs = append(ownerIDs, ownerID)
	}
	s.mu.Unlock()

	var errs []error
	for _, ownerID := range ownerIDs {
		if err := s.save(ctx, ownerID); err != nil {
			errs = append(errs, fmt.Errorf("owner %s: %w", ownerID, err))
		}
	}
	return errors.Join(errs...)
}

// errNoChange aborts a mutation without scheduling a save.
var errNoChange = errors.New("no change")

func (s *Service) updateActive(ctx context.Context, ownerID string, fn func(project.Project) project.Project) project.Project {
	var active project.Project
	s.mutate(ctx, ownerID, func(st *state) error {
		st.projects = st.projects.UpdateActive(fn)
		active = st.projects.Active()
		return nil
	})
	return active
}

// updateItem applies fn to the active project when it holds itemID. Unknown
// items leave the workspace untouched and schedule no save.
func (s *Service) updateItem(ctx context.Context, ownerID, itemID string, fn func(project.Project) project.Project) project.Project {
	var active project.Project
	s.mutate(ctx, ownerID, func(st *state) error {
		active = st.projects.Active()
		if _, ok := active.Item(itemID); !ok {
			return errNoChange
		}
		st.projects = st.projects.UpdateActive(fn)
		active = st.projects.Active()
		return nil
	})
	return active
}

// mutate runs fn on a scratch copy of the owner's state and commits it when fn
// succeeds. Collections and cards are values, so a failed fn leaves nothing
// behind.
func (s *Service) mutate(ctx context.Context, ownerID string, fn func(*state) error) error {
	o := s.entry(ownerID)
	o.mu.Lock()
	defer o.mu.Unlock()

	current := s.load(ctx, o, ownerID)
	scratch := *current
	if err := fn(&scratch); err != nil {
		if errors.Is(err, errNoChange) {
			return nil
		}
		return err
	}
	scratch.version++
	*current = scratch
	if !current.degraded {
		s.debouncer.Trigger(ownerID)
	}
	return nil
}

func (s *Service) read(ctx context.Context, ownerID string, fn func(*state)) {
	o := s.entry(ownerID)
	o.mu.Lock()
	defer o.mu.Unlock()
	fn(s.load(ctx, o, ownerID))
}

// entry returns the owner entry for ownerID, creating it on first use.
func (s *Service) entry(ownerID string) *owner {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.owners[ownerID]
	if !ok {
		o = &owner{}
		s.owners[ownerID] = o
	}
	return o
}

// load returns the owner's cached state, reading it from the store on first
// use. A read failure falls back to a degraded seed workspace, which is
// retried on every later access until the store answers. Edits made to a
// degraded workspace are dropped once the stored one loads. Callers hold o.mu.
func (s *Service) load(ctx context.Context, o *owner, ownerID string) *state {
	if o.st != nil && !o.st.degraded {
		return o.st
	}

	st, persistSeed := s.restore(ctx, ownerID)
	if st.degraded && o.st != nil {
		return o.st
	}
	if o.st != nil {
		s.logger.Info("workspace recovered after failed load", "owner", ownerID)
	}

	// The restored state matches the store unless it is a fresh seed.
	st.version = o.savedVersion
	if persistSeed {
		st.version++
		s.debouncer.Trigger(ownerID)
	}
	o.st = st
	return st
}

func (s *Service) restore(ctx context.Context, ownerID string) (*state, bool) {
	snap, err := s.store.Load(ctx, ownerID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.logger.Info("no stored workspace, seeding", "owner", ownerID)
		return s.seed(ownerID), true
	case err != nil:
		s.logger.Error("failed to load workspace, using unsaved seed", "owner", ownerID, "error", err)
		st := s.seed(ownerID)
		st.degraded = true
		return st, false
	case snap.Empty():
		s.logger.Info("stored workspace is empty, seeding", "owner", ownerID)
		return s.seed(ownerID), true
	}

	projects := snap.Projects
	for i := range projects {
		projects[i].OwnerID = ownerID
	}
	c, err := collection.New(projects, snap.ActiveProjectID)
	if err != nil {
		s.logger.Error("stored workspace is invalid, seeding", "owner", ownerID, "error", err)
		return s.seed(ownerID), false
	}

	rates := snap.Rates
	if rates.Len() == 0 {
		rates = ratecard.Default()
	}
	s.logger.Debug("workspace loaded", "owner", ownerID, "projects", c.Len(), "rates", rates.Len())
	return &state{projects: c, rates: rates}, false
}

func (s *Service) seed(ownerID string) *state {
	return &state{
		projects: collection.Seed(ownerID, s.now()),
		rates:    ratecard.Default(),
	}
}

func (s *Service) saveInBackground(ownerID string) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	_ = s.save(ctx, ownerID)
}

// save writes the owner's current state. Saves for one owner never overlap,
// and the snapshot is taken once the previous save has finished, so an older
// snapshot can never land after a newer one.
func (s *Service) save(ctx context.Context, ownerID string) error {
	o := s.entry(ownerID)
	o.saveMu.Lock()
	defer o.saveMu.Unlock()

	o.mu.Lock()
	var (
		snap    *repository.Snapshot
		version uint64
	)
	if o.st != nil && !o.st.degraded && o.st.version > o.savedVersion {
		snap = o.st.snapshot(s.now())
		version = o.st.version
	}
	o.mu.Unlock()
	if snap == nil {
		return nil
	}

	if err := s.store.Save(ctx, ownerID, snap); err != nil {
		s.logger.Warn("failed to save workspace", "owner", ownerID, "error", err)
		return err
	}

	o.mu.Lock()
	o.savedVersion = version
	o.mu.Unlock()
	s.logger.Debug("workspace saved", "owner", ownerID, "projects", len(snap.Projects), "version", version)
	return nil
}

func (st *state) snapshot(now time.Time) *repository.Snapshot {
	return &repository.Snapshot{
		Projects:        st.projects.Projects(),
		ActiveProjectID: st.projects.ActiveID(),
		Rates:           st.rates,
		SavedAt:         now,
	}
}
