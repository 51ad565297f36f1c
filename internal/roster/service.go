// Package roster manages named, ordered, size-bounded collections of
// catalog record ids.
package roster

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	pkgerrors "pokedex/pkg/errors"
	"pokedex/pkg/logging"
	"pokedex/pkg/models"
)

const (
	EventCreated    = "roster.created"
	EventMembersSet = "roster.members_set"

	eventBuffer = 256
)

// Store is the roster persistence.
type Store interface {
	Create(ctx context.Context, name string) (*models.Roster, error)
	Get(ctx context.Context, id int64) (*models.Roster, error)
	List(ctx context.Context, q ListQuery) ([]models.Roster, error)
	SetMembers(ctx context.Context, rosterID int64, recordIDs []int) (*models.Roster, error)
}

// Publisher receives roster events; delivery is best-effort.
type Publisher interface {
	BroadcastJSON(v any)
}

type Service struct {
	store Store
	log   zerolog.Logger

	// writeMu orders mutations with their events, so the feed sees
	// events in commit order.
	writeMu sync.Mutex
	closed  bool
	events  chan models.RosterEvent
	done    chan struct{}
}

// NewService wires the manager; pub may be nil. Events are delivered to
// pub one at a time from a single goroutine until Close.
func NewService(store Store, pub Publisher) *Service {
	s := &Service{store: store, log: logging.Component("roster")}
	if pub != nil {
		s.events = make(chan models.RosterEvent, eventBuffer)
		s.done = make(chan struct{})
		go s.deliver(pub)
	}
	return s
}

func (s *Service) deliver(pub Publisher) {
	defer close(s.done)
	for ev := range s.events {
		pub.BroadcastJSON(ev)
	}
}

// Close stops event delivery after the queued events are published.
func (s *Service) Close() {
	if s.events == nil {
		return
	}
	s.writeMu.Lock()
	if !s.closed {
		s.closed = true
		close(s.events)
	}
	s.writeMu.Unlock()
	<-s.done
}

func (s *Service) Create(ctx context.Context, name string) (*models.Roster, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.NewValidationError("name", name, "must not be empty")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	ro, err := s.store.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	s.publish(EventCreated, ro)
	return ro, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Roster, error) {
	ro, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if ro == nil {
		return nil, pkgerrors.NewNotFoundError("roster", id)
	}
	return ro, nil
}

// ListParams mirrors catalog paging: a nil Limit returns everything.
type ListParams struct {
	Search string
	Limit  *int
	Offset *int
}

func (s *Service) List(ctx context.Context, p ListParams) ([]models.Roster, error) {
	q := ListQuery{Search: p.Search, Limit: -1}
	if p.Limit != nil {
		if *p.Limit < 0 {
			return nil, pkgerrors.NewValidationError("limit", *p.Limit, "must be >= 0")
		}
		q.Limit = *p.Limit
	}
	if p.Offset != nil {
		if *p.Offset < 0 {
			return nil, pkgerrors.NewValidationError("offset", *p.Offset, "must be >= 0")
		}
		q.Offset = *p.Offset
	}
	return s.store.List(ctx, q)
}

// SetMembers replaces the roster's members with recordIDs in order.
// Repeated ids are kept at each position they appear. Any failure leaves
// the previous members in place.
func (s *Service) SetMembers(ctx context.Context, rosterID int64, recordIDs []int) (*models.Roster, error) {
	if len(recordIDs) > models.MaxRosterMembers {
		return nil, pkgerrors.NewValidationError("pokemons", len(recordIDs), "a roster holds at most 6 members")
	}
	if recordIDs == nil {
		recordIDs = []int{}
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	ro, err := s.store.SetMembers(ctx, rosterID, recordIDs)
	if err != nil {
		return nil, err
	}
	s.publish(EventMembersSet, ro)
	return ro, nil
}

// publish queues an event; callers hold writeMu. A full queue drops the
// event rather than stalling the write path.
func (s *Service) publish(kind string, ro *models.Roster) {
	if s.events == nil || s.closed || ro == nil {
		return
	}
	ev := models.RosterEvent{
		Type:     kind,
		RosterID: ro.ID,
		Name:     ro.Name,
		Members:  ro.MemberIDs(),
		At:       time.Now().UTC(),
	}
	select {
	case s.events <- ev:
		s.log.Debug().Str("type", kind).Int64("roster_id", ro.ID).Msg("queued roster event")
	default:
		s.log.Warn().Str("type", kind).Int64("roster_id", ro.ID).Msg("event queue full, dropping roster event")
	}
}
