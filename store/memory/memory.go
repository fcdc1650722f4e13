// Package memory provides in-memory Store implementations (for testing/dev).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/worksuite/worktime-engine/auth"
	"github.com/worksuite/worktime-engine/calendar"
	"github.com/worksuite/worktime-engine/leave"
	"github.com/worksuite/worktime-engine/worktime"
)

// =============================================================================
// MEMORY STORE - Mirror of the SQLite store, no persistence
// =============================================================================

type Store struct {
	mu         sync.RWMutex
	workLogs   map[userDate]worktime.WorkLogEntry
	carryOvers map[userYear]worktime.CarryOver
	balances   map[userYear]leave.Balance
	entries    map[string][]leave.Entry // keyed by userID
	users      map[string]auth.User     // keyed by username
}

type userDate struct {
	UserID string
	Date   calendar.Date
}

type userYear struct {
	UserID string
	Year   int
}

// Interface conformance.
var (
	_ worktime.Store = (*Store)(nil)
	_ leave.Store    = (*Store)(nil)
	_ auth.Store     = (*Store)(nil)
)

func New() *Store {
	return &Store{
		workLogs:   make(map[userDate]worktime.WorkLogEntry),
		carryOvers: make(map[userYear]worktime.CarryOver),
		balances:   make(map[userYear]leave.Balance),
		entries:    make(map[string][]leave.Entry),
		users:      make(map[string]auth.User),
	}
}

// =============================================================================
// WORK LOG (worktime.Store)
// =============================================================================

func (s *Store) WorkLogRange(_ context.Context, userID string, from, to calendar.Date) (map[calendar.Date]worktime.WorkLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[calendar.Date]worktime.WorkLogEntry)
	for k, entry := range s.workLogs {
		if k.UserID != userID || k.Date.Before(from) || k.Date.After(to) {
			continue
		}
		result[k.Date] = entry
	}
	return result, nil
}

func (s *Store) UpsertWorkLog(_ context.Context, userID string, entry worktime.WorkLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workLogs[userDate{UserID: userID, Date: entry.Date}] = entry
	return nil
}

func (s *Store) DeleteWorkLog(_ context.Context, userID string, date calendar.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.workLogs, userDate{UserID: userID, Date: date})
	return nil
}

func (s *Store) CarryOver(_ context.Context, userID string, year int) (*worktime.CarryOver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	co, ok := s.carryOvers[userYear{UserID: userID, Year: year}]
	if !ok {
		return nil, nil
	}
	return &co, nil
}

func (s *Store) UpsertCarryOver(_ context.Context, userID string, co worktime.CarryOver) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carryOvers[userYear{UserID: userID, Year: co.Year}] = co
	return nil
}

// =============================================================================
// LEAVE (leave.Store)
// =============================================================================

func (s *Store) Balance(_ context.Context, userID string, year int) (*leave.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.balances[userYear{UserID: userID, Year: year}]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (s *Store) UpsertBalance(_ context.Context, userID string, b leave.Balance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[userYear{UserID: userID, Year: b.Year}] = b
	return nil
}

func (s *Store) Entries(_ context.Context, userID string, year int) ([]leave.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []leave.Entry
	for _, e := range s.entries[userID] {
		if e.Date.Year == year {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (s *Store) AddEntry(_ context.Context, userID string, e leave.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[userID] = append(s.entries[userID], e)
	return nil
}

func (s *Store) DeleteEntry(_ context.Context, userID, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[userID][:0]
	for _, e := range s.entries[userID] {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	s.entries[userID] = kept
	return nil
}

// =============================================================================
// USERS (auth.Store)
// =============================================================================

func (s *Store) CreateUser(_ context.Context, u auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.Username]; exists {
		return auth.ErrUsernameTaken
	}
	s.users[u.Username] = u
	return nil
}

func (s *Store) UserByUsername(_ context.Context, username string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *Store) UserByID(_ context.Context, id string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}
