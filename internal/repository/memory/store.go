// Package memory provides an in-memory implementation of the repository
// interfaces. It mirrors the SQL semantics of the postgres package closely
// enough to back service-level tests without a database.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zerefharsh/amp-csr-portal/internal/model"
)

// Store holds every entity behind one mutex so cross-entity operations
// (joins, transfers, derived member fields) stay consistent.
type Store struct {
	mu            sync.RWMutex
	members       map[uuid.UUID]*model.Member
	vehicles      map[uuid.UUID]*model.Vehicle
	subscriptions map[uuid.UUID]*model.Subscription
	tickets       map[uuid.UUID]*model.SupportTicket
}

func NewStore() *Store {
	return &Store{
		members:       make(map[uuid.UUID]*model.Member),
		vehicles:      make(map[uuid.UUID]*model.Vehicle),
		subscriptions: make(map[uuid.UUID]*model.Subscription),
		tickets:       make(map[uuid.UUID]*model.SupportTicket),
	}
}

// Seed helpers. Copies are stored so callers cannot mutate state behind the
// store's back.

func (s *Store) PutMember(m *model.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	s.members[m.ID] = &cp
}

func (s *Store) PutVehicle(v *model.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *v
	s.vehicles[v.ID] = &cp
}

func (s *Store) PutSubscription(sub *model.Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sub
	s.subscriptions[sub.ID] = &cp
}

func (s *Store) PutTicket(t *model.SupportTicket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.tickets[t.ID] = &cp
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// sortNewestFirst orders by creation time descending with the id as a
// deterministic tiebreak, matching the postgres ORDER BY.
func sortNewestFirst[T any](rows []T, createdAt func(T) time.Time, id func(T) uuid.UUID) {
	sort.SliceStable(rows, func(i, j int) bool {
		ci, cj := createdAt(rows[i]), createdAt(rows[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return id(rows[i]).String() < id(rows[j]).String()
	})
}

func paginate[T any](rows []T, page model.Pagination) []T {
	start := (page.Page - 1) * page.Limit
	if start >= len(rows) {
		return []T{}
	}
	end := start + page.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
