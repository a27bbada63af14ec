package ticket

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerefharsh/amp-csr-portal/internal/model"
	"github.com/zerefharsh/amp-csr-portal/internal/repository/memory"
	"github.com/zerefharsh/amp-csr-portal/pkg/apperror"
)

func newTestService(store *memory.Store) *Service {
	return NewService(store.Tickets(), store.Members())
}

func seedMember(store *memory.Store, name, email string) *model.Member {
	m := &model.Member{
		ID: uuid.New(), Name: name, Email: email,
		Status: model.MemberStatusActive, CreatedAt: time.Now(),
	}
	store.PutMember(m)
	return m
}

func seedTicket(store *memory.Store, m *model.Member, subject string, status model.TicketStatus, createdAt time.Time) *model.SupportTicket {
	t := &model.SupportTicket{
		ID: uuid.New(), Subject: subject, Description: "desc",
		Status: status, Priority: model.TicketPriorityMedium, Category: model.TicketCategoryGeneral,
		Member:    model.TicketMember{ID: m.ID, Name: m.Name, Email: m.Email},
		CreatedAt: createdAt,
	}
	store.PutTicket(t)
	return t
}

func TestListTicketsNewestFirst(t *testing.T) {
	store := memory.NewStore()
	m := seedMember(store, "Alice", "alice@example.com")
	old := seedTicket(store, m, "Old issue", model.TicketStatusOpen, time.Now().Add(-24*time.Hour))
	recent := seedTicket(store, m, "Recent issue", model.TicketStatusOpen, time.Now())
	svc := newTestService(store)

	tickets, err := svc.ListTickets(context.Background(), model.TicketFilters{})
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, recent.ID, tickets[0].ID)
	assert.Equal(t, old.ID, tickets[1].ID)
}

func TestListTicketsAllSentinel(t *testing.T) {
	store := memory.NewStore()
	m := seedMember(store, "Alice", "alice@example.com")
	seedTicket(store, m, "Open", model.TicketStatusOpen, time.Now())
	seedTicket(store, m, "Closed", model.TicketStatusClosed, time.Now())
	svc := newTestService(store)

	// "all" is the same as no filter.
	tickets, err := svc.ListTickets(context.Background(), model.TicketFilters{
		Status: "all", Priority: "all", Category: "all",
	})
	require.NoError(t, err)
	assert.Len(t, tickets, 2)

	tickets, err = svc.ListTickets(context.Background(), model.TicketFilters{Status: "open"})
	require.NoError(t, err)
	assert.Len(t, tickets, 1)
}

func TestListTicketsRejectsInvalidFilters(t *testing.T) {
	svc := newTestService(memory.NewStore())

	for _, filters := range []model.TicketFilters{
		{Status: "pending"},
		{Priority: "urgent"},
		{Category: "sales"},
	} {
		_, err := svc.ListTickets(context.Background(), filters)
		assert.True(t, errors.Is(err, apperror.ErrValidation), "filters %+v must be rejected", filters)
	}
}

func TestListTicketsSearch(t *testing.T) {
	store := memory.NewStore()
	alice := seedMember(store, "Alice", "alice@example.com")
	bob := seedMember(store, "Bob", "bob@example.com")
	match := seedTicket(store, alice, "Billing question", model.TicketStatusOpen, time.Now())
	seedTicket(store, bob, "App crash", model.TicketStatusOpen, time.Now())
	svc := newTestService(store)

	// Customer name.
	tickets, err := svc.ListTickets(context.Background(), model.TicketFilters{Search: "alice"})
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, match.ID, tickets[0].ID)

	// Subject.
	tickets, err = svc.ListTickets(context.Background(), model.TicketFilters{Search: "billing"})
	require.NoError(t, err)
	require.Len(t, tickets, 1)

	// Ticket id.
	tickets, err = svc.ListTickets(context.Background(), model.TicketFilters{Search: match.ID.String()})
	require.NoError(t, err)
	require.Len(t, tickets, 1)
}

func TestCreateTicketFreezesMemberSnapshot(t *testing.T) {
	store := memory.NewStore()
	m := seedMember(store, "Alice", "alice@example.com")
	svc := newTestService(store)

	created, err := svc.CreateTicket(context.Background(), &model.CreateTicketRequest{
		MemberID: m.ID, Subject: "Cannot log in", Description: "details",
		Priority: model.TicketPriorityHigh, Category: model.TicketCategoryAccount,
	})
	require.NoError(t, err)
	assert.Equal(t, model.TicketStatusOpen, created.Status)
	assert.Equal(t, "Alice", created.Member.Name)

	// Renaming the member later must not rewrite the ticket snapshot.
	name := "Alice Cooper"
	require.NoError(t, store.Members().Update(context.Background(), m.ID, &model.UpdateMemberRequest{Name: &name}))

	got, err := svc.GetTicket(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Member.Name)
}

func TestCreateTicketUnknownMember(t *testing.T) {
	svc := newTestService(memory.NewStore())

	_, err := svc.CreateTicket(context.Background(), &model.CreateTicketRequest{
		MemberID: uuid.New(), Subject: "s", Description: "d",
		Priority: model.TicketPriorityLow, Category: model.TicketCategoryGeneral,
	})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestCreateTicketRejectsInvalidEnums(t *testing.T) {
	store := memory.NewStore()
	m := seedMember(store, "Alice", "alice@example.com")
	svc := newTestService(store)

	_, err := svc.CreateTicket(context.Background(), &model.CreateTicketRequest{
		MemberID: m.ID, Subject: "s", Description: "d",
		Priority: "urgent", Category: model.TicketCategoryGeneral,
	})
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	_, err = svc.CreateTicket(context.Background(), &model.CreateTicketRequest{
		MemberID: m.ID, Subject: "s", Description: "d",
		Priority: model.TicketPriorityLow, Category: "sales",
	})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestUpdateTicketForwardProgress(t *testing.T) {
	store := memory.NewStore()
	m := seedMember(store, "Alice", "alice@example.com")
	ticket := seedTicket(store, m, "Issue", model.TicketStatusOpen, time.Now())
	svc := newTestService(store)
	ctx := context.Background()

	inProgress := model.TicketStatusInProgress
	got, err := svc.UpdateTicket(ctx, ticket.ID, &model.UpdateTicketRequest{Status: &inProgress})
	require.NoError(t, err)
	assert.Equal(t, model.TicketStatusInProgress, got.Status)
	assert.NotNil(t, got.LastResponse, "any update must stamp last response")

	// Moving backwards is rejected.
	open := model.TicketStatusOpen
	_, err = svc.UpdateTicket(ctx, ticket.ID, &model.UpdateTicketRequest{Status: &open})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestUpdateTicketClosedIsTerminal(t *testing.T) {
	store := memory.NewStore()
	m := seedMember(store, "Alice", "alice@example.com")
	ticket := seedTicket(store, m, "Issue", model.TicketStatusClosed, time.Now())
	svc := newTestService(store)

	for _, next := range []model.TicketStatus{
		model.TicketStatusOpen, model.TicketStatusInProgress, model.TicketStatusResolved,
	} {
		status := next
		_, err := svc.UpdateTicket(context.Background(), ticket.ID, &model.UpdateTicketRequest{Status: &status})
		assert.True(t, errors.Is(err, apperror.ErrValidation), "closed -> %s must be rejected", next)
	}
}

func TestUpdateTicketReassignment(t *testing.T) {
	store := memory.NewStore()
	m := seedMember(store, "Alice", "alice@example.com")
	ticket := seedTicket(store, m, "Issue", model.TicketStatusInProgress, time.Now())
	svc := newTestService(store)

	agent := "agent.jones"
	got, err := svc.UpdateTicket(context.Background(), ticket.ID, &model.UpdateTicketRequest{AssignedTo: &agent})
	require.NoError(t, err)
	assert.Equal(t, "agent.jones", got.AssignedTo)
	assert.Equal(t, model.TicketStatusInProgress, got.Status)
}

func TestUpdateTicketRejectsEmptyRequest(t *testing.T) {
	store := memory.NewStore()
	m := seedMember(store, "Alice", "alice@example.com")
	ticket := seedTicket(store, m, "Issue", model.TicketStatusOpen, time.Now())
	svc := newTestService(store)

	_, err := svc.UpdateTicket(context.Background(), ticket.ID, &model.UpdateTicketRequest{})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}
