package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zerefharsh/amp-csr-portal/internal/model"
	"github.com/zerefharsh/amp-csr-portal/internal/repository"
	"github.com/zerefharsh/amp-csr-portal/pkg/apperror"
)

type ticketRepository struct {
	BaseRepository
}

func NewTicketRepository(base BaseRepository) repository.TicketRepository {
	return &ticketRepository{base}
}

// The customer snapshot is frozen onto the ticket row at intake
// (customer_name/customer_email), so ticket search does not depend on the
// members table.
const ticketColumns = `
	id, subject, description, status, priority, category,
	member_id AS "member.id",
	customer_name AS "member.name",
	customer_email AS "member.email",
	assigned_to, created_at, last_response`

func (r *ticketRepository) List(ctx context.Context, filters model.TicketFilters) ([]*model.SupportTicket, error) {
	query := `
		SELECT` + ticketColumns + `
		FROM support_tickets
		WHERE ($1 = '' OR customer_name ILIKE '%' || $1 || '%'
			OR customer_email ILIKE '%' || $1 || '%'
			OR subject ILIKE '%' || $1 || '%'
			OR id::text ILIKE '%' || $1 || '%')
		AND ($2 = '' OR status = $2)
		AND ($3 = '' OR priority = $3)
		AND ($4 = '' OR category = $4)
		ORDER BY created_at DESC, id`

	tickets := []*model.SupportTicket{}
	err := r.db.SelectContext(ctx, &tickets, query,
		filters.Search, filters.Status, filters.Priority, filters.Category)
	if err != nil {
		return nil, translateErr(err, "support tickets")
	}
	return tickets, nil
}

func (r *ticketRepository) Get(ctx context.Context, id uuid.UUID) (*model.SupportTicket, error) {
	query := `SELECT` + ticketColumns + ` FROM support_tickets WHERE id = $1`

	var ticket model.SupportTicket
	if err := r.db.GetContext(ctx, &ticket, query, id); err != nil {
		return nil, translateErr(err, "support ticket")
	}
	return &ticket, nil
}

func (r *ticketRepository) Create(ctx context.Context, ticket *model.SupportTicket) error {
	query := `
		INSERT INTO support_tickets (
			id, member_id, customer_name, customer_email, subject,
			description, status, priority, category, assigned_to, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	ticket.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		ticket.ID,
		ticket.Member.ID,
		ticket.Member.Name,
		ticket.Member.Email,
		ticket.Subject,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.Category,
		ticket.AssignedTo,
		ticket.CreatedAt,
	)
	return translateErr(err, "support ticket")
}

// Update is the agent response path: every update stamps last_response.
func (r *ticketRepository) Update(ctx context.Context, id uuid.UUID, req *model.UpdateTicketRequest) error {
	query := `
		UPDATE support_tickets SET
			status = COALESCE($2, status),
			assigned_to = COALESCE($3, assigned_to),
			last_response = $4
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		id,
		(*string)(req.Status),
		req.AssignedTo,
		time.Now(),
	)
	if err != nil {
		return translateErr(err, "support ticket")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.Store("failed to get rows affected", err)
	}
	if rows == 0 {
		return apperror.NotFound("support ticket")
	}
	return nil
}
