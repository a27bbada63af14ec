package model

import (
	"time"

	"github.com/google/uuid"
)

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// ticketStatusRank orders the agent workflow. Tickets only move forward;
// closed is terminal.
var ticketStatusRank = map[TicketStatus]int{
	TicketStatusOpen:       0,
	TicketStatusInProgress: 1,
	TicketStatusResolved:   2,
	TicketStatusClosed:     3,
}

func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	if s == TicketStatusClosed {
		return next == TicketStatusClosed
	}
	return ticketStatusRank[next] >= ticketStatusRank[s]
}

type TicketPriority string

const (
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityLow    TicketPriority = "low"
)

func (p TicketPriority) Valid() bool {
	return p == TicketPriorityHigh || p == TicketPriorityMedium || p == TicketPriorityLow
}

type TicketCategory string

const (
	TicketCategoryBilling   TicketCategory = "billing"
	TicketCategoryTechnical TicketCategory = "technical"
	TicketCategoryAccount   TicketCategory = "account"
	TicketCategoryGeneral   TicketCategory = "general"
)

func (c TicketCategory) Valid() bool {
	switch c {
	case TicketCategoryBilling, TicketCategoryTechnical, TicketCategoryAccount, TicketCategoryGeneral:
		return true
	}
	return false
}

// TicketMember is the customer snapshot frozen onto a ticket at intake.
type TicketMember struct {
	ID    uuid.UUID `db:"id" json:"id"`
	Name  string    `db:"name" json:"name"`
	Email string    `db:"email" json:"email"`
}

type SupportTicket struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Subject      string         `db:"subject" json:"subject"`
	Description  string         `db:"description" json:"description"`
	Status       TicketStatus   `db:"status" json:"status"`
	Priority     TicketPriority `db:"priority" json:"priority"`
	Category     TicketCategory `db:"category" json:"category"`
	Member       TicketMember   `db:"member" json:"member"`
	AssignedTo   string         `db:"assigned_to" json:"assignedTo"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt"`
	LastResponse *time.Time     `db:"last_response" json:"lastResponse,omitempty"`
}

// TicketFilterAll is the sentinel meaning "no filter" for the status,
// priority and category filters.
const TicketFilterAll = "all"

// TicketFilters narrows a ticket listing. Search matches customer name,
// customer email, subject or ticket id.
type TicketFilters struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Priority string `form:"priority"`
	Category string `form:"category"`
}

type CreateTicketRequest struct {
	MemberID    uuid.UUID      `json:"memberId" binding:"required"`
	Subject     string         `json:"subject" binding:"required"`
	Description string         `json:"description" binding:"required"`
	Priority    TicketPriority `json:"priority" binding:"required"`
	Category    TicketCategory `json:"category" binding:"required"`
	AssignedTo  string         `json:"assignedTo"`
}

// UpdateTicketRequest is the agent response path: a status move, a
// reassignment, or both. Any update refreshes LastResponse.
type UpdateTicketRequest struct {
	Status     *TicketStatus `json:"status"`
	AssignedTo *string       `json:"assignedTo"`
}

func (r *UpdateTicketRequest) Empty() bool {
	return r.Status == nil && r.AssignedTo == nil
}
