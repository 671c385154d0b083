package ticket

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a missing ticket.
	ErrNotFound = errors.New("Ticket not found")
	// ErrUnknownEmail rejects tickets from emails without an account.
	ErrUnknownEmail = errors.New("Please use an email linked to an account with us")
	// ErrMessageRequired rejects tickets without a message.
	ErrMessageRequired = errors.New("Message is required")
	// ErrMessageTooLong rejects messages over the length limit.
	ErrMessageTooLong = errors.New("Message must be 160 characters or less")
	// ErrTypeRequired rejects tickets without a type.
	ErrTypeRequired = errors.New("Ticket type is required")
)

// MaxMessageLength bounds the support message body.
const MaxMessageLength = 160

// Status enumerates the ticket lifecycle states.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Ticket models a support request linked to a user account.
type Ticket struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Type      string    `json:"ticketType"`
	Message   string    `json:"message"`
	Status    Status    `json:"status"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Counts summarises tickets by status for the admin console.
type Counts struct {
	Total  int `json:"totalCount"`
	Open   int `json:"openCount"`
	Closed int `json:"closedCount"`
}
