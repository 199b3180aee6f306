package model

import (
	"strings"
	"time"
)

type TicketType string

const (
	TicketSingle TicketType = "single"
	TicketCouple TicketType = "couple"
)

// AdultCount is the number of adult attendees a ticket of this type carries.
func (t TicketType) AdultCount() int {
	if t == TicketCouple {
		return 2
	}
	return 1
}

func (t TicketType) Label() string {
	if t == TicketCouple {
		return "Couple Pass"
	}
	return "Single Pass"
}

type Attendee struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"omitempty,email"`
	Mobile    string `json:"mobile" validate:"omitempty,max=20"`
	Address   string `json:"address" validate:"omitempty,max=500"`
}

func (a Attendee) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Ticket is the write-side shape of one pass: adult and child rosters keyed by
// slice position, never by stringly map keys.
type Ticket struct {
	Type          TicketType `json:"type" validate:"required,oneof=single couple"`
	ChildrenCount int        `json:"children_count" validate:"gte=0,lte=10"`
	Adults        []Attendee `json:"adults" validate:"required,min=1,max=2,dive"`
	Children      []Attendee `json:"children" validate:"omitempty,dive"`
}

type PaymentDetails struct {
	PaymentID string    `json:"payment_id" validate:"required,max=100"`
	OrderID   string    `json:"order_id" validate:"required,max=100"`
	Amount    int64     `json:"amount" validate:"required,gt=0"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// BookingTicket is the read-side shape: a Ticket plus its immutable position
// and the code derived from (booking id, position) at save time.
type BookingTicket struct {
	Index int    `json:"ticket_index"`
	Code  string `json:"ticket_code"`
	Ticket
}

type Booking struct {
	ID        string          `json:"booking_id"`
	Payment   PaymentDetails  `json:"payment"`
	CreatedAt time.Time       `json:"created_at"`
	Tickets   []BookingTicket `json:"tickets"`
}
