// Package store persists the booking aggregate: one bookings row, its tickets
// ordered by index, and the adult/child customers of every ticket.
package store

import (
	"context"
	"errors"

	"festival-pass/common"
	"festival-pass/common/contract"
	"festival-pass/common/otel"
	"festival-pass/model"
	"festival-pass/outbound/sqlgen"
	"festival-pass/ticketcode"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var ErrBookingNotFound = errors.New("booking not found")

const (
	customerTypeAdult = "adult"
	customerTypeChild = "child"
)

type BookingStore struct {
	Db      contract.DbConn
	Querier *sqlgen.Queries
}

func New(db contract.DbConn, querier *sqlgen.Queries) *BookingStore {
	return &BookingStore{Db: db, Querier: querier}
}

// Save writes the whole aggregate in one transaction. Ticket codes are
// derived and stored here so reads never recompute them. The slice position
// of each ticket becomes its immutable ticket_index.
func (s *BookingStore) Save(ctx context.Context, bookingID string, payment model.PaymentDetails, tickets []model.Ticket) (string, error) {
	ctx, span := otel.Tracer.Start(ctx, "BookingStore.Save")
	defer span.End()

	tx, err := s.Db.Begin(ctx)
	if err != nil {
		common.UtilSpanError(span, err)
		return "", err
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			common.UtilSpanError(span, err)
		}
	}()

	withTx := s.Querier.WithTx(tx)

	status := payment.Status
	if status == "" {
		status = "success"
	}

	_, err = withTx.InsertBooking(ctx, sqlgen.InsertBookingParams{
		BookingID:        bookingID,
		PaymentID:        textVal(payment.PaymentID),
		OrderID:          textVal(payment.OrderID),
		Amount:           payment.Amount,
		PaymentStatus:    status,
		PaymentTimestamp: pgtype.Timestamp{Time: payment.Timestamp, Valid: !payment.Timestamp.IsZero()},
	})
	if err != nil {
		return "", err
	}

	for idx, ticket := range tickets {
		err = withTx.InsertTicket(ctx, sqlgen.InsertTicketParams{
			BookingID:     bookingID,
			TicketIndex:   int32(idx),
			TicketType:    string(ticket.Type),
			ChildrenCount: int32(ticket.ChildrenCount),
			TicketCode:    textVal(ticketcode.Generate(bookingID, idx)),
		})
		if err != nil {
			return "", err
		}

		for adultIdx, adult := range ticket.Adults {
			err = withTx.InsertCustomer(ctx, sqlgen.InsertCustomerParams{
				BookingID:     bookingID,
				TicketIndex:   int32(idx),
				CustomerType:  customerTypeAdult,
				CustomerIndex: int32(adultIdx),
				FirstName:     adult.FirstName,
				LastName:      adult.LastName,
				Email:         textVal(adult.Email),
				Mobile:        textVal(adult.Mobile),
				Address:       textVal(adult.Address),
			})
			if err != nil {
				return "", err
			}
		}

		for childIdx, child := range ticket.Children {
			err = withTx.InsertCustomer(ctx, sqlgen.InsertCustomerParams{
				BookingID:     bookingID,
				TicketIndex:   int32(idx),
				CustomerType:  customerTypeChild,
				CustomerIndex: int32(childIdx),
				FirstName:     child.FirstName,
				LastName:      child.LastName,
				Email:         textVal(""),
				Mobile:        textVal(""),
				Address:       textVal(""),
			})
			if err != nil {
				return "", err
			}
		}
	}

	if err = tx.Commit(ctx); err != nil {
		common.UtilSpanError(span, err)
		return "", err
	}

	return bookingID, nil
}

// FindAll reads the three tables whole and joins them in memory: bookings
// newest first, tickets by ascending index, customers by role then index.
func (s *BookingStore) FindAll(ctx context.Context) ([]model.Booking, error) {
	ctx, span := otel.Tracer.Start(ctx, "BookingStore.FindAll")
	defer span.End()

	bookingRows, err := s.Querier.ListBookings(ctx)
	if err != nil {
		common.UtilSpanError(span, err)
		return nil, err
	}

	ticketRows, err := s.Querier.ListTickets(ctx)
	if err != nil {
		common.UtilSpanError(span, err)
		return nil, err
	}

	customerRows, err := s.Querier.ListCustomers(ctx)
	if err != nil {
		common.UtilSpanError(span, err)
		return nil, err
	}

	ticketsByBooking := make(map[string][]sqlgen.Ticket)
	for _, t := range ticketRows {
		ticketsByBooking[t.BookingID] = append(ticketsByBooking[t.BookingID], t)
	}

	customersByBooking := make(map[string][]sqlgen.Customer)
	for _, c := range customerRows {
		customersByBooking[c.BookingID] = append(customersByBooking[c.BookingID], c)
	}

	bookings := make([]model.Booking, 0, len(bookingRows))
	for _, b := range bookingRows {
		bookings = append(bookings, assemble(b, ticketsByBooking[b.BookingID], customersByBooking[b.BookingID]))
	}

	return bookings, nil
}

// FindByID returns the same nested shape as FindAll for a single booking, via
// indexed lookups instead of full scans.
func (s *BookingStore) FindByID(ctx context.Context, bookingID string) (model.Booking, error) {
	ctx, span := otel.Tracer.Start(ctx, "BookingStore.FindByID")
	defer span.End()

	bookingRow, err := s.Querier.FindBookingByBookingId(ctx, bookingID)
	if err == pgx.ErrNoRows {
		return model.Booking{}, ErrBookingNotFound
	}
	if err != nil {
		common.UtilSpanError(span, err)
		return model.Booking{}, err
	}

	ticketRows, err := s.Querier.ListTicketsByBookingId(ctx, bookingID)
	if err != nil {
		common.UtilSpanError(span, err)
		return model.Booking{}, err
	}

	customerRows, err := s.Querier.ListCustomersByBookingId(ctx, bookingID)
	if err != nil {
		common.UtilSpanError(span, err)
		return model.Booking{}, err
	}

	return assemble(bookingRow, ticketRows, customerRows), nil
}

func assemble(b sqlgen.Booking, tickets []sqlgen.Ticket, customers []sqlgen.Customer) model.Booking {
	booking := model.Booking{
		ID: b.BookingID,
		Payment: model.PaymentDetails{
			PaymentID: b.PaymentID.String,
			OrderID:   b.OrderID.String,
			Amount:    b.Amount,
			Status:    b.PaymentStatus,
			Timestamp: b.PaymentTimestamp.Time,
		},
		CreatedAt: b.CreatedAt.Time,
		Tickets:   make([]model.BookingTicket, 0, len(tickets)),
	}

	for _, t := range tickets {
		ticket := model.BookingTicket{
			Index: int(t.TicketIndex),
			Code:  t.TicketCode.String,
			Ticket: model.Ticket{
				Type:          model.TicketType(t.TicketType),
				ChildrenCount: int(t.ChildrenCount),
			},
		}

		for _, c := range customers {
			if c.TicketIndex != t.TicketIndex {
				continue
			}

			attendee := model.Attendee{
				FirstName: c.FirstName,
				LastName:  c.LastName,
				Email:     c.Email.String,
				Mobile:    c.Mobile.String,
				Address:   c.Address.String,
			}

			switch c.CustomerType {
			case customerTypeAdult:
				ticket.Adults = append(ticket.Adults, attendee)
			case customerTypeChild:
				ticket.Children = append(ticket.Children, attendee)
			}
		}

		booking.Tickets = append(booking.Tickets, ticket)
	}

	return booking
}

func textVal(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: true}
}
