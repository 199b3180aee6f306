package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"festival-pass/model"
	"festival-pass/outbound/sqlgen"
	"festival-pass/ticketcode"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/suite"
)

type BookingStoreTestSuite struct {
	suite.Suite

	PgxMock pgxmock.PgxPoolIface
	store   *BookingStore
}

func (s *BookingStoreTestSuite) SetupTest() {
	pool, err := pgxmock.NewPool()
	if err != nil {
		s.T().Fatalf("failed to create pgxmock pool: %v", err)
	}

	s.PgxMock = pool
	s.store = New(pool, sqlgen.New(pool))
}

func (s *BookingStoreTestSuite) TearDownTest() {
	s.PgxMock.Close()
}

func TestBookingStoreTestSuite(t *testing.T) {
	suite.Run(t, new(BookingStoreTestSuite))
}

func text(v string) pgtype.Text {
	return pgtype.Text{String: v, Valid: true}
}

func (s *BookingStoreTestSuite) payment() model.PaymentDetails {
	return model.PaymentDetails{
		PaymentID: "pay_123",
		OrderID:   "order_456",
		Amount:    399,
		Status:    "success",
		Timestamp: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (s *BookingStoreTestSuite) tickets() []model.Ticket {
	return []model.Ticket{
		{
			Type: model.TicketSingle,
			Adults: []model.Attendee{
				{FirstName: "Asha", LastName: "Sharma", Email: "asha@example.com", Mobile: "9876543210", Address: "12 MG Road"},
			},
		},
		{
			Type:          model.TicketCouple,
			ChildrenCount: 1,
			Adults: []model.Attendee{
				{FirstName: "Ravi", LastName: "Gupta", Email: "ravi@example.com"},
				{FirstName: "Meena", LastName: "Gupta"},
			},
			Children: []model.Attendee{
				{FirstName: "Anu", LastName: "Gupta"},
			},
		},
	}
}

func (s *BookingStoreTestSuite) TestSaveSuccess() {
	const bookingID = "BK123XYZ"
	payment := s.payment()
	tickets := s.tickets()

	s.PgxMock.ExpectBegin()
	s.PgxMock.ExpectQuery("INSERT INTO bookings").
		WithArgs(bookingID, text("pay_123"), text("order_456"), int64(399), "success",
			pgtype.Timestamp{Time: payment.Timestamp, Valid: true}).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

	s.PgxMock.ExpectExec("INSERT INTO tickets").
		WithArgs(bookingID, int32(0), "single", int32(0), text(ticketcode.Generate(bookingID, 0))).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	s.PgxMock.ExpectExec("INSERT INTO customers").
		WithArgs(bookingID, int32(0), "adult", int32(0), "Asha", "Sharma",
			text("asha@example.com"), text("9876543210"), text("12 MG Road")).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	s.PgxMock.ExpectExec("INSERT INTO tickets").
		WithArgs(bookingID, int32(1), "couple", int32(1), text(ticketcode.Generate(bookingID, 1))).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	s.PgxMock.ExpectExec("INSERT INTO customers").
		WithArgs(bookingID, int32(1), "adult", int32(0), "Ravi", "Gupta",
			text("ravi@example.com"), text(""), text("")).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	s.PgxMock.ExpectExec("INSERT INTO customers").
		WithArgs(bookingID, int32(1), "adult", int32(1), "Meena", "Gupta",
			text(""), text(""), text("")).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	s.PgxMock.ExpectExec("INSERT INTO customers").
		WithArgs(bookingID, int32(1), "child", int32(0), "Anu", "Gupta",
			text(""), text(""), text("")).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	s.PgxMock.ExpectCommit()

	returned, err := s.store.Save(context.Background(), bookingID, payment, tickets)

	s.NoError(err)
	s.Equal(bookingID, returned)
	s.NoError(s.PgxMock.ExpectationsWereMet())
}

func (s *BookingStoreTestSuite) TestSaveBookingInsertError() {
	s.PgxMock.ExpectBegin()
	s.PgxMock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(fmt.Errorf("unique constraint violation"))
	s.PgxMock.ExpectRollback()

	_, err := s.store.Save(context.Background(), "BK123XYZ", s.payment(), s.tickets())

	s.Error(err)
	s.NoError(s.PgxMock.ExpectationsWereMet())
}

func (s *BookingStoreTestSuite) TestSaveTicketInsertError() {
	const bookingID = "BK123XYZ"
	payment := s.payment()

	s.PgxMock.ExpectBegin()
	s.PgxMock.ExpectQuery("INSERT INTO bookings").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
	s.PgxMock.ExpectExec("INSERT INTO tickets").
		WillReturnError(fmt.Errorf("connection reset"))
	s.PgxMock.ExpectRollback()

	_, err := s.store.Save(context.Background(), bookingID, payment, s.tickets())

	s.Error(err)
	s.NoError(s.PgxMock.ExpectationsWereMet())
}

func (s *BookingStoreTestSuite) TestSaveCommitError() {
	const bookingID = "SOLO"
	payment := s.payment()
	tickets := []model.Ticket{
		{
			Type:   model.TicketSingle,
			Adults: []model.Attendee{{FirstName: "Asha", LastName: "Sharma"}},
		},
	}

	s.PgxMock.ExpectBegin()
	s.PgxMock.ExpectQuery("INSERT INTO bookings").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
	s.PgxMock.ExpectExec("INSERT INTO tickets").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	s.PgxMock.ExpectExec("INSERT INTO customers").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	s.PgxMock.ExpectCommit().WillReturnError(fmt.Errorf("commit error"))
	s.PgxMock.ExpectRollback()

	_, err := s.store.Save(context.Background(), bookingID, payment, tickets)

	s.Error(err)
}

func (s *BookingStoreTestSuite) bookingColumns() []string {
	return []string{"id", "booking_id", "payment_id", "order_id", "amount", "payment_status", "payment_timestamp", "created_at"}
}

func (s *BookingStoreTestSuite) ticketColumns() []string {
	return []string{"id", "booking_id", "ticket_index", "ticket_type", "children_count", "ticket_code", "created_at"}
}

func (s *BookingStoreTestSuite) customerColumns() []string {
	return []string{"id", "booking_id", "ticket_index", "customer_type", "customer_index", "first_name", "last_name", "email", "mobile", "address", "created_at"}
}

func (s *BookingStoreTestSuite) TestFindAll() {
	ts := pgtype.Timestamp{Time: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC), Valid: true}

	s.PgxMock.ExpectQuery("SELECT (.+) FROM bookings").
		WillReturnRows(pgxmock.NewRows(s.bookingColumns()).
			AddRow(int64(2), "BK2", text("pay_2"), text("order_2"), int64(798), "success", ts, ts).
			AddRow(int64(1), "BK1", text("pay_1"), text("order_1"), int64(399), "success", ts, ts))

	s.PgxMock.ExpectQuery("SELECT (.+) FROM tickets").
		WillReturnRows(pgxmock.NewRows(s.ticketColumns()).
			AddRow(int64(10), "BK1", int32(0), "single", int32(0), text("165 1455 945"), ts).
			AddRow(int64(11), "BK2", int32(0), "couple", int32(2), text("217 9919 721"), ts).
			AddRow(int64(12), "BK2", int32(1), "single", int32(0), text("265 8455 445"), ts))

	s.PgxMock.ExpectQuery("SELECT (.+) FROM customers").
		WillReturnRows(pgxmock.NewRows(s.customerColumns()).
			AddRow(int64(20), "BK1", int32(0), "adult", int32(0), "Asha", "Sharma", text("asha@example.com"), text("9876543210"), text(""), ts).
			AddRow(int64(21), "BK2", int32(0), "adult", int32(0), "Ravi", "Gupta", text("ravi@example.com"), text(""), text(""), ts).
			AddRow(int64(22), "BK2", int32(0), "adult", int32(1), "Meena", "Gupta", text(""), text(""), text(""), ts).
			AddRow(int64(23), "BK2", int32(0), "child", int32(0), "Anu", "Gupta", text(""), text(""), text(""), ts).
			AddRow(int64(24), "BK2", int32(0), "child", int32(1), "Binu", "Gupta", text(""), text(""), text(""), ts).
			AddRow(int64(25), "BK2", int32(1), "adult", int32(0), "Kiran", "Rao", text(""), text(""), text(""), ts))

	bookings, err := s.store.FindAll(context.Background())

	s.Require().NoError(err)
	s.Require().Len(bookings, 2)

	s.Equal("BK2", bookings[0].ID)
	s.Equal("BK1", bookings[1].ID)

	s.Require().Len(bookings[0].Tickets, 2)
	first := bookings[0].Tickets[0]
	s.Equal(0, first.Index)
	s.Equal(model.TicketCouple, first.Type)
	s.Equal(2, first.ChildrenCount)
	s.Require().Len(first.Adults, 2)
	s.Equal("Ravi Gupta", first.Adults[0].FullName())
	s.Equal("Meena Gupta", first.Adults[1].FullName())
	s.Require().Len(first.Children, 2)
	s.Equal("Anu Gupta", first.Children[0].FullName())

	second := bookings[0].Tickets[1]
	s.Equal(1, second.Index)
	s.Equal("265 8455 445", second.Code)
	s.Len(second.Adults, 1)
	s.Empty(second.Children)

	s.Require().Len(bookings[1].Tickets, 1)
	s.Equal("165 1455 945", bookings[1].Tickets[0].Code)
	s.Equal(int64(399), bookings[1].Payment.Amount)
	s.Equal("pay_1", bookings[1].Payment.PaymentID)
}

func (s *BookingStoreTestSuite) TestFindByID() {
	ts := pgtype.Timestamp{Time: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC), Valid: true}

	s.PgxMock.ExpectQuery("SELECT (.+) FROM bookings WHERE booking_id").
		WithArgs("BK1").
		WillReturnRows(pgxmock.NewRows(s.bookingColumns()).
			AddRow(int64(1), "BK1", text("pay_1"), text("order_1"), int64(399), "success", ts, ts))
	s.PgxMock.ExpectQuery("SELECT (.+) FROM tickets").
		WithArgs("BK1").
		WillReturnRows(pgxmock.NewRows(s.ticketColumns()).
			AddRow(int64(10), "BK1", int32(0), "single", int32(0), text("165 1455 945"), ts))
	s.PgxMock.ExpectQuery("SELECT (.+) FROM customers").
		WithArgs("BK1").
		WillReturnRows(pgxmock.NewRows(s.customerColumns()).
			AddRow(int64(20), "BK1", int32(0), "adult", int32(0), "Asha", "Sharma", text("asha@example.com"), text("9876543210"), text(""), ts))

	booking, err := s.store.FindByID(context.Background(), "BK1")

	s.Require().NoError(err)
	s.Equal("BK1", booking.ID)
	s.Require().Len(booking.Tickets, 1)
	s.Equal("165 1455 945", booking.Tickets[0].Code)
	s.Require().Len(booking.Tickets[0].Adults, 1)
	s.Equal("asha@example.com", booking.Tickets[0].Adults[0].Email)
}

func (s *BookingStoreTestSuite) TestFindByIDNotFound() {
	s.PgxMock.ExpectQuery("SELECT (.+) FROM bookings WHERE booking_id").
		WithArgs("MISSING").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.store.FindByID(context.Background(), "MISSING")

	s.ErrorIs(err, ErrBookingNotFound)
}
