// Package booking holds the domain service: confirming paid bookings,
// creating offline bookings, rendering passes on demand and fanning the
// confirmation mails out per ticket.
package booking

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"sync"
	"time"

	"festival-pass/common"
	"festival-pass/common/constant"
	"festival-pass/common/otel"
	"festival-pass/model"
	"festival-pass/pass"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	ErrRosterMismatch = errors.New("ticket roster does not match ticket type")
	ErrTicketNotFound = errors.New("ticket not found")
)

const (
	offlinePaymentId = "OFFLINE_PAYMENT"
	offlineOrderId   = "OFFLINE_ORDER"
	offlineStatus    = "offline"
)

type Store interface {
	Save(ctx context.Context, bookingID string, payment model.PaymentDetails, tickets []model.Ticket) (string, error)
	FindAll(ctx context.Context) ([]model.Booking, error)
	FindByID(ctx context.Context, bookingID string) (model.Booking, error)
}

type Mailer interface {
	Send(ctx context.Context, to []string, subject string, htmlBody string, attachments []pass.Pass) error
}

type Renderer interface {
	Render(req pass.Request) (pass.Pass, error)
}

type Service struct {
	Store    Store
	Mailer   Mailer
	Renderer Renderer
	Js       jetstream.Publisher

	eventName  string
	eventDate  string
	eventTime  string
	eventVenue string

	tmpl    *template.Template
	printer *message.Printer
}

func NewService(cfg *viper.Viper, store Store, mailer Mailer, renderer Renderer, js jetstream.Publisher) (*Service, error) {
	tmpl, err := template.New("booking_confirmation").Parse(constant.EmailBookingConfirmationTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse confirmation template: %w", err)
	}

	return &Service{
		Store:      store,
		Mailer:     mailer,
		Renderer:   renderer,
		Js:         js,
		eventName:  cfg.GetString("event.name"),
		eventDate:  cfg.GetString("event.date"),
		eventTime:  cfg.GetString("event.time"),
		eventVenue: cfg.GetString("event.venue"),
		tmpl:       tmpl,
		printer:    message.NewPrinter(language.English),
	}, nil
}

// Confirm persists a paid booking and fans the confirmation mail out to every
// distinct adult email of every ticket, each mail carrying that ticket's pass.
// Delivery failures never fail the confirmation: persistence already happened
// and the response reports each address individually.
func (s *Service) Confirm(ctx context.Context, req model.ConfirmBookingRequest) (model.ConfirmBookingResponse, error) {
	ctx, span := otel.Tracer.Start(ctx, "BookingService.Confirm")
	defer span.End()

	if err := validateRosters(req.Tickets); err != nil {
		return model.ConfirmBookingResponse{}, err
	}

	if _, err := s.Store.Save(ctx, req.BookingID, req.Payment, req.Tickets); err != nil {
		common.UtilSpanError(span, err)
		return model.ConfirmBookingResponse{}, err
	}

	booking, err := s.Store.FindByID(ctx, req.BookingID)
	if err != nil {
		common.UtilSpanError(span, err)
		return model.ConfirmBookingResponse{}, err
	}

	results := s.fanOut(ctx, booking)

	// EmailSent means at least one recipient got their mail; per-recipient
	// failures stay visible in Results.
	emailSent := false
	for _, r := range results {
		if r.Sent {
			emailSent = true
			break
		}
	}

	return model.ConfirmBookingResponse{
		BookingID: req.BookingID,
		EmailSent: emailSent,
		Results:   results,
	}, nil
}

// fanOut sends one mail per (ticket, distinct adult email) pair concurrently.
// The same address on two tickets gets two mails, one pass each.
func (s *Service) fanOut(ctx context.Context, booking model.Booking) []model.DeliveryResult {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []model.DeliveryResult
	)

	for _, ticket := range booking.Tickets {
		for _, to := range rosterEmails(ticket) {
			wg.Add(1)
			go func(ticket model.BookingTicket, to string) {
				defer wg.Done()

				err := s.sendTicketMail(ctx, booking, ticket, to)

				result := model.DeliveryResult{Email: to, TicketIndex: ticket.Index, Sent: err == nil}
				if err != nil {
					result.Error = err.Error()
					slog.ErrorContext(ctx, "failed to send confirmation email",
						common.ExtractTraceIDFromCtx(ctx),
						slog.Any(constant.LogFieldErr, err),
						slog.String("email", to),
						slog.Int("ticket_index", ticket.Index),
					)
				}

				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}(ticket, to)
		}
	}

	wg.Wait()
	return results
}

func (s *Service) sendTicketMail(ctx context.Context, booking model.Booking, ticket model.BookingTicket, to string) error {
	p, err := s.Renderer.Render(passRequest(booking.ID, ticket))
	attachments := []pass.Pass{}
	if err != nil {
		slog.WarnContext(ctx, "failed to render pass, sending mail without attachment",
			common.ExtractTraceIDFromCtx(ctx),
			slog.Any(constant.LogFieldErr, err),
		)
	} else {
		attachments = append(attachments, p)
	}

	body, err := s.confirmationBody(booking, ticket, len(attachments) > 0)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf(constant.EmailSubjectBookingConfirmed, s.eventName)
	return s.Mailer.Send(ctx, []string{to}, subject, body, attachments)
}

// CreateOffline persists a booking taken at the venue, with gateway fields
// replaced by offline stand-ins, then queues the pass mails for background
// delivery. Queue errors are logged and swallowed: the booking is already
// durable and admins can re-issue passes.
func (s *Service) CreateOffline(ctx context.Context, req model.OfflineBookingRequest) (model.Booking, error) {
	ctx, span := otel.Tracer.Start(ctx, "BookingService.CreateOffline")
	defer span.End()

	ticket := model.Ticket{
		Type:          req.TicketType,
		ChildrenCount: req.ChildrenCount,
		Adults:        req.Adults,
		Children:      req.Children,
	}
	if err := validateRosters([]model.Ticket{ticket}); err != nil {
		return model.Booking{}, err
	}

	bookingID := "OFFLINE_" + ulid.Make().String()
	payment := model.PaymentDetails{
		PaymentID: offlinePaymentId,
		OrderID:   offlineOrderId,
		Amount:    req.Amount,
		Status:    offlineStatus,
		Timestamp: time.Now(),
	}

	if _, err := s.Store.Save(ctx, bookingID, payment, []model.Ticket{ticket}); err != nil {
		common.UtilSpanError(span, err)
		return model.Booking{}, err
	}

	booking, err := s.Store.FindByID(ctx, bookingID)
	if err != nil {
		common.UtilSpanError(span, err)
		return model.Booking{}, err
	}

	for _, bt := range booking.Tickets {
		for _, to := range rosterEmails(bt) {
			msg := model.SendPassEmailEventMessage{BookingID: bookingID, TicketIndex: bt.Index, To: to}
			if err := common.PublishMessage(ctx, s.Js, constant.SubjectSendPassEmail, msg); err != nil {
				slog.ErrorContext(ctx, "failed to queue pass email",
					common.ExtractTraceIDFromCtx(ctx),
					slog.Any(constant.LogFieldErr, err),
					slog.Any(constant.LogFieldPayload, msg),
				)
			}
		}
	}

	return booking, nil
}

// DownloadPass renders the pass for one ticket of a stored booking.
func (s *Service) DownloadPass(ctx context.Context, bookingID string, ticketIndex int) (pass.Pass, error) {
	ctx, span := otel.Tracer.Start(ctx, "BookingService.DownloadPass")
	defer span.End()

	booking, err := s.Store.FindByID(ctx, bookingID)
	if err != nil {
		return pass.Pass{}, err
	}

	for _, ticket := range booking.Tickets {
		if ticket.Index == ticketIndex {
			return s.Renderer.Render(passRequest(booking.ID, ticket))
		}
	}

	return pass.Pass{}, ErrTicketNotFound
}

// DeliverPassEmail serves the background queue: it re-reads the booking and
// sends the confirmation mail for one ticket to one address.
func (s *Service) DeliverPassEmail(ctx context.Context, msg model.SendPassEmailEventMessage) error {
	ctx, span := otel.Tracer.Start(ctx, "BookingService.DeliverPassEmail")
	defer span.End()

	booking, err := s.Store.FindByID(ctx, msg.BookingID)
	if err != nil {
		common.UtilSpanError(span, err)
		return err
	}

	for _, ticket := range booking.Tickets {
		if ticket.Index == msg.TicketIndex {
			return s.sendTicketMail(ctx, booking, ticket, msg.To)
		}
	}

	return ErrTicketNotFound
}

func (s *Service) ListBookings(ctx context.Context) ([]model.Booking, error) {
	ctx, span := otel.Tracer.Start(ctx, "BookingService.ListBookings")
	defer span.End()

	return s.Store.FindAll(ctx)
}

type confirmationData struct {
	EventName       string
	EventDate       string
	EventTime       string
	EventVenue      string
	BookingID       string
	PaymentID       string
	Amount          string
	PaymentDate     string
	MemberTotal     int
	TicketTypeLabel string
	TicketNumber    int
	AdultNames      string
	ChildNames      string
	ChildrenCount   int
	HasAttachment   bool
}

func (s *Service) confirmationBody(booking model.Booking, ticket model.BookingTicket, hasAttachment bool) (string, error) {
	adultNames := ""
	for i, a := range ticket.Adults {
		if i > 0 {
			adultNames += ", "
		}
		adultNames += a.FullName()
	}

	childNames := ""
	for i, c := range ticket.Children {
		if i > 0 {
			childNames += ", "
		}
		childNames += c.FullName()
	}

	paymentDate := ""
	if !booking.Payment.Timestamp.IsZero() {
		paymentDate = booking.Payment.Timestamp.Format("02 Jan 2006, 03:04 PM")
	}

	data := confirmationData{
		EventName:       s.eventName,
		EventDate:       s.eventDate,
		EventTime:       s.eventTime,
		EventVenue:      s.eventVenue,
		BookingID:       booking.ID,
		PaymentID:       booking.Payment.PaymentID,
		Amount:          s.printer.Sprintf("₹%d", booking.Payment.Amount),
		PaymentDate:     paymentDate,
		MemberTotal:     ticket.Type.AdultCount() + ticket.ChildrenCount,
		TicketTypeLabel: ticket.Type.Label(),
		TicketNumber:    ticket.Index + 1,
		AdultNames:      adultNames,
		ChildNames:      childNames,
		ChildrenCount:   ticket.ChildrenCount,
		HasAttachment:   hasAttachment,
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func passRequest(bookingID string, ticket model.BookingTicket) pass.Request {
	adults := make([]pass.Adult, 0, len(ticket.Adults))
	for _, a := range ticket.Adults {
		adults = append(adults, pass.Adult{Name: a.FullName(), Mobile: a.Mobile})
	}

	childNames := make([]string, 0, len(ticket.Children))
	for _, c := range ticket.Children {
		childNames = append(childNames, c.FullName())
	}

	return pass.Request{
		BookingID:     bookingID,
		TicketIndex:   ticket.Index,
		AdultCount:    ticket.Type.AdultCount(),
		ChildrenCount: ticket.ChildrenCount,
		Adults:        adults,
		ChildNames:    childNames,
	}
}

// validateRosters checks the structural rule struct tags cannot express: the
// roster sizes must match the ticket type and declared children count.
func validateRosters(tickets []model.Ticket) error {
	for idx, ticket := range tickets {
		if len(ticket.Adults) != ticket.Type.AdultCount() {
			return fmt.Errorf("%w: ticket %d expects %d adults, got %d",
				ErrRosterMismatch, idx, ticket.Type.AdultCount(), len(ticket.Adults))
		}
		if len(ticket.Children) != ticket.ChildrenCount {
			return fmt.Errorf("%w: ticket %d declares %d children, got %d",
				ErrRosterMismatch, idx, ticket.ChildrenCount, len(ticket.Children))
		}
	}

	return nil
}

// rosterEmails returns the distinct adult emails of one ticket, first
// occurrence order, empty addresses skipped.
func rosterEmails(ticket model.BookingTicket) []string {
	seen := make(map[string]struct{}, len(ticket.Adults))
	emails := make([]string, 0, len(ticket.Adults))

	for _, a := range ticket.Adults {
		if a.Email == "" {
			continue
		}
		if _, ok := seen[a.Email]; ok {
			continue
		}
		seen[a.Email] = struct{}{}
		emails = append(emails, a.Email)
	}

	return emails
}
