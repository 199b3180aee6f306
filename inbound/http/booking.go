package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"festival-pass/booking"
	"festival-pass/common"
	"festival-pass/common/constant"
	"festival-pass/common/errs"
	"festival-pass/common/otel"
	"festival-pass/model"
	"festival-pass/outbound/store"
	"festival-pass/pass"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

type BookingService interface {
	Confirm(ctx context.Context, req model.ConfirmBookingRequest) (model.ConfirmBookingResponse, error)
	CreateOffline(ctx context.Context, req model.OfflineBookingRequest) (model.Booking, error)
	DownloadPass(ctx context.Context, bookingID string, ticketIndex int) (pass.Pass, error)
	ListBookings(ctx context.Context) ([]model.Booking, error)
}

type PaymentProvider interface {
	CreateOrder(ctx context.Context, amount int64, receipt string) (string, error)
	VerifySignature(orderId, paymentId, signature string) bool
	Key() string
	Currency() string
}

type BookingHttp struct {
	Service  BookingService
	Payment  PaymentProvider
	Cache    *redis.Client
	Validate *validator.Validate

	eventName string
}

func RegisterBookingHttp(
	mux *http.ServeMux,
	cfg *viper.Viper,
	service BookingService,
	payment PaymentProvider,
	cache *redis.Client,
	validate *validator.Validate,
) *BookingHttp {
	in := &BookingHttp{
		Service:  service,
		Payment:  payment,
		Cache:    cache,
		Validate: validate,

		eventName: cfg.GetString("event.name"),
	}

	mux.HandleFunc("POST /api/orders", in.createOrder)
	mux.HandleFunc("POST /api/payments/verify", in.verifyPayment)
	mux.HandleFunc("GET /api/payments/config", in.paymentConfig)
	mux.HandleFunc("POST /api/bookings/confirm", in.confirm)
	mux.HandleFunc("GET /api/health", in.health)

	return in
}

func (in BookingHttp) createOrder(w http.ResponseWriter, r *http.Request) {
	var req model.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "BookingHttp.createOrder")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "create order receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	orderId, err := in.Payment.CreateOrder(ctx, req.Amount, req.BookingID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create gateway order", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadGateway, Message: "Payment gateway unavailable"})
		return
	}

	slog.InfoContext(ctx, "create order success", traceIdAttr, slog.Any(constant.LogFieldResponse, orderId))

	writeJSONResponse(w, http.StatusOK, model.CreateOrderResponse{
		OrderID:  orderId,
		Amount:   req.Amount,
		Currency: in.Payment.Currency(),
	})
}

func (in BookingHttp) verifyPayment(w http.ResponseWriter, r *http.Request) {
	var req model.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "BookingHttp.verifyPayment")
	defer span.End()

	if !in.Payment.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		slog.WarnContext(ctx, "payment signature mismatch",
			common.ExtractTraceIDFromCtx(ctx),
			slog.String("order_id", req.OrderID),
		)
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid payment signature"})
		return
	}

	writeJSONResponse(w, http.StatusOK, model.VerifyPaymentResponse{Valid: true})
}

func (in BookingHttp) paymentConfig(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, model.PaymentConfigResponse{
		Key:      in.Payment.Key(),
		Currency: in.Payment.Currency(),
		Name:     in.eventName,
	})
}

func (in BookingHttp) confirm(w http.ResponseWriter, r *http.Request) {
	var req model.ConfirmBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "BookingHttp.confirm")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "confirm booking receive request", slog.Any(constant.LogFieldPayload, req.BookingID), traceIdAttr)

	lockKey := fmt.Sprintf(constant.BookingConfirmLock, req.BookingID)
	locked, err := in.Cache.SetNX(ctx, lockKey, true, constant.BookingConfirmLockDefaultTTL).Result()
	if err != nil {
		slog.ErrorContext(ctx, "failed to set confirm lock", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if !locked {
		slog.DebugContext(ctx, "booking already being confirmed", traceIdAttr)
		writeErrorResponse(w, errs.Conflict("Booking already being confirmed"))
		return
	}

	resp, err := in.Service.Confirm(ctx, req)
	if err != nil {
		// Release the lock so a corrected request can retry immediately.
		if redisErr := in.Cache.Del(ctx, lockKey).Err(); redisErr != nil {
			slog.ErrorContext(ctx, "failed to release confirm lock", traceIdAttr, slog.Any(constant.LogFieldErr, redisErr))
		}

		slog.ErrorContext(ctx, "failed to confirm booking", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, mapBookingError(err))
		return
	}

	slog.InfoContext(ctx, "confirm booking success", traceIdAttr, slog.Any(constant.LogFieldResponse, resp.BookingID))

	writeJSONResponse(w, http.StatusOK, resp)
}

func (in BookingHttp) health(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func mapBookingError(err error) error {
	switch {
	case errors.Is(err, booking.ErrRosterMismatch):
		return &errs.HttpError{Code: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, booking.ErrTicketNotFound):
		return errs.NotFound("Ticket not found")
	case errors.Is(err, store.ErrBookingNotFound):
		return errs.NotFound("Booking not found")
	default:
		return err
	}
}
