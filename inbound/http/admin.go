package http

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"festival-pass/common"
	"festival-pass/common/constant"
	"festival-pass/common/errs"
	"festival-pass/common/otel"
	"festival-pass/model"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

type AdminHttp struct {
	Service  BookingService
	Cache    *redis.Client
	Validate *validator.Validate

	password string
}

func RegisterAdminHttp(
	mux *http.ServeMux,
	cfg *viper.Viper,
	service BookingService,
	cache *redis.Client,
	validate *validator.Validate,
) *AdminHttp {
	in := &AdminHttp{
		Service:  service,
		Cache:    cache,
		Validate: validate,

		password: cfg.GetString("admin.password"),
	}

	mux.HandleFunc("POST /api/admin/login", in.login)
	mux.HandleFunc("GET /api/admin/bookings", in.requireAuth(in.listBookings))
	mux.HandleFunc("GET /api/admin/passes/{bookingId}/{ticketIndex}", in.requireAuth(in.downloadPass))
	mux.HandleFunc("POST /api/admin/offline-bookings", in.requireAuth(in.offlineBooking))

	return in
}

func (in AdminHttp) login(w http.ResponseWriter, r *http.Request) {
	var req model.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "AdminHttp.login")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(in.password)) != 1 {
		slog.WarnContext(ctx, "admin login rejected", traceIdAttr)
		writeErrorResponse(w, errs.Unauthorized("Invalid credentials"))
		return
	}

	token := ulid.Make().String()
	err := in.Cache.Set(ctx, fmt.Sprintf(constant.AdminTokenKey, token), true, constant.AdminTokenDefaultTTL).Err()
	if err != nil {
		slog.ErrorContext(ctx, "failed to store admin token", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	slog.InfoContext(ctx, "admin login success", traceIdAttr)

	writeJSONResponse(w, http.StatusOK, model.AdminLoginResponse{Token: token})
}

// requireAuth guards admin routes: the bearer token must still exist in the
// cache, so logins expire with the key's TTL.
func (in AdminHttp) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeErrorResponse(w, errs.Unauthorized("Missing token"))
			return
		}

		err := in.Cache.Get(r.Context(), fmt.Sprintf(constant.AdminTokenKey, token)).Err()
		if err == redis.Nil {
			writeErrorResponse(w, errs.Unauthorized("Invalid or expired token"))
			return
		}
		if err != nil {
			slog.ErrorContext(r.Context(), "failed to check admin token", slog.Any(constant.LogFieldErr, err))
			writeErrorResponse(w, err)
			return
		}

		next(w, r)
	}
}

func (in AdminHttp) listBookings(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "AdminHttp.listBookings")
	defer span.End()

	bookings, err := in.Service.ListBookings(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list bookings", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, model.ListBookingsResponse{Bookings: bookings})
}

func (in AdminHttp) downloadPass(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("bookingId")
	ticketIndex, err := strconv.Atoi(r.PathValue("ticketIndex"))
	if err != nil || ticketIndex < 0 {
		writeErrorResponse(w, errs.BadRequest("Invalid ticket index"))
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "AdminHttp.downloadPass")
	defer span.End()

	p, err := in.Service.DownloadPass(ctx, bookingID, ticketIndex)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render pass", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, mapBookingError(err))
		return
	}

	w.Header().Set("Content-Type", p.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", p.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(p.Content)
}

func (in AdminHttp) offlineBooking(w http.ResponseWriter, r *http.Request) {
	var req model.OfflineBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "AdminHttp.offlineBooking")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "offline booking receive request", traceIdAttr)

	created, err := in.Service.CreateOffline(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create offline booking", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, mapBookingError(err))
		return
	}

	slog.InfoContext(ctx, "offline booking success", traceIdAttr, slog.Any(constant.LogFieldResponse, created.ID))

	writeJSONResponse(w, http.StatusCreated, created)
}
