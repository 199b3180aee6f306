package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"festival-pass/booking"
	"festival-pass/common/constant"
	"festival-pass/inbound/http/mocks"
	"festival-pass/model"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redismock/v9"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHttpTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	service   *mocks.MockBookingService
	payment   *mocks.MockPaymentProvider
	redisMock redismock.ClientMock
	mux       *http.ServeMux
}

func (s *BookingHttpTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockBookingService(s.ctrl)
	s.payment = mocks.NewMockPaymentProvider(s.ctrl)

	cache, redisMock := redismock.NewClientMock()
	s.redisMock = redisMock

	cfg := viper.New()
	cfg.Set("event.name", "Festival 2026")

	s.mux = http.NewServeMux()
	RegisterBookingHttp(s.mux, cfg, s.service, s.payment, cache, validator.New())
}

func (s *BookingHttpTestSuite) TearDownTest() {
	s.ctrl.Finish()
	s.NoError(s.redisMock.ExpectationsWereMet())
}

func TestBookingHttpTestSuite(t *testing.T) {
	suite.Run(t, new(BookingHttpTestSuite))
}

func (s *BookingHttpTestSuite) post(path string, body any) *httptest.ResponseRecorder {
	data, err := json.Marshal(body)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)
	return w
}

func validConfirmRequest() model.ConfirmBookingRequest {
	return model.ConfirmBookingRequest{
		BookingID: "BK123",
		Payment: model.PaymentDetails{
			PaymentID: "pay_1",
			OrderID:   "order_1",
			Amount:    1000,
			Timestamp: time.Now(),
		},
		Tickets: []model.Ticket{
			{
				Type:   model.TicketSingle,
				Adults: []model.Attendee{{FirstName: "Ravi", LastName: "Iyer", Email: "ravi@example.com"}},
			},
		},
	}
}

func (s *BookingHttpTestSuite) TestCreateOrder() {
	s.Run("success", func() {
		s.payment.EXPECT().CreateOrder(gomock.Any(), int64(2500), "BK123").Return("order_gw_1", nil)
		s.payment.EXPECT().Currency().Return("INR")

		w := s.post("/api/orders", model.CreateOrderRequest{BookingID: "BK123", Amount: 2500})

		s.Equal(http.StatusOK, w.Code)

		var resp model.CreateOrderResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal("order_gw_1", resp.OrderID)
		s.Equal(int64(2500), resp.Amount)
		s.Equal("INR", resp.Currency)
	})

	s.Run("invalid json", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader([]byte("{")))
		w := httptest.NewRecorder()
		s.mux.ServeHTTP(w, req)

		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("validation failure", func() {
		w := s.post("/api/orders", model.CreateOrderRequest{BookingID: "BK123", Amount: 0})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("gateway error", func() {
		s.payment.EXPECT().
			CreateOrder(gomock.Any(), int64(2500), "BK123").
			Return("", fmt.Errorf("connection refused"))

		w := s.post("/api/orders", model.CreateOrderRequest{BookingID: "BK123", Amount: 2500})

		s.Equal(http.StatusBadGateway, w.Code)
		s.Contains(w.Body.String(), "Payment gateway unavailable")
	})
}

func (s *BookingHttpTestSuite) TestVerifyPayment() {
	req := model.VerifyPaymentRequest{OrderID: "order_1", PaymentID: "pay_1", Signature: "abc123"}

	s.Run("valid signature", func() {
		s.payment.EXPECT().VerifySignature("order_1", "pay_1", "abc123").Return(true)

		w := s.post("/api/payments/verify", req)

		s.Equal(http.StatusOK, w.Code)

		var resp model.VerifyPaymentResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.True(resp.Valid)
	})

	s.Run("invalid signature", func() {
		s.payment.EXPECT().VerifySignature("order_1", "pay_1", "abc123").Return(false)

		w := s.post("/api/payments/verify", req)

		s.Equal(http.StatusBadRequest, w.Code)
		s.Contains(w.Body.String(), "Invalid payment signature")
	})

	s.Run("missing signature", func() {
		w := s.post("/api/payments/verify", model.VerifyPaymentRequest{OrderID: "order_1", PaymentID: "pay_1"})
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *BookingHttpTestSuite) TestPaymentConfig() {
	s.payment.EXPECT().Key().Return("key_live_1")
	s.payment.EXPECT().Currency().Return("INR")

	req := httptest.NewRequest(http.MethodGet, "/api/payments/config", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var resp model.PaymentConfigResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("key_live_1", resp.Key)
	s.Equal("INR", resp.Currency)
	s.Equal("Festival 2026", resp.Name)
}

func (s *BookingHttpTestSuite) TestConfirm() {
	lockKey := fmt.Sprintf(constant.BookingConfirmLock, "BK123")

	s.Run("success", func() {
		s.redisMock.ExpectSetNX(lockKey, true, constant.BookingConfirmLockDefaultTTL).SetVal(true)
		s.service.EXPECT().
			Confirm(gomock.Any(), gomock.Any()).
			Return(model.ConfirmBookingResponse{BookingID: "BK123", EmailSent: true}, nil)

		w := s.post("/api/bookings/confirm", validConfirmRequest())

		s.Equal(http.StatusOK, w.Code)

		var resp model.ConfirmBookingResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal("BK123", resp.BookingID)
		s.True(resp.EmailSent)
	})

	s.Run("already locked", func() {
		s.redisMock.ExpectSetNX(lockKey, true, constant.BookingConfirmLockDefaultTTL).SetVal(false)

		w := s.post("/api/bookings/confirm", validConfirmRequest())

		s.Equal(http.StatusConflict, w.Code)
		s.Contains(w.Body.String(), "already being confirmed")
	})

	s.Run("roster mismatch releases lock", func() {
		s.redisMock.ExpectSetNX(lockKey, true, constant.BookingConfirmLockDefaultTTL).SetVal(true)
		s.redisMock.ExpectDel(lockKey).SetVal(1)
		s.service.EXPECT().
			Confirm(gomock.Any(), gomock.Any()).
			Return(model.ConfirmBookingResponse{}, fmt.Errorf("%w: ticket 0", booking.ErrRosterMismatch))

		w := s.post("/api/bookings/confirm", validConfirmRequest())

		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("service error releases lock", func() {
		s.redisMock.ExpectSetNX(lockKey, true, constant.BookingConfirmLockDefaultTTL).SetVal(true)
		s.redisMock.ExpectDel(lockKey).SetVal(1)
		s.service.EXPECT().
			Confirm(gomock.Any(), gomock.Any()).
			Return(model.ConfirmBookingResponse{}, fmt.Errorf("insert failed"))

		w := s.post("/api/bookings/confirm", validConfirmRequest())

		s.Equal(http.StatusInternalServerError, w.Code)
	})

	s.Run("missing tickets", func() {
		req := validConfirmRequest()
		req.Tickets = nil

		w := s.post("/api/bookings/confirm", req)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *BookingHttpTestSuite) TestHealth() {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"status":"ok"`)
}
