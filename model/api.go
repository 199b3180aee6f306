package model

type ErrorResponse struct {
	Error string `json:"error"`
	Data  any    `json:"data,omitempty"`
}

type CreateOrderRequest struct {
	BookingID string `json:"booking_id" validate:"required,max=100"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
}

type CreateOrderResponse struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"order_id" validate:"required,max=100"`
	PaymentID string `json:"payment_id" validate:"required,max=100"`
	Signature string `json:"signature" validate:"required,max=128"`
}

type VerifyPaymentResponse struct {
	Valid bool `json:"valid"`
}

type PaymentConfigResponse struct {
	Key      string `json:"key"`
	Currency string `json:"currency"`
	Name     string `json:"name"`
}

type ConfirmBookingRequest struct {
	BookingID string         `json:"booking_id" validate:"required,max=100"`
	Payment   PaymentDetails `json:"payment"`
	Tickets   []Ticket       `json:"tickets" validate:"required,min=1,dive"`
}

type DeliveryResult struct {
	Email       string `json:"email"`
	TicketIndex int    `json:"ticket_index"`
	Sent        bool   `json:"sent"`
	Error       string `json:"error,omitempty"`
}

type ConfirmBookingResponse struct {
	BookingID string           `json:"booking_id"`
	EmailSent bool             `json:"email_sent"`
	Results   []DeliveryResult `json:"delivery_results"`
}

type OfflineBookingRequest struct {
	TicketType    TicketType `json:"ticket_type" validate:"required,oneof=single couple"`
	ChildrenCount int        `json:"children_count" validate:"gte=0,lte=10"`
	Adults        []Attendee `json:"adults" validate:"required,min=1,dive"`
	Children      []Attendee `json:"children" validate:"omitempty,dive"`
	Amount        int64      `json:"amount" validate:"required,gt=0"`
}

type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
}

type ListBookingsResponse struct {
	Bookings []Booking `json:"bookings"`
}

type SendPassEmailEventMessage struct {
	BookingID   string `json:"booking_id"`
	TicketIndex int    `json:"ticket_index"`
	To          string `json:"to"`
}
