package event

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"festival-pass/common/constant"
	"festival-pass/model"

	"github.com/oklog/ulid/v2"
)

type PassDeliverer interface {
	DeliverPassEmail(ctx context.Context, msg model.SendPassEmailEventMessage) error
}

type EmailEvent struct {
	Service PassDeliverer
	Timeout time.Duration
}

// SendPassHandler consumes one queued pass mail. A malformed payload is
// dropped with a warning: redelivering it can never succeed.
func (in EmailEvent) SendPassHandler(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, in.Timeout)
	defer cancel()

	var req model.SendPassEmailEventMessage
	err := json.Unmarshal(msg, &req)
	if err != nil {
		slog.WarnContext(ctx, "send pass event unmarshal error", slog.Any(constant.LogFieldErr, err))
		return nil
	}

	traceIdAttr := slog.String(constant.LogFieldTraceId, ulid.Make().String())
	reqAttr := slog.Any(constant.LogFieldPayload, string(msg))

	err = in.Service.DeliverPassEmail(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "send pass event delivery error", slog.Any(constant.LogFieldErr, err), reqAttr, traceIdAttr)
		return err
	}

	return nil
}
