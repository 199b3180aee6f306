package cmd

import (
	"context"
	"log"
	"log/slog"
	"time"

	"festival-pass/booking"
	"festival-pass/common/constant"
	commonJetstream "festival-pass/common/jetstream"
	"festival-pass/inbound/event"
	emailOutbound "festival-pass/outbound/email"
	"festival-pass/outbound/sqlgen"
	"festival-pass/outbound/store"
	"festival-pass/pass"

	"github.com/nats-io/nats.go/jetstream"
)

func runQueueEmailCmd(ctx context.Context) {
	cfg := newCfg("env")

	db := newDb(cfg)
	defer db.Close()

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)
	commonJetstream.CreateQueueStream(ctx, js)

	st, err := js.Stream(ctx, constant.QueueStreamName)
	if err != nil {
		log.Fatalln("failed to get stream", err)
	}

	bookingStore := store.New(db, sqlgen.New(db))

	renderer, err := pass.NewRenderer(cfg.GetString("pass.template_path"), cfg.GetString("event.name"))
	if err != nil {
		log.Fatalln("unable to load pass template", err)
	}

	mailer := &emailOutbound.EmailOutbound{Cfg: cfg}
	if err := mailer.Init(); err != nil {
		log.Fatalln("unable to init email client", err)
	}

	bookingService, err := booking.NewService(cfg, bookingStore, mailer, renderer, js)
	if err != nil {
		log.Fatalln("unable to init booking service", err)
	}

	emailEvent := event.EmailEvent{
		Service: bookingService,
		Timeout: cfg.GetDuration("queue.email.timeout"),
	}

	cons, err := st.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Durable:       "consumer:email",
		FilterSubject: constant.EmailWildcard,
		MaxDeliver:    cfg.GetInt("queue.email.max_deliver"),
		AckWait:       cfg.GetDuration("queue.email.ack_wait"),
	})
	if err != nil {
		log.Fatalln("failed to create consumer", err)
	}

	iter, err := cons.Messages()
	if err != nil {
		panic(err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				msg, err := iter.Next()
				if err != nil && err != jetstream.ErrMsgIteratorClosed {
					slog.ErrorContext(ctx, "Error fetching message", slog.Any(constant.LogFieldErr, err))
					continue
				}

				if msg == nil {
					continue
				}

				var eventErr error
				switch msg.Subject() {
				case constant.SubjectSendPassEmail:
					eventErr = emailEvent.SendPassHandler(ctx, msg.Data())
				}

				if eventErr != nil {
					msg.NakWithDelay(1 * time.Second)
					continue
				}

				if err := msg.Ack(); err != nil {
					slog.ErrorContext(ctx, "Error acknowledging message",
						slog.Any(constant.LogFieldErr, err),
						slog.Any(constant.LogFieldPayload, string(msg.Data())),
						slog.String("subject", msg.Subject()),
					)
					continue
				}
			}
		}
	}()

	slog.InfoContext(ctx, "pass email queue consumer started")

	<-ctx.Done()

	iter.Stop()

	slog.InfoContext(ctx, "pass email queue consumer stopped")
}
