package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"festival-pass/booking"
	commonJetstream "festival-pass/common/jetstream"
	"festival-pass/common/otel"
	inboundHttp "festival-pass/inbound/http"
	emailOutbound "festival-pass/outbound/email"
	"festival-pass/outbound/payment"
	"festival-pass/outbound/sqlgen"
	"festival-pass/outbound/store"
	"festival-pass/pass"

	"github.com/go-playground/validator/v10"
)

func runHttpServerCmd(ctx context.Context) {
	cfg := newCfg("env")

	if cfg.GetBool("otel.enabled") {
		shutdown, err := otel.InitTracerProvider(ctx, cfg)
		if err != nil {
			log.Fatalln("unable to init tracer provider", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Error("unable to shutdown tracer provider", slog.Any("error", err))
			}
		}()
	}

	validate := validator.New()

	db := newDb(cfg)
	defer db.Close()

	cacheClient := newRedis(cfg)
	defer cacheClient.Close()

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)
	commonJetstream.CreateQueueStream(ctx, js)

	bookingStore := store.New(db, sqlgen.New(db))

	renderer, err := pass.NewRenderer(cfg.GetString("pass.template_path"), cfg.GetString("event.name"))
	if err != nil {
		log.Fatalln("unable to load pass template", err)
	}

	mailer := &emailOutbound.EmailOutbound{Cfg: cfg}
	if err := mailer.Init(); err != nil {
		log.Fatalln("unable to init email client", err)
	}

	paymentProvider := &payment.Provider{Cfg: cfg}
	paymentProvider.Init()

	bookingService, err := booking.NewService(cfg, bookingStore, mailer, renderer, js)
	if err != nil {
		log.Fatalln("unable to init booking service", err)
	}

	mux := http.NewServeMux()

	timeoutMiddleware := inboundHttp.TimeoutMiddleware(cfg.GetDuration("server.timeout"))

	inboundHttp.RegisterBookingHttp(mux, cfg, bookingService, paymentProvider, cacheClient, validate)
	inboundHttp.RegisterAdminHttp(mux, cfg, bookingService, cacheClient, validate)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.GetInt("server.port")),
		Handler:           timeoutMiddleware(inboundHttp.CorsMiddleware(mux)),
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalln("unable to start server", err)
		}
	}()

	slog.Info("http server started")

	<-ctx.Done()

	ctxShutDown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutDown); err != nil {
		log.Fatalln("unable to shutdown server", err)
	}

	slog.Info("http server stopped")
}
