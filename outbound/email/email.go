// Package email delivers the booking confirmation mails, HTML body plus the
// rendered pass images as PNG attachments.
package email

import (
	"bytes"
	"context"
	"fmt"

	"festival-pass/common"
	"festival-pass/common/otel"
	"festival-pass/pass"

	"github.com/spf13/viper"
	"github.com/wneessen/go-mail"
)

type EmailOutbound struct {
	Cfg *viper.Viper

	client *mail.Client
	from   string
}

func (out *EmailOutbound) Init() error {
	out.from = out.Cfg.GetString("email.user")

	client, err := mail.NewClient(out.Cfg.GetString("email.host"),
		mail.WithPort(out.Cfg.GetInt("email.port")),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(out.Cfg.GetString("email.user")),
		mail.WithPassword(out.Cfg.GetString("email.password")),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("init email client: %w", err)
	}

	out.client = client
	return nil
}

func (out *EmailOutbound) Send(ctx context.Context, to []string, subject string, htmlBody string, attachments []pass.Pass) error {
	ctx, span := otel.Tracer.Start(ctx, "EmailOutbound.Send")
	defer span.End()

	msg := mail.NewMsg()
	if err := msg.From(out.from); err != nil {
		common.UtilSpanError(span, err)
		return err
	}
	if err := msg.To(to...); err != nil {
		common.UtilSpanError(span, err)
		return err
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	for _, att := range attachments {
		err := msg.AttachReader(att.Filename, bytes.NewReader(att.Content),
			mail.WithFileContentType(mail.ContentType(att.ContentType)))
		if err != nil {
			common.UtilSpanError(span, err)
			return err
		}
	}

	if err := out.client.DialAndSendWithContext(ctx, msg); err != nil {
		common.UtilSpanError(span, err)
		return err
	}

	return nil
}
