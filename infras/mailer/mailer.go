package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"voyage/config"
	"voyage/infras/otel"
	"voyage/shared/constant"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

var ErrNotConfigured = errors.New("smtp is not configured")

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) (err error)
}

type smtpMailer struct {
	cfg  *config.Config
	otel otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Mailer {
	return &smtpMailer{cfg: cfg, otel: otl}
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	smtp := m.cfg.External.SMTP
	if smtp.Host == constant.Empty {
		return ErrNotConfigured
	}

	msg := mail.NewMsg()
	if err = msg.FromFormat(smtp.FromName, smtp.FromAddress); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}

	if err = msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(smtp.Port),
		mail.WithTimeout(time.Duration(smtp.TimeoutSec) * time.Second),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}

	if smtp.Username != constant.Empty {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(smtp.Username),
			mail.WithPassword(smtp.Password),
		)
	}

	client, err := mail.NewClient(smtp.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Error().Err(err).Str("to", to).Msg("failed to send mail")

		return fmt.Errorf("failed to send mail: %w", err)
	}

	log.Info().Str("to", to).Str("subject", subject).Msg("mail sent")

	return nil
}
