// Package mail entrega los documentos por SMTP.
package mail

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/fieldops-api/internal/application/documents"
	"github.com/jhoicas/fieldops-api/pkg/config"
)

// Dialer lo que se necesita de gomail.Dialer; en tests se sustituye.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender implementa documents.MailSender. Cada envío es un único intento;
// el circuit breaker corta los envíos mientras el servidor SMTP sigue caído.
type SMTPSender struct {
	dialer   Dialer
	from     string
	fromName string
	breaker  *gobreaker.CircuitBreaker[struct{}]
	log      zerolog.Logger
}

// NewSMTPSender construye el sender a partir de la configuración SMTP.
func NewSMTPSender(cfg config.SMTPConfig, log zerolog.Logger) *SMTPSender {
	return NewSMTPSenderWithDialer(gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password), cfg, log)
}

// NewSMTPSenderWithDialer permite inyectar el Dialer.
func NewSMTPSenderWithDialer(d Dialer, cfg config.SMTPConfig, log zerolog.Logger) *SMTPSender {
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	settings := gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("cambio de estado del circuit breaker")
		},
	}
	return &SMTPSender{
		dialer:   d,
		from:     cfg.From,
		fromName: cfg.FromName,
		breaker:  gobreaker.NewCircuitBreaker[struct{}](settings),
		log:      log,
	}
}

// Send arma el mensaje MIME (HTML + adjuntos) y lo entrega.
func (s *SMTPSender) Send(ctx context.Context, msg documents.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := s.message(msg)
	_, err := s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, s.dialer.DialAndSend(m)
	})
	if err != nil {
		if IsCircuitOpen(err) {
			return fmt.Errorf("smtp: circuito abierto: %w", err)
		}
		return fmt.Errorf("smtp: %w", err)
	}
	s.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Int("attachments", len(msg.Attachments)).Msg("correo enviado")
	return nil
}

func (s *SMTPSender) message(msg documents.Email) *gomail.Message {
	m := gomail.NewMessage()
	if s.fromName != "" {
		m.SetAddressHeader("From", s.from, s.fromName)
	} else {
		m.SetHeader("From", s.from)
	}
	m.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	for _, a := range msg.Attachments {
		data := a.Data
		m.Attach(a.Filename,
			gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		)
	}
	return m
}

// IsCircuitOpen informa si el error proviene del breaker abierto o saturado.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

var _ documents.MailSender = (*SMTPSender)(nil)
