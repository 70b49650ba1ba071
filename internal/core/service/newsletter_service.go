package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/bacheca/board-api/internal/core/ports"
)

const defaultSendDelay = 100 * time.Millisecond

// NewsletterService sends one templated email per recipient, sequentially,
// with a fixed pause between sends. A recipient with a malformed address is
// skipped and reported; only a batch with zero deliveries counts as failed.
type NewsletterService struct {
	sender   ports.MailSender
	validate *validator.Validate
	delay    time.Duration
	log      zerolog.Logger
}

func NewNewsletterService(sender ports.MailSender, delay time.Duration, log zerolog.Logger) *NewsletterService {
	if delay <= 0 {
		delay = defaultSendDelay
	}
	return &NewsletterService{
		sender:   sender,
		validate: validator.New(),
		delay:    delay,
		log:      log,
	}
}

// Send processes the batch. The context is honored between sends: a
// cancelled batch returns what was delivered so far.
func (s *NewsletterService) Send(ctx context.Context, input ports.NewsletterInput) (*ports.NewsletterResult, error) {
	res := &ports.NewsletterResult{Total: len(input.Recipients)}

	for i, r := range input.Recipients {
		if err := ctx.Err(); err != nil {
			res.Errors = append(res.Errors, "invio interrotto")
			break
		}
		if i > 0 {
			select {
			case <-ctx.Done():
				res.Errors = append(res.Errors, "invio interrotto")
				res.Success = res.Sent > 0
				return res, nil
			case <-time.After(s.delay):
			}
		}

		if r.Email == "" || r.Username == "" {
			res.Errors = append(res.Errors, "destinatario malformato")
			continue
		}
		if err := s.validate.Var(r.Email, "email"); err != nil {
			res.Errors = append(res.Errors, "email non valida: "+r.Email)
			continue
		}

		text := personalize(input.Message, r.Username, input.DashboardURL)
		html, err := renderEmail(input.Subject, text, r.Username, input.DashboardURL)
		if err != nil {
			res.Errors = append(res.Errors, "template fallito per: "+r.Email)
			continue
		}

		if err := s.sender.Send(r.Email, input.Subject, html, text); err != nil {
			res.Errors = append(res.Errors, "invio fallito a: "+r.Email)
			s.log.Warn().Err(err).Str("email", r.Email).Msg("newsletter send failed")
			continue
		}

		res.Sent++
		s.log.Info().Str("email", r.Email).Str("username", r.Username).Msg("newsletter sent")
	}

	res.Success = res.Sent > 0
	return res, nil
}

// personalize substitutes the per-recipient placeholders.
func personalize(message, username, dashboardURL string) string {
	out := strings.ReplaceAll(message, "[USERNAME]", username)
	return strings.ReplaceAll(out, "[LINK_DASHBOARD]", dashboardURL)
}

var emailTmpl = template.Must(template.New("newsletter").Parse(`<!DOCTYPE html>
<html lang="it">
<head>
  <meta charset="UTF-8">
  <title>{{.Subject}}</title>
</head>
<body style="font-family:Arial,sans-serif;background:#f5f7fa;margin:0;padding:20px;">
  <div style="background:#fff;max-width:600px;margin:auto;border-radius:8px;padding:30px;">
    <h1 style="margin:0;color:#4f46e5;font-size:24px;">Bacheca Annunci Pro</h1>
    <p>Ciao <strong>{{.Username}}</strong>,</p>
    <p>{{.Message}}</p>
    {{if .DashboardURL}}<p style="text-align:center;"><a href="{{.DashboardURL}}" style="display:inline-block;background:#4f46e5;color:#fff;padding:12px 20px;text-decoration:none;border-radius:5px;font-weight:bold;">Visualizza Nuove Offerte</a></p>{{end}}
    <div style="font-size:12px;color:#777;border-top:1px solid #ddd;margin-top:30px;padding-top:20px;text-align:center;">
      <p>Hai ricevuto questa email perché hai attivato le notifiche per le nuove offerte.</p>
      <p>© {{.Year}} Bacheca Annunci Pro. Tutti i diritti riservati.</p>
    </div>
  </div>
</body>
</html>`))

func renderEmail(subject, message, username, dashboardURL string) (string, error) {
	var buf bytes.Buffer
	err := emailTmpl.Execute(&buf, struct {
		Subject      string
		Message      string
		Username     string
		DashboardURL string
		Year         int
	}{
		Subject:      subject,
		Message:      message,
		Username:     username,
		DashboardURL: dashboardURL,
		Year:         time.Now().Year(),
	})
	if err != nil {
		return "", fmt.Errorf("render newsletter: %w", err)
	}
	return buf.String(), nil
}
