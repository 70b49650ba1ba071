package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bacheca/board-api/internal/core/ports"
)

type sentMail struct {
	to       string
	subject  string
	htmlBody string
	textBody string
}

type stubMailSender struct {
	sent    []sentMail
	failFor map[string]error
}

func newStubMailSender() *stubMailSender {
	return &stubMailSender{failFor: make(map[string]error)}
}

func (s *stubMailSender) Send(to, subject, htmlBody, textBody string) error {
	if err := s.failFor[to]; err != nil {
		return err
	}
	s.sent = append(s.sent, sentMail{to: to, subject: subject, htmlBody: htmlBody, textBody: textBody})
	return nil
}

func TestNewsletterService_PersonalizesPerRecipient(t *testing.T) {
	sender := newStubMailSender()
	svc := NewNewsletterService(sender, time.Millisecond, testLogger())

	res, err := svc.Send(context.Background(), ports.NewsletterInput{
		Subject:      "Nuove offerte",
		Message:      "Ciao [USERNAME], guarda le novità: [LINK_DASHBOARD]",
		DashboardURL: "https://example.com/dashboard",
		Recipients: []ports.Recipient{
			{Email: "mario@example.com", Username: "mario"},
			{Email: "anna@example.com", Username: "anna"},
		},
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !res.Success || res.Sent != 2 || res.Total != 2 || len(res.Errors) != 0 {
		t.Fatalf("result = %+v", res)
	}

	if len(sender.sent) != 2 {
		t.Fatalf("%d mails sent, want 2", len(sender.sent))
	}
	first := sender.sent[0]
	if !strings.Contains(first.textBody, "Ciao mario,") {
		t.Fatalf("text body missing personalization: %q", first.textBody)
	}
	if strings.Contains(first.textBody, "[USERNAME]") || strings.Contains(first.textBody, "[LINK_DASHBOARD]") {
		t.Fatal("placeholders must be substituted")
	}
	if !strings.Contains(first.htmlBody, "https://example.com/dashboard") {
		t.Fatal("html body must carry the dashboard link")
	}
	if !strings.Contains(sender.sent[1].textBody, "Ciao anna,") {
		t.Fatal("second recipient got the wrong personalization")
	}
}

func TestNewsletterService_SkipsInvalidRecipients(t *testing.T) {
	sender := newStubMailSender()
	svc := NewNewsletterService(sender, time.Millisecond, testLogger())

	res, err := svc.Send(context.Background(), ports.NewsletterInput{
		Subject: "Test",
		Message: "Ciao [USERNAME]",
		Recipients: []ports.Recipient{
			{Email: "non-una-email", Username: "x"},
			{Email: "", Username: "y"},
			{Email: "ok@example.com", Username: "ok"},
		},
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if res.Sent != 1 || res.Total != 3 {
		t.Fatalf("result = %+v", res)
	}
	if len(res.Errors) != 2 {
		t.Fatalf("errors = %v, want 2 entries", res.Errors)
	}
	if !res.Success {
		t.Fatal("one delivery is enough for success")
	}
}

func TestNewsletterService_FailureOnlyWhenNothingSent(t *testing.T) {
	sender := newStubMailSender()
	sender.failFor["down@example.com"] = errors.New("smtp 550")
	svc := NewNewsletterService(sender, time.Millisecond, testLogger())

	res, err := svc.Send(context.Background(), ports.NewsletterInput{
		Subject:    "Test",
		Message:    "msg",
		Recipients: []ports.Recipient{{Email: "down@example.com", Username: "giù"}},
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if res.Success || res.Sent != 0 {
		t.Fatalf("result = %+v, want failed batch", res)
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "down@example.com") {
		t.Fatalf("errors = %v", res.Errors)
	}
}

func TestNewsletterService_HonorsCancellationBetweenSends(t *testing.T) {
	sender := newStubMailSender()
	svc := NewNewsletterService(sender, 50*time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	recipients := []ports.Recipient{
		{Email: "a@example.com", Username: "a"},
		{Email: "b@example.com", Username: "b"},
		{Email: "c@example.com", Username: "c"},
	}
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	res, err := svc.Send(ctx, ports.NewsletterInput{Subject: "s", Message: "m", Recipients: recipients})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if res.Sent != 1 {
		t.Fatalf("sent = %d, want 1 before cancellation", res.Sent)
	}
	if !res.Success {
		t.Fatal("a partially delivered batch still counts as success")
	}
}
