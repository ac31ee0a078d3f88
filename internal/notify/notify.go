// Package notify delivers the consolidated broken-import report at the end
// of a run. Clean runs send nothing.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"sort"
	"strings"

	"boardfeed-engine/internal/domain"
)

type Notifier interface {
	SendBrokenImports(ctx context.Context, items []domain.BrokenImport) error
}

// SMTPNotifier mails the report as one plain-text message.
type SMTPNotifier struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
}

func (n SMTPNotifier) SendBrokenImports(ctx context.Context, items []domain.BrokenImport) error {
	if len(items) == 0 {
		return nil
	}
	if n.Host == "" || len(n.To) == 0 {
		return fmt.Errorf("smtp notifier not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildMessage(n.From, n.To, items)
	addr := fmt.Sprintf("%s:%d", n.Host, n.Port)

	var auth smtp.Auth
	if n.Username != "" {
		auth = smtp.PlainAuth("", n.Username, n.Password, n.Host)
	}
	if err := smtp.SendMail(addr, auth, n.From, n.To, msg); err != nil {
		return fmt.Errorf("send broken-import report: %w", err)
	}
	return nil
}

func buildMessage(from string, to []string, items []domain.BrokenImport) []byte {
	sorted := make([]domain.BrokenImport, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].ATS != sorted[j].ATS {
			return sorted[i].ATS < sorted[j].ATS
		}
		return sorted[i].Error < sorted[j].Error
	})

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: Job import: %d problem(s) this run\r\n", len(sorted))
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")

	for _, item := range sorted {
		fmt.Fprintf(&b, "ats=%s source=%s", item.ATS, item.Source)
		if item.Email != "" {
			fmt.Fprintf(&b, " employer=%s", item.Email)
		}
		fmt.Fprintf(&b, "\r\n  %s\r\n\r\n", item.Error)
	}
	return []byte(b.String())
}

// LogNotifier is the fallback when no SMTP settings are present; the report
// only lands in the run log.
type LogNotifier struct {
	Printf func(format string, args ...any)
}

func (n LogNotifier) SendBrokenImports(_ context.Context, items []domain.BrokenImport) error {
	for _, item := range items {
		n.Printf("[notify] broken import ats=%s source=%s employer=%s: %s",
			item.ATS, item.Source, item.Email, item.Error)
	}
	return nil
}
