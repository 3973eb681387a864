package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"

	"cashflow/internal/core"
	"cashflow/internal/ports"
)

// SMTPConfig holds the mail relay settings for low balance alerts.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	To       []string
}

// EmailNotifier sends low balance alerts over SMTP.
type EmailNotifier struct {
	cfg  SMTPConfig
	send func(e *email.Email, addr string, auth smtp.Auth) error
}

var _ ports.Notifier = (*EmailNotifier)(nil)

func NewEmailNotifier(cfg SMTPConfig) (*EmailNotifier, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, errors.New("missing smtp host")
	}
	if cfg.From == "" || len(cfg.To) == 0 {
		return nil, errors.New("missing sender or recipients")
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	return &EmailNotifier{
		cfg:  cfg,
		send: func(e *email.Email, addr string, auth smtp.Auth) error { return e.Send(addr, auth) },
	}, nil
}

func (n *EmailNotifier) NotifyLowBalance(ctx context.Context, alert core.LowBalanceAlert) error {
	e := email.NewEmail()
	e.From = n.cfg.From
	e.To = n.cfg.To
	e.Subject = Subject(alert)
	e.Text = []byte(Body(alert))

	addr := n.cfg.Host + ":" + n.cfg.Port
	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}
	if err := n.send(e, addr, auth); err != nil {
		slog.ErrorContext(ctx, "Failed to send low balance email", "to", n.cfg.To, "error", err)
		return fmt.Errorf("send low balance email: %w", err)
	}

	slog.InfoContext(ctx, "Low balance email sent", "to", n.cfg.To, "subject", e.Subject)
	return nil
}

// LogNotifier writes alerts to the structured log. It is used when no SMTP
// relay is configured.
type LogNotifier struct{}

var _ ports.Notifier = LogNotifier{}

func (LogNotifier) NotifyLowBalance(ctx context.Context, alert core.LowBalanceAlert) error {
	slog.WarnContext(ctx, Subject(alert),
		"lowest_balance", alert.LowestBalance,
		"threshold", alert.Threshold,
		"first_week", alert.FirstWeek.String())
	return nil
}
