package menu

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel/codes"
)

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

type NotifierOptions struct {
	Smtp       SmtpConfig `json:"smtp"`
	Recipients []string   `json:"recipients"`
}

// Sender dispatches a composed message. Injected so tests don't need a
// live SMTP server.
type Sender interface {
	Send(mail *email.Email) error
}

type smtpSender struct {
	config SmtpConfig
}

func (s smtpSender) Send(mail *email.Email) error {
	addr := fmt.Sprintf("%s:%d", s.config.Server, s.config.Port)
	err := mail.Send(addr, smtp.PlainAuth("", s.config.EmailAddress, s.config.Password, s.config.Server))
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		return mail.Send(addr, nil)
	}
	return err
}

// Notifier emails the current day's lunch and dinner to the configured
// recipient list. Fire and forget: failures are logged by the caller,
// never retried.
type Notifier struct {
	options NotifierOptions
	sender  Sender
}

func NewNotifier(options NotifierOptions) Notifier {
	return Notifier{
		options: options,
		sender:  smtpSender{config: options.Smtp},
	}
}

// NewNotifierWithSender is NewNotifier with an injected transport.
func NewNotifierWithSender(options NotifierOptions, sender Sender) Notifier {
	return Notifier{options: options, sender: sender}
}

func (n Notifier) Configured() bool {
	return n.options.Smtp.Server != "" && len(n.options.Recipients) > 0
}

// NotifyToday formats and sends the daily menu email. An unconfigured
// notifier is a logged no-op so deployments without SMTP keep working.
func (n Notifier) NotifyToday(ctx context.Context, day DayMenu) error {
	ctx, span := tracer.Start(ctx, "NotifyToday")
	defer span.End()

	if !n.Configured() {
		slog.InfoContext(ctx, "notifier not configured, skipping daily email")
		return nil
	}

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("HUDS Menu <%s>", n.options.Smtp.EmailAddress)
	mail.To = n.options.Recipients
	mail.Subject = "HUDS Today (Lunch & Dinner)"
	mail.HTML = []byte(renderDailyEmail(day))

	err := n.sender.Send(mail)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return errorf(NotifyFailed, "send daily email: %w", err)
	}

	slog.InfoContext(ctx, "daily email sent", "recipients", len(n.options.Recipients), "date", day.Date)
	return nil
}

func renderDailyEmail(day DayMenu) string {
	var b strings.Builder
	b.WriteString("<div style='font-family:system-ui, -apple-system, Segoe UI, Roboto, Arial, sans-serif;max-width:640px;margin:0 auto;padding:16px'>\n")
	b.WriteString("<h2 style='margin:0 0 12px 0'>HUDS Today (Lunch &amp; Dinner)</h2>\n")
	fmt.Fprintf(&b, "<div style='color:#666;margin-bottom:12px'>%s</div>\n", day.Date)

	for _, meal := range Meals {
		fmt.Fprintf(&b, "<h3 style='margin:12px 0 6px 0;'>%s</h3>\n", meal)
		for _, station := range day.Meals[meal] {
			if len(station.Dishes) == 0 {
				continue
			}
			fmt.Fprintf(&b, "<div style='font-weight:600;margin-top:6px'>%s</div>\n", html.EscapeString(string(station.Station)))
			b.WriteString("<ul style='margin:4px 0 10px 18px;padding:0'>\n")
			for _, dish := range station.Dishes {
				fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(dish))
			}
			b.WriteString("</ul>\n")
		}
	}

	b.WriteString("<div style='margin-top:16px;color:#888;font-size:12px'>Sent automatically at 7:00 AM America/New_York.</div>\n")
	b.WriteString("</div>")
	return b.String()
}
