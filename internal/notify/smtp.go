package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/renacod/backend/internal/domain"
)

// SMTPConfig holds the mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
}

// SMTPNotifier delivers notifications through an SMTP relay. Port 465 uses
// implicit TLS; any other port upgrades with STARTTLS when the server offers
// it.
type SMTPNotifier struct {
	cfg SMTPConfig
	now func() time.Time
}

// NewSMTPNotifier validates cfg and returns a notifier. When cfg.To is empty
// the notification goes to cfg.Username.
func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp: host is required")
	}
	if cfg.Port <= 0 {
		cfg.Port = mail.DefaultPortTLS
	}
	if len(cfg.To) == 0 && cfg.Username != "" {
		cfg.To = []string{cfg.Username}
	}
	if len(cfg.To) == 0 {
		return nil, fmt.Errorf("smtp: at least one recipient is required")
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("smtp: sender address is required")
	}
	return &SMTPNotifier{cfg: cfg, now: time.Now}, nil
}

func (n *SMTPNotifier) Notify(ctx context.Context, c domain.Contact) error {
	msg, err := Render(c)
	if err != nil {
		return err
	}
	m, err := n.compose(msg, c.Email)
	if err != nil {
		return err
	}
	client, err := n.client()
	if err != nil {
		return err
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send via %s:%d: %w", n.cfg.Host, n.cfg.Port, err)
	}
	return nil
}

// compose builds the message. The HTML body is quoted-printable encoded so
// no line exceeds the SMTP line limit whatever the visitor typed.
func (n *SMTPNotifier) compose(msg Message, replyTo string) (*mail.Msg, error) {
	m := mail.NewMsg(mail.WithEncoding(mail.EncodingQP), mail.WithCharset(mail.CharsetUTF8))
	if err := m.From(n.cfg.From); err != nil {
		return nil, fmt.Errorf("smtp from %q: %w", n.cfg.From, err)
	}
	if err := m.To(n.cfg.To...); err != nil {
		return nil, fmt.Errorf("smtp to: %w", err)
	}
	if replyTo != "" {
		if err := m.ReplyTo(replyTo); err != nil {
			return nil, fmt.Errorf("smtp reply-to %q: %w", replyTo, err)
		}
	}
	m.Subject(msg.Subject)
	m.SetDateWithValue(n.now())
	m.SetMessageID()
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	return m, nil
}

func (n *SMTPNotifier) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(n.cfg.Port),
		mail.WithTLSConfig(&tls.Config{ServerName: n.cfg.Host, MinVersion: tls.VersionTLS12}),
	}
	if n.cfg.Port == mail.DefaultPortSSL {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if n.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.cfg.Username),
			mail.WithPassword(n.cfg.Password),
		)
	}
	c, err := mail.NewClient(n.cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return c, nil
}
