package notifications

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	reporterrors "github.com/soulful-academy/chakra-report/internal/errors"
)

// Fixed provider endpoint (implicit TLS).
const (
	DefaultSMTPHost = "smtp.gmail.com"
	DefaultSMTPPort = 465

	smtpTimeout = 10 * time.Second
)

// EmailConfig holds SMTP credentials for sending reports.
type EmailConfig struct {
	SMTPHost string `json:"smtpHost"`
	SMTPPort int    `json:"smtpPort"`
	Username string `json:"username"`
	Password string `json:"-"`
	From     string `json:"from"`
}

// Configured reports whether both credentials are present.
func (c EmailConfig) Configured() bool {
	return strings.TrimSpace(c.Username) != "" && strings.TrimSpace(c.Password) != ""
}

func (c EmailConfig) sender() string {
	if from := strings.TrimSpace(c.From); from != "" {
		return from
	}
	return strings.TrimSpace(c.Username)
}

func (c EmailConfig) withDefaults() EmailConfig {
	if strings.TrimSpace(c.SMTPHost) == "" {
		c.SMTPHost = DefaultSMTPHost
	}
	if c.SMTPPort == 0 {
		c.SMTPPort = DefaultSMTPPort
	}
	return c
}

// smtpDialTLS opens the implicit-TLS connection; tests replace it.
var smtpDialTLS = func(ctx context.Context, addr string, cfg *tls.Config, timeout time.Duration) (net.Conn, error) {
	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: timeout},
		Config:    cfg,
	}
	return dialer.DialContext(ctx, "tcp", addr)
}

// Mailer sends report emails over one SMTP session per message.
type Mailer struct {
	config EmailConfig
}

// NewMailer creates a mailer; an empty host or port uses the default provider.
func NewMailer(config EmailConfig) *Mailer {
	return &Mailer{config: config.withDefaults()}
}

// Configured reports whether the mailer has credentials.
func (m *Mailer) Configured() bool {
	return m.config.Configured()
}

// ParseRecipient validates a single recipient and returns its bare address.
func ParseRecipient(to string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(to))
	if err != nil {
		return "", reporterrors.WrapValidationError("email.recipient", fmt.Errorf("invalid recipient %q: %w", to, err))
	}
	return addr.Address, nil
}

// SendReport delivers msg. Missing credentials return ErrEmailNotConfigured
// without touching the network. There are no retries.
func (m *Mailer) SendReport(ctx context.Context, msg Message) error {
	if !m.config.Configured() {
		return reporterrors.ErrEmailNotConfigured
	}

	to, err := ParseRecipient(msg.To)
	if err != nil {
		return err
	}
	from := m.config.sender()
	if _, err := mail.ParseAddress(from); err != nil {
		return reporterrors.WrapValidationError("email.sender", fmt.Errorf("invalid sender %q: %w", from, err))
	}
	msg.To = to

	raw, err := buildMessage(from, msg)
	if err != nil {
		return reporterrors.WrapRenderError("email.compose", err)
	}

	if err := m.send(ctx, from, to, raw); err != nil {
		return reporterrors.WrapExternalError("email.send", err)
	}

	log.Info().
		Str("to", to).
		Int("attachments", len(msg.Attachments)).
		Int("bytes", len(raw)).
		Msg("Report email sent")
	return nil
}

func (m *Mailer) send(ctx context.Context, from, to string, raw []byte) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, smtpTimeout)
	defer cancel()

	addr := net.JoinHostPort(m.config.SMTPHost, strconv.Itoa(m.config.SMTPPort))
	tlsConfig := &tls.Config{ServerName: m.config.SMTPHost, MinVersion: tls.VersionTLS12}

	conn, err := smtpDialTLS(ctx, addr, tlsConfig, smtpTimeout)
	if err != nil {
		return fmt.Errorf("TLS dial failed: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, m.config.SMTPHost)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("SMTP handshake failed: %w", err)
	}
	defer client.Close()

	auth, err := m.negotiateAuth(client)
	if err != nil {
		return err
	}
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP auth failed: %w", err)
	}
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("RCPT TO failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA failed: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		_ = w.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}

	if err := client.Quit(); err != nil {
		log.Debug().Err(err).Msg("SMTP QUIT failed after delivery")
	}
	return nil
}

// negotiateAuth picks PLAIN when the server advertises it (or advertises
// nothing) and LOGIN otherwise.
func (m *Mailer) negotiateAuth(client *smtp.Client) (smtp.Auth, error) {
	plain := &plainAuth{username: m.config.Username, password: m.config.Password}
	if client == nil {
		return plain, nil
	}

	ok, mechanisms := client.Extension("AUTH")
	if !ok {
		return plain, nil
	}
	upper := strings.Fields(strings.ToUpper(mechanisms))
	for _, mech := range upper {
		if mech == "PLAIN" {
			return plain, nil
		}
	}
	for _, mech := range upper {
		if mech == "LOGIN" {
			return LoginAuth(m.config.Username, m.config.Password), nil
		}
	}
	return nil, fmt.Errorf("server offers AUTH %s but none are supported", mechanisms)
}

type plainAuth struct {
	identity string
	username string
	password string
}

// Start implements smtp.Auth. The connection is already TLS.
func (a *plainAuth) Start(_ *smtp.ServerInfo) (string, []byte, error) {
	resp := []byte(a.identity + "\x00" + a.username + "\x00" + a.password)
	return "PLAIN", resp, nil
}

func (a *plainAuth) Next(_ []byte, more bool) ([]byte, error) {
	if more {
		return nil, errors.New("unexpected server challenge")
	}
	return nil, nil
}

type loginAuth struct {
	username string
	password string
}

// LoginAuth returns an smtp.Auth for the LOGIN mechanism.
func LoginAuth(username, password string) smtp.Auth {
	return &loginAuth{username: username, password: password}
}

func (a *loginAuth) Start(_ *smtp.ServerInfo) (string, []byte, error) {
	return "LOGIN", nil, nil
}

func (a *loginAuth) Next(fromServer []byte, more bool) ([]byte, error) {
	if !more {
		return nil, nil
	}
	prompt := strings.ToLower(strings.TrimSpace(string(fromServer)))
	switch {
	case strings.Contains(prompt, "username"):
		return []byte(a.username), nil
	case strings.Contains(prompt, "password"):
		return []byte(a.password), nil
	default:
		return nil, fmt.Errorf("unexpected LOGIN prompt %q", string(fromServer))
	}
}
