package reports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/soulful-academy/chakra-report/internal/content"
	reporterrors "github.com/soulful-academy/chakra-report/internal/errors"
	"github.com/soulful-academy/chakra-report/internal/logging"
	"github.com/soulful-academy/chakra-report/internal/metrics"
	"github.com/soulful-academy/chakra-report/internal/models"
	"github.com/soulful-academy/chakra-report/internal/notifications"
	"github.com/soulful-academy/chakra-report/pkg/reporting"
)

// Warning shown when email credentials are absent.
const WarningEmailNotConfigured = "Email not sent: set CHAKRA_EMAIL_USER and CHAKRA_EMAIL_PASSWORD to enable sending reports."

// LogoProvider returns a local logo path, or "" when none is available.
type LogoProvider interface {
	Ensure(ctx context.Context) string
}

// Sender delivers a report email.
type Sender interface {
	SendReport(ctx context.Context, msg notifications.Message) error
}

// EngineFactory builds a renderer that uses the given logo path.
type EngineFactory func(logoPath string) reporting.Engine

// Options configures a Service. Nil collaborators are allowed.
type Options struct {
	Logo      LogoProvider
	Mailer    Sender
	NewEngine EngineFactory
	LogOutput io.Writer // defaults to the writer chosen by logging.Init
}

// Result is a rendered report.
type Result struct {
	ID       string            `json:"id"`
	Client   string            `json:"client"`
	Coach    string            `json:"coach,omitempty"`
	Variant  reporting.Variant `json:"variant"`
	Filename string            `json:"filename"`
	PDF      []byte            `json:"-"`
	Warnings []string          `json:"warnings,omitempty"`
}

// EmailRequest addresses a rendered report. Blank subject and body use the
// default template.
type EmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Validate checks the recipient so a bad request fails before any rendering.
func (r EmailRequest) Validate() error {
	if strings.TrimSpace(r.To) == "" {
		return reporterrors.WrapValidationError("email_report", errors.New("please enter a recipient email address"))
	}
	_, err := notifications.ParseRecipient(r.To)
	return err
}

// Service turns submitted records into PDF reports.
type Service struct {
	logo      LogoProvider
	mailer    Sender
	newEngine EngineFactory
	logger    zerolog.Logger
}

// NewService creates a report service.
func NewService(opts Options) *Service {
	newEngine := opts.NewEngine
	if newEngine == nil {
		newEngine = func(logoPath string) reporting.Engine {
			return reporting.NewPDFGenerator(logoPath)
		}
	}
	var logOpts []logging.Option
	if opts.LogOutput != nil {
		logOpts = append(logOpts, logging.WithWriter(opts.LogOutput))
	}
	return &Service{
		logo:      opts.Logo,
		mailer:    opts.Mailer,
		newEngine: newEngine,
		logger:    logging.New("reports", logOpts...),
	}
}

func (s *Service) loggerFor(ctx context.Context) zerolog.Logger {
	if id := logging.GetRequestID(ctx); id != "" {
		return s.logger.With().Str("request_id", id).Logger()
	}
	return s.logger
}

// Create validates rec, fills blank text from the content tables and renders
// it. A blank client name is rejected before any rendering work.
func (s *Service) Create(ctx context.Context, rec *models.Record, variant reporting.Variant) (*Result, error) {
	if rec == nil {
		metrics.RecordReportFailure(string(reporterrors.ErrorTypeValidation))
		return nil, reporterrors.WrapValidationError("create_report", reporterrors.ErrInvalidInput)
	}
	if err := rec.Validate(); err != nil {
		metrics.RecordReportFailure(string(reporterrors.TypeOf(err)))
		return nil, err
	}
	if variant == "" {
		variant = reporting.VariantFull
	}

	content.Fill(rec)

	logoPath := ""
	if s.logo != nil {
		logoPath = s.logo.Ensure(ctx)
	}

	start := time.Now()
	pdf, err := s.render(rec, variant, logoPath)
	if err != nil {
		metrics.RecordReportFailure(string(reporterrors.TypeOf(err)))
		logger := s.loggerFor(ctx)
		logger.Error().Err(err).Str("client", rec.ClientName).Str("variant", string(variant)).Msg("Report rendering failed")
		return nil, err
	}
	elapsed := time.Since(start)
	metrics.RecordReportGenerated(string(variant), elapsed)

	result := &Result{
		ID:       uuid.NewString(),
		Client:   strings.TrimSpace(rec.ClientName),
		Coach:    strings.TrimSpace(rec.CoachName),
		Variant:  variant,
		Filename: variant.Filename(rec.ClientName),
		PDF:      pdf,
	}

	blocked, pct := models.BlockedStats(rec)
	logger := s.loggerFor(ctx)
	logger.Info().
		Str("report_id", result.ID).
		Str("client", result.Client).
		Str("variant", string(variant)).
		Int("blocked", blocked).
		Float64("blocked_pct", pct).
		Int("bytes", len(pdf)).
		Dur("elapsed", elapsed).
		Bool("logo", logoPath != "").
		Msg("Report generated")

	return result, nil
}

func (s *Service) render(rec *models.Record, variant reporting.Variant, logoPath string) (pdf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			pdf = nil
			err = reporterrors.NewReportError(reporterrors.ErrorTypeRender, "render", fmt.Errorf("%v", r)).WithClient(rec.ClientName)
		}
	}()

	pdf, err = s.newEngine(logoPath).Generate(rec, variant)
	if err != nil {
		return nil, reporterrors.NewReportError(reporterrors.ErrorTypeRender, "render", err).WithClient(rec.ClientName)
	}
	return pdf, nil
}

// Email sends result to req.To. Missing credentials and delivery failures
// are returned as warnings; only a malformed request is an error.
func (s *Service) Email(ctx context.Context, result *Result, req EmailRequest) ([]string, error) {
	if result == nil || len(result.PDF) == 0 {
		return nil, reporterrors.WrapValidationError("email_report", errors.New("no report to send"))
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if s.mailer == nil {
		metrics.RecordEmail("not_configured")
		return []string{WarningEmailNotConfigured}, nil
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = notifications.DefaultSubject(result.Client)
	}
	body := req.Body
	if strings.TrimSpace(body) == "" {
		body = notifications.DefaultBody(result.Client, result.Coach)
	}

	err := s.mailer.SendReport(ctx, notifications.Message{
		To:      req.To,
		Subject: subject,
		Body:    body,
		Attachments: []notifications.Attachment{{
			Filename:    result.Filename,
			ContentType: "application/pdf",
			Content:     result.PDF,
		}},
	})
	switch {
	case err == nil:
		metrics.RecordEmail("sent")
		return nil, nil
	case errors.Is(err, reporterrors.ErrEmailNotConfigured):
		metrics.RecordEmail("not_configured")
		logger := s.loggerFor(ctx)
		logger.Warn().Str("report_id", result.ID).Msg("Email credentials missing, skipping send")
		return []string{WarningEmailNotConfigured}, nil
	case reporterrors.IsValidationError(err):
		metrics.RecordEmail("failed")
		return nil, err
	default:
		metrics.RecordEmail("failed")
		logger := s.loggerFor(ctx)
		logger.Warn().Err(err).Str("report_id", result.ID).Str("to", req.To).Msg("Report email failed")
		return []string{fmt.Sprintf("Email failed: %v", err)}, nil
	}
}

// Save writes the PDF into dir under its download filename and returns the path.
func (s *Service) Save(result *Result, dir string) (string, error) {
	if result == nil {
		return "", reporterrors.WrapValidationError("save_report", reporterrors.ErrInvalidInput)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(result.Filename))
	if err := os.WriteFile(path, result.PDF, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
