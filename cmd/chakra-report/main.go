package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/soulful-academy/chakra-report/internal/api"
	"github.com/soulful-academy/chakra-report/internal/config"
	"github.com/soulful-academy/chakra-report/internal/content"
	reporterrors "github.com/soulful-academy/chakra-report/internal/errors"
	"github.com/soulful-academy/chakra-report/internal/logging"
	"github.com/soulful-academy/chakra-report/internal/logo"
	"github.com/soulful-academy/chakra-report/internal/models"
	"github.com/soulful-academy/chakra-report/internal/notifications"
	"github.com/soulful-academy/chakra-report/internal/reports"
	"github.com/soulful-academy/chakra-report/pkg/reporting"
)

// Version information (set at build time with -ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	inputFile   string
	variantName string
	outputDir   string
	emailTo     string
	emailSubj   string
	emailBody   string
	listenAddr  string
)

var rootCmd = &cobra.Command{
	Use:           "chakra-report",
	Short:         "Chakra and aura assessment PDF reports",
	Long:          `chakra-report turns a practitioner's chakra and aura assessment into a branded PDF report, optionally emailed to the client.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(logging.Config{
			Format:    "auto",
			Level:     "info",
			Component: "chakra-report",
		})
		if err := content.Validate(); err != nil {
			return reporterrors.NewReportError(reporterrors.ErrorTypeConfig, "content_tables", err)
		}
		return nil
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a report from a YAML or JSON record file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd.Context(), cmd)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("chakra-report %s\n", Version)
		if BuildTime != "unknown" {
			fmt.Printf("Built: %s\n", BuildTime)
		}
		if GitCommit != "unknown" {
			fmt.Printf("Commit: %s\n", GitCommit)
		}
	},
}

func init() {
	renderCmd.Flags().StringVarP(&inputFile, "input", "i", "", "record file (YAML or JSON)")
	renderCmd.Flags().StringVar(&variantName, "variant", "", "report variant: aura, crystal or full (default from CHAKRA_VARIANT)")
	renderCmd.Flags().StringVarP(&outputDir, "out", "o", "", "output directory (default from CHAKRA_OUTPUT_DIR)")
	renderCmd.Flags().StringVar(&emailTo, "email-to", "", "email the report to this address")
	renderCmd.Flags().StringVar(&emailSubj, "subject", "", "email subject")
	renderCmd.Flags().StringVar(&emailBody, "body", "", "email message")
	_ = renderCmd.MarkFlagRequired("input")

	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (default from CHAKRA_LISTEN_ADDR)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadRuntime(ctx context.Context) (*config.Config, *reports.Service, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, reporterrors.NewReportError(reporterrors.ErrorTypeConfig, "load_config", err)
	}

	if _, err := logging.InitFromConfig(ctx, logging.Config{
		Format:    cfg.LogFormat,
		Level:     cfg.LogLevel,
		Component: "chakra-report",
	}); err != nil {
		return nil, nil, reporterrors.NewReportError(reporterrors.ErrorTypeConfig, "init_logging", err)
	}

	opts := reports.Options{
		Logo: logo.NewCache(cfg.LogoURL, cfg.LogoPath),
	}
	if cfg.Email.Configured() {
		opts.Mailer = notifications.NewMailer(cfg.Email)
	}
	return cfg, reports.NewService(opts), nil
}

func runRender(ctx context.Context, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, svc, err := loadRuntime(ctx)
	if err != nil {
		return err
	}

	variant := cfg.Variant
	if strings.TrimSpace(variantName) != "" {
		if variant, err = reporting.ParseVariant(variantName); err != nil {
			return err
		}
	}
	dir := cfg.OutputDir
	if strings.TrimSpace(outputDir) != "" {
		dir = outputDir
	}

	emailReq := reports.EmailRequest{
		To:      emailTo,
		Subject: emailSubj,
		Body:    emailBody,
	}
	sendEmail := strings.TrimSpace(emailTo) != ""
	if sendEmail {
		if err := emailReq.Validate(); err != nil {
			return err
		}
	}

	rec, err := readRecord(inputFile)
	if err != nil {
		return err
	}

	result, err := svc.Create(ctx, rec, variant)
	if err != nil {
		return err
	}
	path, err := svc.Save(result, dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", path)

	if sendEmail {
		warnings, err := svc.Email(ctx, result, emailReq)
		if err != nil {
			return err
		}
		for _, w := range warnings {
			fmt.Fprintf(cmd.OutOrStdout(), "Warning: %s\n", w)
		}
		if len(warnings) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Report emailed to %s\n", emailTo)
		}
	}
	return nil
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, svc, err := loadRuntime(ctx)
	if err != nil {
		return err
	}

	addr := cfg.ListenAddr
	if strings.TrimSpace(listenAddr) != "" {
		addr = listenAddr
	}

	log.Info().
		Str("version", Version).
		Str("variant", string(cfg.Variant)).
		Bool("email", cfg.Email.Configured()).
		Msg("Starting chakra report service")

	srv := api.NewServer(addr, &api.Deps{
		Service:        svc,
		DefaultVariant: cfg.Variant,
		Version:        Version,

		TrustForwardedFor: cfg.TrustProxy,
	})
	return api.Run(ctx, srv)
}

// readRecord decodes a record file. JSON is valid YAML, so one decoder
// handles both.
func readRecord(path string) (*models.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	var rec models.Record
	if err := yaml.Unmarshal(raw, &rec); err != nil {
		return nil, reporterrors.WrapValidationError("read_record", fmt.Errorf("decode %s: %w", path, err))
	}
	return &rec, nil
}
