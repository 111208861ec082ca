package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/radlog/radlog/pkg/analyzer"
	"github.com/radlog/radlog/pkg/config"
	"github.com/radlog/radlog/pkg/output"
	"github.com/radlog/radlog/pkg/parser"
	"github.com/radlog/radlog/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// CheckOptions holds command-line options for the check command.
type CheckOptions struct {
	Root           string
	Config         string
	Extension      string
	Output         string
	RemoveOutliers bool
	Z              float64
	Verbose        bool
	Quiet          bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Check collection intervals of stat logs in a directory",
		Long: `Parse every stat log in a directory and report descriptive statistics
of the deltas between consecutive read timestamps, in milliseconds.

Files that lack the metadata header terminator are skipped with a
diagnostic; rows that fail to decode are skipped and reported; neither
aborts the rest of the batch.

Exit codes:
  0 - All discovered files parsed
  1 - One or more files were skipped due to structural errors
  2 - Configuration or runtime error`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.Root, "root", "r", "", "Directory to find stat logs in (defaults to current directory)")
	cmd.Flags().StringVar(&opts.Config, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&opts.Extension, "ext", config.DefaultExtension, "Stat log file extension")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", config.DefaultOutput, "Output format (text|json)")
	cmd.Flags().BoolVar(&opts.RemoveOutliers, "remove-outliers", false, "Drop IQR outliers from the delta array before computing statistics")
	cmd.Flags().Float64Var(&opts.Z, "z", config.DefaultZ, "IQR sensitivity multiplier for outlier rejection")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show metadata and skipped-row details")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "One summary line per file, no tables")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_issues", "When to fire webhook (on_issues|always|never)")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := resolveConfig(ctx, cmd, args, opts)
	if err != nil {
		return err
	}

	root, err := resolveRoot(cfg.Root)
	if err != nil {
		return err
	}

	files, err := parser.DiscoverFiles(root, cfg.Extension)
	if err != nil {
		return fmt.Errorf("discovering stat logs: %w", err)
	}
	if len(files) == 0 {
		logrus.WithField("root", root).Warnf("no .%s files found", cfg.Extension)
		return nil
	}

	formatter, err := createFormatter(cfg, opts)
	if err != nil {
		return err
	}

	var analyzerOpts []analyzer.Option
	if cfg.RemoveOutliers {
		analyzerOpts = append(analyzerOpts, analyzer.WithOutlierFilter(cfg.Z))
	}

	batch := &output.Batch{}

	// One file is fully parsed and analyzed before the next begins;
	// failures abort only the file they occurred in.
	for _, file := range files {
		rel := relPath(file)
		log := logrus.WithField("file", rel)
		log.Debug("parsing stat log")

		parsed, rowErrs, err := parser.ParseFile(file)
		if err != nil {
			log.WithError(err).Error("skipping file")
			batch.Summary.FilesFailed++
			ExitCode = 1
			continue
		}

		for _, re := range rowErrs {
			log.WithField("row", re.Row).Warnf("skipping row: %v", re.Err)
		}

		stats := analyzer.Analyze(parsed.Samples, analyzerOpts...)
		report := output.NewReport(rel, parsed, rowErrs, stats)

		if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("formatting output: %w", err)
		}

		batch.Add(report)
	}

	batch.AnalyzedAt = time.Now()

	// Send webhooks (errors logged but don't fail the run)
	sendWebhooks(ctx, cfg, opts, batch)

	return nil
}

// resolveConfig merges the config file (or defaults plus environment)
// with command-line flag overrides. Flags win.
func resolveConfig(ctx context.Context, cmd *cobra.Command, args []string, opts *CheckOptions) (*config.Config, error) {
	var cfg *config.Config
	if opts.Config != "" {
		loaded, err := config.Load(ctx, opts.Config)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.FromEnvironment()
	}

	flags := cmd.Flags()
	if flags.Changed("ext") {
		cfg.Extension = opts.Extension
	}
	if flags.Changed("output") {
		cfg.Output = opts.Output
	}
	if flags.Changed("remove-outliers") {
		cfg.RemoveOutliers = opts.RemoveOutliers
	}
	if flags.Changed("z") {
		cfg.Z = opts.Z
	}

	switch {
	case len(args) == 1:
		cfg.Root = args[0]
	case flags.Changed("root"):
		cfg.Root = opts.Root
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveRoot turns the configured root into an absolute directory,
// defaulting to the current working directory.
func resolveRoot(root string) (string, error) {
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}
		return cwd, nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root %q: %w", root, err)
	}
	return abs, nil
}

// relPath renders a path relative to the working directory when
// possible, matching how files are reported to the user.
func relPath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	return rel
}

func createFormatter(cfg *config.Config, opts *CheckOptions) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	}

	switch cfg.Output {
	case "text":
		return output.NewTextFormatter(formatOpts), nil
	case "json":
		return output.NewJSONFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", cfg.Output)
	}
}

// sendWebhooks sends the batch report to all configured webhooks.
// Errors are logged but don't fail the run.
func sendWebhooks(ctx context.Context, cfg *config.Config, opts *CheckOptions, batch *output.Batch) {
	webhooks := collectWebhooks(cfg, opts)
	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, batch.HasIssues()) {
			continue
		}

		resp := client.Send(ctx, batch, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		log := logrus.WithField("webhook", name)
		if resp.Success() {
			log.Debugf("sent (%d, %s)", resp.StatusCode, resp.Duration)
		} else {
			log.WithError(resp.Error).Warn("webhook delivery failed")
		}
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *CheckOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnIssues
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}

// shouldFireWebhook determines if a webhook should fire based on its
// trigger and the run outcome.
func shouldFireWebhook(trigger config.WebhookTrigger, hasIssues bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	default:
		return hasIssues
	}
}
