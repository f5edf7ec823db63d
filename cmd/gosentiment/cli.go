package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/gosentiment/internal/app"
	"github.com/hyperifyio/gosentiment/internal/report"
	"github.com/hyperifyio/gosentiment/internal/source"
	"github.com/hyperifyio/gosentiment/internal/sourceerr"
)

// Exit code policy: 0 on success, 1 when analysis fails, 2 when the
// invocation itself is wrong (flags, spec or configuration).
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

type cli struct {
	stdout io.Writer

	configPath string
	format     string
	pdfPath    string
	userAgent  string
	timeout    time.Duration
	retries    int
	noColor    bool
	verbose    bool

	path     string
	selector string

	// analysing is set once flags, spec and config were accepted.
	analysing bool
}

func execute(ctx context.Context, args []string, stdout io.Writer) int {
	c := &cli{stdout: stdout}
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	var ue usageError
	if errors.As(err, &ue) || !c.analysing {
		log.Error().Err(err).Msg("invalid invocation; see --help")
		return exitUsage
	}
	ev := log.Error().Err(err)
	if k := sourceerr.KindOf(err); k != 0 {
		ev = ev.Str("kind", k.String())
	}
	ev.Msg("analysis failed")
	return exitFailure
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gosentiment",
		Short:         "A CLI tool to perform simple sentiment analysis on provided text",
		Version:       app.VersionString(),
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          missingSubcommand,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "Path to a YAML or JSON config file (env "+app.EnvConfig+")")
	pf.StringVar(&c.format, "format", app.FormatTable, "Report format: table or json")
	pf.StringVar(&c.pdfPath, "pdf", "", "Also write the report as a PDF to this path")
	pf.StringVar(&c.userAgent, "user-agent", "", "User-Agent header for remote fetches")
	pf.DurationVar(&c.timeout, "timeout", 30*time.Second, "Deadline for each remote fetch attempt (0 disables)")
	pf.IntVar(&c.retries, "retries", 0, "Extra attempts on transport errors (never on HTTP status errors)")
	pf.BoolVar(&c.noColor, "no-color", false, "Disable colored output")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "Verbose logging")

	analyse := &cobra.Command{
		Use:   "analyse",
		Short: "Performs sentiment analysis on a document",
		Args:  cobra.NoArgs,
		RunE:  missingSubcommand,
	}
	analyse.AddCommand(c.htmlCmd(), c.textCmd())
	root.AddCommand(analyse)
	return root
}

// missingSubcommand backs commands that only group subcommands.
func missingSubcommand(cmd *cobra.Command, args []string) error {
	return usageError{fmt.Errorf("missing or unknown subcommand; see %s --help", cmd.CommandPath())}
}

func (c *cli) htmlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "html",
		Short: "Performs sentiment analysis on provided HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, source.HTML{Path: c.path, Selector: c.selector})
		},
	}
	cmd.Flags().StringVarP(&c.path, "path", "p", "", "A path to an HTML document (this can be a path to a local file or a URL)")
	cmd.Flags().StringVarP(&c.selector, "selector", "s", "", "A CSS selector for an HTML element containing text")
	_ = cmd.MarkFlagRequired("path")
	_ = cmd.MarkFlagRequired("selector")
	return cmd
}

func (c *cli) textCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text",
		Short: "Performs sentiment analysis on provided text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, source.Text{Path: c.path})
		},
	}
	cmd.Flags().StringVarP(&c.path, "path", "p", "", "A path to a file containing text")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}

func (c *cli) run(cmd *cobra.Command, spec source.Spec) error {
	if err := spec.Validate(); err != nil {
		return usageError{err}
	}
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return usageError{err}
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	out, color := c.output(cfg)
	a, err := app.New(cfg, out, color)
	if err != nil {
		return usageError{err}
	}
	c.analysing = true
	_, err = a.Analyse(cmd.Context(), spec)
	return err
}

// loadConfig layers defaults, config file, environment and explicitly set
// flags, in increasing precedence.
func (c *cli) loadConfig(cmd *cobra.Command) (app.Config, error) {
	cfg := app.DefaultConfig()

	path := c.configPath
	if path == "" {
		path = os.Getenv(app.EnvConfig)
	}
	if path != "" {
		fc, err := app.LoadConfigFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		if err := app.ApplyFileConfig(&cfg, fc); err != nil {
			return cfg, err
		}
	}
	app.ApplyEnvOverrides(&cfg)

	fs := cmd.Flags()
	if fs.Changed("format") {
		cfg.Format = c.format
	}
	if fs.Changed("pdf") {
		cfg.PDFPath = c.pdfPath
	}
	if fs.Changed("user-agent") {
		cfg.UserAgent = c.userAgent
	}
	if fs.Changed("timeout") {
		cfg.Timeout = c.timeout
	}
	if fs.Changed("retries") {
		cfg.Retries = c.retries
	}
	if fs.Changed("no-color") {
		cfg.NoColor = c.noColor
	}
	if fs.Changed("verbose") {
		cfg.Verbose = c.verbose
	}
	return cfg, app.ValidateConfig(cfg)
}

func (c *cli) output(cfg app.Config) (io.Writer, bool) {
	f, ok := c.stdout.(*os.File)
	if !ok {
		return c.stdout, false
	}
	color := report.ColorEnabled(f, cfg.NoColor)
	return report.Writer(f, color), color
}
