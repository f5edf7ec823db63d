package app

import (
	"context"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gosentiment/internal/fetch"
	"github.com/hyperifyio/gosentiment/internal/report"
	"github.com/hyperifyio/gosentiment/internal/sentiment"
	"github.com/hyperifyio/gosentiment/internal/source"
)

// App wires source resolution, scoring and rendering for one process.
// Everything it holds is read-only after New, so Analyse may run concurrently.
type App struct {
	cfg      Config
	resolver *source.Resolver
	scorer   sentiment.Scorer
	out      io.Writer
	color    bool
}

// New builds an App writing reports to out. color enables ANSI colors in
// table output.
func New(cfg Config, out io.Writer, color bool) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	client := &fetch.Client{
		HTTPClient: newHTTPClient(),
		UserAgent:  cfg.UserAgent,
		Timeout:    cfg.Timeout,
		Retry: fetch.RetryPolicy{
			MaxAttempts: cfg.Retries + 1,
			BaseDelay:   200 * time.Millisecond,
			MaxDelay:    2 * time.Second,
		},
	}
	return &App{
		cfg:      cfg,
		resolver: source.NewResolver(client),
		scorer:   sentiment.NewVader(),
		out:      out,
		color:    color,
	}, nil
}

// Analyse resolves spec to text, scores it, and writes the report.
// Resolution failures are returned unchanged so callers can inspect their kind.
func (a *App) Analyse(ctx context.Context, spec source.Spec) (report.Result, error) {
	start := time.Now()
	text, err := a.resolver.Resolve(ctx, spec)
	if err != nil {
		return report.Result{}, err
	}
	log.Debug().Str("source", spec.Location()).Int("chars", utf8.RuneCountInString(text)).Dur("elapsed", time.Since(start)).Msg("resolved source")

	res := report.Result{Source: spec.Location(), Scores: a.scorer.Score(text)}

	switch a.cfg.Format {
	case FormatJSON:
		err = report.WriteJSON(a.out, res)
	default:
		err = report.WriteTable(a.out, res.Scores, report.Options{Color: a.color})
	}
	if err != nil {
		return res, fmt.Errorf("write report: %w", err)
	}

	if a.cfg.PDFPath != "" {
		if err := report.WritePDF(a.cfg.PDFPath, res); err != nil {
			return res, fmt.Errorf("write pdf: %w", err)
		}
		log.Info().Str("out", a.cfg.PDFPath).Msg("wrote pdf report")
	}
	return res, nil
}
