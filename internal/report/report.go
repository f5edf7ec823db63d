// Package report renders polarity scores for people and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/hyperifyio/gosentiment/internal/sentiment"
)

// Result pairs the analysed source with its scores.
type Result struct {
	Source string           `json:"source"`
	Scores sentiment.Scores `json:"scores"`
}

// Options control table rendering.
type Options struct {
	Color bool
}

// ANSI foreground codes, numbered the way zerolog's ConsoleWriter numbers them.
const (
	colorRed = iota + 31
	colorGreen
	colorYellow
)

// Compound thresholds conventionally used with VADER.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// WriteTable writes a fixed-column table of the four scores.
// Compound is the last column so color escapes never skew alignment.
func WriteTable(w io.Writer, s sentiment.Scores, opts Options) error {
	tw := tabwriter.NewWriter(w, 10, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "pos\tneg\tneu\tcompound")
	compound := colorize(fmt.Sprintf("%.4f", s.Compound), colorFor(s.Compound), !opts.Color)
	fmt.Fprintf(tw, "%.4f\t%.4f\t%.4f\t%s\n", s.Pos, s.Neg, s.Neu, compound)
	return tw.Flush()
}

func colorFor(compound float64) int {
	switch {
	case compound >= positiveThreshold:
		return colorGreen
	case compound <= negativeThreshold:
		return colorRed
	default:
		return colorYellow
	}
}

// colorize wraps s in ANSI code c unless disabled is true or c is 0.
func colorize(s string, c int, disabled bool) string {
	if disabled || c == 0 {
		return s
	}
	return fmt.Sprintf("\x1b[%dm%s\x1b[0m", c, s)
}

// WriteJSON writes r as a single indented JSON object.
func WriteJSON(w io.Writer, r Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// ColorEnabled reports whether ANSI colors should be written to f.
func ColorEnabled(f *os.File, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" || f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Writer wraps f so ANSI escapes render on Windows consoles too.
func Writer(f *os.File, color bool) io.Writer {
	if color {
		return colorable.NewColorable(f)
	}
	return colorable.NewNonColorable(f)
}
