// Package sentiment scores plain text with the VADER lexicon.
package sentiment

import "github.com/jonreiter/govader"

// Scores are the four polarity values. They are passed through unchanged.
type Scores struct {
	Pos      float64 `json:"pos"`
	Neg      float64 `json:"neg"`
	Neu      float64 `json:"neu"`
	Compound float64 `json:"compound"`
}

// Scorer turns text into polarity scores. Implementations must be safe for
// concurrent use.
type Scorer interface {
	Score(text string) Scores
}

// Vader scores text with a VADER analyser built once at construction.
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVader loads the VADER lexicon.
func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *Vader) Score(text string) Scores {
	s := v.analyzer.PolarityScores(text)
	return Scores{Pos: s.Positive, Neg: s.Negative, Neu: s.Neutral, Compound: s.Compound}
}
