// Package chart renders trained embeddings as 2D scatter plots.
package chart

import (
	"fmt"
	"image/color"

	"github.com/sanonone/lexvek/pkg/core"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// DefaultMaxWords caps how many words are plotted when the caller does not
// name any. Beyond a few dozen the labels become unreadable anyway.
const DefaultMaxWords = 30

// Options controls the rendered plot.
type Options struct {
	// Title is drawn above the plot. Empty leaves the default title.
	Title string
	// MaxWords limits the automatic word selection when no words are
	// given. Zero means DefaultMaxWords.
	MaxWords int
}

// Scatter plots the first two embedding dimensions of the given words and
// writes the image to path. The output format follows the file extension
// (.png, .svg, .pdf, ...).
//
// With an empty word list the most frequent vocabulary words are plotted
// instead. Any named word missing from the vocabulary aborts with an
// UnknownWordError before anything is drawn.
func Scatter(model *core.Model, words []string, path string, opts Options) error {
	if model.Dim() < 2 {
		return fmt.Errorf("plotting needs at least 2 dimensions, model has %d", model.Dim())
	}
	if len(words) == 0 {
		max := opts.MaxWords
		if max <= 0 {
			max = DefaultMaxWords
		}
		words = model.Vocab.MostFrequent(max)
	}

	points := make(plotter.XYs, len(words))
	labels := make([]string, len(words))
	for i, word := range words {
		vec, ok := model.Vector(word)
		if !ok {
			return &core.UnknownWordError{Word: word}
		}
		points[i].X = vec[0]
		points[i].Y = vec[1]
		labels[i] = word
	}

	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = "word embeddings"
	}
	p.X.Label.Text = "dimension 1"
	p.Y.Label.Text = "dimension 2"
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return fmt.Errorf("building scatter: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(3)
	scatter.GlyphStyle.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}

	names, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: labels})
	if err != nil {
		return fmt.Errorf("building labels: %w", err)
	}

	p.Add(scatter, names)
	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}
