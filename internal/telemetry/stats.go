// Package telemetry summarizes the lattice after each tick for logs and CSV
// output.
package telemetry

import (
	"log/slog"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"nature-ca/internal/sims/nature"
)

// Stats describes the lattice at the end of one tick.
type Stats struct {
	Tick     int `csv:"tick"`
	Width    int `csv:"width"`
	Height   int `csv:"height"`
	Occupied int `csv:"occupied"`
	Empty    int `csv:"empty"`

	Transitions int `csv:"transitions"`
	Spreads     int `csv:"spreads"`

	// Entropy is the Shannon entropy (nats) of the tile-type shares among
	// occupied cells.
	Entropy float64 `csv:"entropy"`
	// Composition lists name=count pairs in catalog order.
	Composition string `csv:"composition"`
}

// Collect gathers statistics from the world's current lattice.
func Collect(w *nature.World) Stats {
	g := w.Grid()
	report := w.LastStep()
	counts := g.Count()

	s := Stats{
		Tick:        w.Tick(),
		Width:       g.Width(),
		Height:      g.Height(),
		Transitions: report.Transitions,
		Spreads:     report.Spreads,
	}

	types := w.Catalog().Types()
	shares := make([]float64, 0, len(types))
	parts := make([]string, 0, len(types))
	for _, t := range types {
		n := counts[t]
		s.Occupied += n
		shares = append(shares, float64(n))
		parts = append(parts, t.Name+"="+strconv.Itoa(n))
	}
	s.Empty = s.Width*s.Height - s.Occupied
	s.Composition = strings.Join(parts, ";")

	if s.Occupied > 0 {
		for i := range shares {
			shares[i] /= float64(s.Occupied)
		}
		s.Entropy = stat.Entropy(shares)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", s.Tick),
		slog.Int("width", s.Width),
		slog.Int("height", s.Height),
		slog.Int("occupied", s.Occupied),
		slog.Int("empty", s.Empty),
		slog.Int("transitions", s.Transitions),
		slog.Int("spreads", s.Spreads),
		slog.Float64("entropy", s.Entropy),
		slog.String("composition", s.Composition),
	)
}
