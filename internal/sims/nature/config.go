package nature

import (
	"fmt"
	"math"
	"strconv"

	"nature-ca/internal/mapgen"
)

// Sweep selects how the transition phase observes neighbours.
type Sweep string

const (
	// SweepSnapshot reads neighbours from the lattice as it was at tick start.
	SweepSnapshot Sweep = "snapshot"
	// SweepInPlace reads neighbours as they are updated during the sweep, so
	// results depend on sweep order.
	SweepInPlace Sweep = "inplace"
)

const (
	// DefaultSpreadScale makes a tile's spread weight read as a percentage.
	DefaultSpreadScale = 100
	// DefaultStayWeight is the "stay the same" weight per distinct candidate.
	DefaultStayWeight = 100
)

// Params holds the tunable weights of the evolution rule.
type Params struct {
	// SpreadScale is the combined weight of "spread" and "no spread" for one
	// empty neighbour; the no-spread weight is SpreadScale minus the tile's
	// spread weight, floored at zero.
	SpreadScale float64
	// StayWeight is multiplied by the number of candidate types to form the
	// implicit "stay the same" weight.
	StayWeight float64
	Sweep      Sweep
}

// Config controls the Nature simulation.
type Config struct {
	Seed int64

	// Classic replaces the generator with the fixed 20x20 starter map.
	Classic bool

	Params    Params
	Generator mapgen.Config
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Params: Params{
			SpreadScale: DefaultSpreadScale,
			StayWeight:  DefaultStayWeight,
			Sweep:       SweepSnapshot,
		},
		Generator: mapgen.DefaultConfig(),
	}
}

// ParseSweep maps a sweep name onto a Sweep value.
func ParseSweep(s string) (Sweep, bool) {
	switch Sweep(s) {
	case SweepSnapshot, SweepInPlace:
		return Sweep(s), true
	}
	return "", false
}

// Keys lists the keys FromMap understands.
var Keys = []string{"w", "h", "seed", "spread_scale", "stay_weight", "sweep", "classic"}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Values that do not parse or are out of range keep the default.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	for _, k := range Keys {
		if v, ok := cfg[k]; ok {
			_ = c.set(k, v)
		}
	}
	return c
}

// CheckValue reports whether FromMap would accept value for key.
func CheckValue(key, value string) error {
	c := DefaultConfig()
	return c.set(key, value)
}

func (c *Config) set(key, value string) error {
	switch key {
	case "w", "h":
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		if parsed <= 0 {
			return fmt.Errorf("%s must be positive, got %d", key, parsed)
		}
		if key == "w" {
			c.Generator.Width = parsed
		} else {
			c.Generator.Height = parsed
		}
	case "seed":
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		c.Seed = parsed
	case "spread_scale", "stay_weight":
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		if !validWeight(parsed) {
			return fmt.Errorf("%s must be a non-negative finite number, got %v", key, parsed)
		}
		if key == "spread_scale" {
			c.Params.SpreadScale = parsed
		} else {
			c.Params.StayWeight = parsed
		}
	case "sweep":
		parsed, ok := ParseSweep(value)
		if !ok {
			return fmt.Errorf("sweep must be %q or %q, got %q", SweepSnapshot, SweepInPlace, value)
		}
		c.Params.Sweep = parsed
	case "classic":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		c.Classic = parsed
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

func validWeight(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// normalize replaces unusable tunables with defaults.
func (p Params) normalize() Params {
	if !validWeight(p.SpreadScale) {
		p.SpreadScale = DefaultSpreadScale
	}
	if !validWeight(p.StayWeight) {
		p.StayWeight = DefaultStayWeight
	}
	if _, ok := ParseSweep(string(p.Sweep)); !ok {
		p.Sweep = SweepSnapshot
	}
	return p
}
