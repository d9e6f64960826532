// Package config loads application settings from YAML layered over embedded
// defaults, with command-line overrides.
package config

import (
	_ "embed"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"nature-ca/internal/mapgen"
	"nature-ca/internal/sims/nature"
	"nature-ca/internal/tiles"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all application settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Simulation SimulationConfig `yaml:"simulation"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Generator  mapgen.Config    `yaml:"generator"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Scale      int    `yaml:"scale"`
	TileWidth  int    `yaml:"tile_width"`
	TileHeight int    `yaml:"tile_height"`
	AssetDir   string `yaml:"asset_dir"`
}

// SimulationConfig holds the evolution rule and tick control.
type SimulationConfig struct {
	Seed         int64         `yaml:"seed"`
	TickInterval time.Duration `yaml:"tick_interval"`
	Autostart    bool          `yaml:"autostart"`
	Classic      bool          `yaml:"classic"`
	SpreadScale  float64       `yaml:"spread_scale"`
	StayWeight   float64       `yaml:"stay_weight"`
	Sweep        string        `yaml:"sweep"`

	// Overrides holds -set key=value pairs. They are applied last, over both
	// the file and the named flags.
	Overrides Overrides `yaml:"-"`
}

// Overrides collects repeatable key=value flags for the simulation. Keys are
// those understood by nature.FromMap.
type Overrides map[string]string

// String implements flag.Value.
func (o *Overrides) String() string {
	if o == nil {
		return ""
	}
	pairs := make([]string, 0, len(*o))
	for _, k := range slices.Sorted(maps.Keys(*o)) {
		pairs = append(pairs, k+"="+(*o)[k])
	}
	return strings.Join(pairs, ",")
}

// Set implements flag.Value.
func (o *Overrides) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	if !slices.Contains(nature.Keys, k) {
		return fmt.Errorf("unknown key %q (known: %s)", k, strings.Join(nature.Keys, ", "))
	}
	if err := nature.CheckValue(k, v); err != nil {
		return err
	}
	if *o == nil {
		*o = Overrides{}
	}
	(*o)[k] = v
	return nil
}

// CatalogConfig locates the tile catalog. An empty path selects the
// embedded catalog.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// TelemetryConfig controls per-tick statistics output.
type TelemetryConfig struct {
	CSV      string `yaml:"csv"`
	LogEvery int    `yaml:"log_every"`
}

// Load reads configuration from a YAML file merged over the embedded
// defaults. If path is empty, only the defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Simulation.TickInterval <= 0 {
		return fmt.Errorf("simulation.tick_interval must be positive, got %v", c.Simulation.TickInterval)
	}
	if _, ok := nature.ParseSweep(c.Simulation.Sweep); !ok {
		return fmt.Errorf("simulation.sweep must be %q or %q, got %q", nature.SweepSnapshot, nature.SweepInPlace, c.Simulation.Sweep)
	}
	if c.Simulation.SpreadScale < 0 || c.Simulation.StayWeight < 0 {
		return fmt.Errorf("simulation weights must be non-negative")
	}
	if c.Generator.Width <= 0 || c.Generator.Height <= 0 {
		return fmt.Errorf("generator size must be positive, got %dx%d", c.Generator.Width, c.Generator.Height)
	}
	if c.Window.TileWidth <= 0 || c.Window.TileHeight <= 0 {
		return fmt.Errorf("window tile size must be positive, got %dx%d", c.Window.TileWidth, c.Window.TileHeight)
	}
	if c.Window.Scale <= 0 {
		c.Window.Scale = 1
	}
	return nil
}

// Bind attaches the most common overrides to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.Int64Var(&c.Simulation.Seed, "seed", c.Simulation.Seed, "seed for the simulation (0 = random)")
	fs.DurationVar(&c.Simulation.TickInterval, "interval", c.Simulation.TickInterval, "time between ticks")
	fs.BoolVar(&c.Simulation.Classic, "classic", c.Simulation.Classic, "start from the fixed 20x20 starter map")
	fs.StringVar(&c.Simulation.Sweep, "sweep", c.Simulation.Sweep, "transition sweep: snapshot or inplace")
	fs.Float64Var(&c.Simulation.SpreadScale, "spread_scale", c.Simulation.SpreadScale, "combined spread/no-spread weight per empty neighbour")
	fs.Float64Var(&c.Simulation.StayWeight, "stay_weight", c.Simulation.StayWeight, "stay weight per candidate tile type")
	fs.Var(&c.Simulation.Overrides, "set", "simulation override key=value (repeatable; keys: "+strings.Join(nature.Keys, ", ")+")")
	fs.StringVar(&c.Catalog.Path, "catalog", c.Catalog.Path, "tile catalog YAML (empty = built-in)")
	fs.IntVar(&c.Generator.Width, "w", c.Generator.Width, "initial lattice width")
	fs.IntVar(&c.Generator.Height, "h", c.Generator.Height, "initial lattice height")
	fs.IntVar(&c.Window.Scale, "scale", c.Window.Scale, "pixel scale multiplier")
	fs.StringVar(&c.Telemetry.CSV, "csv", c.Telemetry.CSV, "write per-tick statistics to this CSV file")
}

// FromArgs loads the file named by -config (if any) and then applies the
// remaining command-line overrides on top of it. extra may register
// additional flags on the same FlagSet before parsing.
func FromArgs(name string, args []string, extra func(*flag.FlagSet)) (*Config, error) {
	path := ""
	pre := flag.NewFlagSet(name, flag.ContinueOnError)
	pre.SetOutput(io.Discard)
	pre.StringVar(&path, "config", "", "")
	_ = pre.Parse(configArgs(args))

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.String("config", path, "YAML configuration file")
	cfg.Bind(fs)
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configArgs extracts the -config flag and its value from args.
func configArgs(args []string) []string {
	for i, a := range args {
		switch {
		case a == "-config" || a == "--config":
			if i+1 < len(args) {
				return []string{a, args[i+1]}
			}
		case strings.HasPrefix(a, "-config=") || strings.HasPrefix(a, "--config="):
			return []string{a}
		}
	}
	return nil
}

// LoadCatalog loads the configured tile catalog.
func (c *Config) LoadCatalog() (*tiles.Catalog, error) {
	if c.Catalog.Path == "" {
		return tiles.Default(), nil
	}
	return tiles.Load(c.Catalog.Path)
}

// NatureConfig converts the settings into a simulation configuration. The
// file and flag values are handed to nature.FromMap with any -set overrides
// layered on top.
func (c *Config) NatureConfig() nature.Config {
	kv := map[string]string{
		"w":            strconv.Itoa(c.Generator.Width),
		"h":            strconv.Itoa(c.Generator.Height),
		"seed":         strconv.FormatInt(c.Simulation.Seed, 10),
		"spread_scale": strconv.FormatFloat(c.Simulation.SpreadScale, 'g', -1, 64),
		"stay_weight":  strconv.FormatFloat(c.Simulation.StayWeight, 'g', -1, 64),
		"sweep":        c.Simulation.Sweep,
		"classic":      strconv.FormatBool(c.Simulation.Classic),
	}
	maps.Copy(kv, c.Simulation.Overrides)

	cfg := nature.FromMap(kv)
	gen := c.Generator
	gen.Width, gen.Height = cfg.Generator.Width, cfg.Generator.Height
	cfg.Generator = gen
	return cfg
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
