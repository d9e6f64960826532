package tiles

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

var (
	// ErrCatalogLoad reports an unreadable or malformed catalog.
	ErrCatalogLoad = errors.New("tile catalog load failed")
	// ErrInvalidWeight reports a negative or non-finite weight.
	ErrInvalidWeight = errors.New("invalid tile weight")
)

// UnmarshalYAML decodes a mapping node while keeping key order.
func (ws *Weights) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of tile names to weights", node.Line)
	}
	out := make(Weights, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var w Weight
		if err := node.Content[i].Decode(&w.Name); err != nil {
			return err
		}
		if err := node.Content[i+1].Decode(&w.Value); err != nil {
			return fmt.Errorf("weight %q: %w", w.Name, err)
		}
		out = append(out, w)
	}
	*ws = out
	return nil
}

type yamlTile struct {
	Image      string  `yaml:"image"`
	Color      string  `yaml:"color"`
	Spread     float64 `yaml:"spread"`
	Clone      Weights `yaml:"clone"`
	Transition Weights `yaml:"transition"`
}

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("tiles: embedded catalog: %v", err))
	}
	return c
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrCatalogLoad, path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a catalog. The mapping key of every entry is
// the tile name; entry order defines tile indices.
func Parse(data []byte) (*Catalog, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogLoad, err)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrCatalogLoad)
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: expected a mapping of tile names", ErrCatalogLoad, doc.Line)
	}

	n := len(doc.Content) / 2
	if n == 0 {
		return nil, fmt.Errorf("%w: no tile types declared", ErrCatalogLoad)
	}
	if n > MaxTypes {
		return nil, fmt.Errorf("%w: %d tile types exceed the limit of %d", ErrCatalogLoad, n, MaxTypes)
	}

	c := &Catalog{types: make([]*Type, 0, n), byName: make(map[string]*Type, n)}
	raw := make([]yamlTile, 0, n)
	for i := 0; i < len(doc.Content); i += 2 {
		name := doc.Content[i].Value
		if name == "" {
			return nil, fmt.Errorf("%w: line %d: empty tile name", ErrCatalogLoad, doc.Content[i].Line)
		}
		if _, dup := c.byName[name]; dup {
			return nil, fmt.Errorf("%w: duplicate tile %q", ErrCatalogLoad, name)
		}
		var yt yamlTile
		if err := doc.Content[i+1].Decode(&yt); err != nil {
			return nil, fmt.Errorf("%w: tile %q: %v", ErrCatalogLoad, name, err)
		}
		t := &Type{
			Name:   name,
			Index:  uint8(len(c.types) + 1),
			Image:  yt.Image,
			Spread: yt.Spread,
			Clone:  yt.Clone,
		}
		if yt.Color != "" {
			col, err := parseColor(yt.Color)
			if err != nil {
				return nil, fmt.Errorf("%w: tile %q: %v", ErrCatalogLoad, name, err)
			}
			t.Color, t.HasColor = col, true
		}
		c.types = append(c.types, t)
		c.byName[name] = t
		raw = append(raw, yt)
	}

	for i, t := range c.types {
		if err := checkWeight(t.Name, "spread", t.Spread); err != nil {
			return nil, err
		}
		for _, w := range t.Clone {
			if err := checkWeight(t.Name, "clone."+w.Name, w.Value); err != nil {
				return nil, err
			}
			if _, ok := c.byName[w.Name]; !ok {
				return nil, fmt.Errorf("%w: tile %q: clone references unknown tile %q", ErrCatalogLoad, t.Name, w.Name)
			}
		}
		for _, w := range raw[i].Transition {
			if err := checkWeight(t.Name, "transition."+w.Name, w.Value); err != nil {
				return nil, err
			}
			to, ok := c.byName[w.Name]
			if !ok {
				return nil, fmt.Errorf("%w: tile %q: transition references unknown tile %q", ErrCatalogLoad, t.Name, w.Name)
			}
			t.Transitions = append(t.Transitions, Transition{To: to, Weight: w.Value})
		}
	}
	return c, nil
}

func checkWeight(tile, field string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: tile %q field %s = %v", ErrInvalidWeight, tile, field, v)
	}
	return nil
}

func parseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("colour %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %v", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
