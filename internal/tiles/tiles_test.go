package tiles

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	names := []string{"grass", "water", "mountain", "forest", "sand", "house"}
	if c.Len() != len(names) {
		t.Fatalf("default catalog has %d types, expected %d", c.Len(), len(names))
	}
	for i, name := range names {
		typ, ok := c.Lookup(name)
		if !ok {
			t.Fatalf("default catalog missing %q", name)
		}
		if int(typ.Index) != i+1 {
			t.Fatalf("%s index = %d, expected %d", name, typ.Index, i+1)
		}
		if c.ByIndex(typ.Index) != typ {
			t.Fatalf("ByIndex(%d) does not return %s", typ.Index, name)
		}
	}

	grass := c.MustLookup("grass")
	if grass.Spread != 4 {
		t.Fatalf("grass spread = %v, expected 4", grass.Spread)
	}
	if w, ok := grass.CloneWeight("water"); !ok || w != 5 {
		t.Fatalf("grass clone weight over water = %v (ok=%v), expected 5", w, ok)
	}
	if _, ok := grass.CloneWeight("house"); ok {
		t.Fatal("grass must not declare a clone weight over house")
	}

	house := c.MustLookup("house")
	if len(house.Transitions) != 1 || house.Transitions[0].To != c.MustLookup("forest") {
		t.Fatalf("house transitions not resolved to catalog entries: %+v", house.Transitions)
	}
}

func TestParseKeepsWeightOrder(t *testing.T) {
	c, err := Parse([]byte(`
a:
  spread: 1
  clone: {c: 3, b: 2, a: 1}
b:
  spread: 0
c:
  spread: 0
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	clone := c.MustLookup("a").Clone
	order := []string{"c", "b", "a"}
	for i, w := range clone {
		if w.Name != order[i] {
			t.Fatalf("clone[%d] = %q, expected %q", i, w.Name, order[i])
		}
	}
}

func TestParseRejectsInvalidWeights(t *testing.T) {
	cases := map[string]string{
		"negative spread":     "a: {spread: -1}",
		"nan clone":           "a: {spread: 1, clone: {a: .nan}}",
		"infinite transition": "a: {spread: 1, transition: {a: .inf}}",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); !errors.Is(err, ErrInvalidWeight) {
			t.Fatalf("%s: expected ErrInvalidWeight, got %v", name, err)
		}
	}
}

func TestParseRejectsMalformedCatalogs(t *testing.T) {
	cases := map[string]string{
		"empty":              "",
		"not a mapping":      "- a\n- b\n",
		"no tiles":           "{}",
		"unknown clone":      "a: {spread: 1, clone: {ghost: 3}}",
		"unknown transition": "a: {spread: 1, transition: {ghost: 3}}",
		"bad colour":         "a: {spread: 1, color: green}",
		"bad yaml":           "a: [",
		"weights not a map":  "a: {clone: [1, 2]}",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); !errors.Is(err, ErrCatalogLoad) {
			t.Fatalf("%s: expected ErrCatalogLoad, got %v", name, err)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiles.yaml")
	if err := os.WriteFile(path, []byte("moss: {spread: 7, color: \"#112233\"}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	moss := c.MustLookup("moss")
	if !moss.HasColor || moss.Color.R != 0x11 || moss.Color.G != 0x22 || moss.Color.B != 0x33 {
		t.Fatalf("unexpected colour %+v", moss.Color)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, ErrCatalogLoad) {
		t.Fatalf("missing file: expected ErrCatalogLoad, got %v", err)
	}
}
