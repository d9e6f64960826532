package mapgen

// Feature describes one terrain feature painted by random walks.
type Feature struct {
	Tile string `yaml:"tile"`
	// Over lists the tile names a walk may advance onto; empty means any.
	Over       []string `yaml:"over"`
	MinPercent float64  `yaml:"min_percent"`
	MaxPercent float64  `yaml:"max_percent"`
}

// Config controls the initial lattice.
type Config struct {
	Width    int       `yaml:"width"`
	Height   int       `yaml:"height"`
	Base     string    `yaml:"base"`
	MaxWalk  int       `yaml:"max_walk"`
	Features []Feature `yaml:"features"`
}

// DefaultConfig paints water first, then land features over grass.
func DefaultConfig() Config {
	return Config{
		Width:   20,
		Height:  20,
		Base:    "grass",
		MaxWalk: 12,
		Features: []Feature{
			{Tile: "water", MinPercent: 2, MaxPercent: 5},
			{Tile: "mountain", Over: []string{"grass"}, MinPercent: 1, MaxPercent: 3},
			{Tile: "forest", Over: []string{"grass"}, MinPercent: 3, MaxPercent: 6},
			{Tile: "sand", Over: []string{"grass"}, MinPercent: 1, MaxPercent: 3},
			{Tile: "house", Over: []string{"grass", "forest"}, MinPercent: 0.5, MaxPercent: 1.5},
		},
	}
}
