package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/san-kum/folio/internal/interact"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTheme      = "holo"
	DefaultFrameRate  = 60
	DefaultDataDir    = ".folio"
	DefaultCellWidth  = 10
	DefaultCellHeight = 20
	DefaultParticles  = 40
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Theme       string            `yaml:"theme"`
	FrameRate   int               `yaml:"fps"`
	ContentPath string            `yaml:"content"`
	DataDir     string            `yaml:"data_dir"`
	LogFile     string            `yaml:"log_file"`
	Debug       bool              `yaml:"debug"`
	Cell        CellConfig        `yaml:"cell"`
	Card        CardConfig        `yaml:"card"`
	Interaction InteractionConfig `yaml:"interaction"`
	Backdrop    BackdropConfig    `yaml:"backdrop"`
}

// CellConfig is the size of one terminal cell in pointer units.
type CellConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type CardConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type InteractionConfig struct {
	Tilt      float64 `yaml:"tilt"`
	Decay     float64 `yaml:"decay"`
	TickMs    int     `yaml:"tick_ms"`
	MaxTrail  int     `yaml:"max_trail"`
	FadeStep  float64 `yaml:"fade_step"`
	DecayMode string  `yaml:"decay_mode"`
}

type BackdropConfig struct {
	Particles int   `yaml:"particles"`
	Seed      int64 `yaml:"seed"`
}

func DefaultConfig() *Config {
	p := interact.DefaultParams()
	return &Config{
		Theme:     DefaultTheme,
		FrameRate: DefaultFrameRate,
		DataDir:   DefaultDataDir,
		Cell: CellConfig{
			Width:  DefaultCellWidth,
			Height: DefaultCellHeight,
		},
		Card: CardConfig{
			X:      p.Start.X,
			Y:      p.Start.Y,
			Width:  p.CardSize.X,
			Height: p.CardSize.Y,
		},
		Interaction: InteractionConfig{
			Tilt:      p.TiltFactor,
			Decay:     p.DecayFactor,
			TickMs:    int(p.TickInterval / time.Millisecond),
			MaxTrail:  p.MaxTrail,
			FadeStep:  p.FadeStep,
			DecayMode: p.Decay.String(),
		},
		Backdrop: BackdropConfig{
			Particles: DefaultParticles,
			Seed:      1,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.FrameRate <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.FrameRate)
	case c.Cell.Width <= 0 || c.Cell.Height <= 0:
		return fmt.Errorf("%w: cell %gx%g", ErrInvalid, c.Cell.Width, c.Cell.Height)
	case c.Card.Width <= 0 || c.Card.Height <= 0:
		return fmt.Errorf("%w: card %gx%g", ErrInvalid, c.Card.Width, c.Card.Height)
	case c.Interaction.TickMs <= 0:
		return fmt.Errorf("%w: tick_ms %d", ErrInvalid, c.Interaction.TickMs)
	case c.Interaction.MaxTrail < 0:
		return fmt.Errorf("%w: max_trail %d", ErrInvalid, c.Interaction.MaxTrail)
	case c.Interaction.FadeStep <= 0 || c.Interaction.FadeStep > 1:
		return fmt.Errorf("%w: fade_step %g", ErrInvalid, c.Interaction.FadeStep)
	case c.Backdrop.Particles < 0:
		return fmt.Errorf("%w: particles %d", ErrInvalid, c.Backdrop.Particles)
	}
	if _, err := interact.ParseDecayMode(c.Interaction.DecayMode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Params converts the interaction settings into controller parameters.
func (c *Config) Params() (interact.Params, error) {
	if err := c.Validate(); err != nil {
		return interact.Params{}, err
	}
	mode, _ := interact.ParseDecayMode(c.Interaction.DecayMode)
	tick := time.Duration(c.Interaction.TickMs) * time.Millisecond
	return interact.Params{
		Start:        interact.Vec2{X: c.Card.X, Y: c.Card.Y},
		CardSize:     interact.Vec2{X: c.Card.Width, Y: c.Card.Height},
		TiltFactor:   c.Interaction.Tilt,
		DecayFactor:  c.Interaction.Decay,
		DecayDelay:   tick,
		TickInterval: tick,
		MaxTrail:     c.Interaction.MaxTrail,
		FadeStep:     c.Interaction.FadeStep,
		Decay:        mode,
	}, nil
}
