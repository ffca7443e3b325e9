package hellomesh

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/gekko3d/hellomesh/rt/core"
	"github.com/gekko3d/hellomesh/rt/gpu"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrUnknownColor  = errors.New("unknown color name")
)

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Config is the application configuration, read from YAML.
type Config struct {
	Window     WindowConfig `yaml:"window"`
	ClearColor string       `yaml:"clear_color"`
	Shape      string       `yaml:"shape"`
	Wireframe  bool         `yaml:"wireframe"`
	Scale      float32      `yaml:"scale"`
	ScaleMin   float32      `yaml:"scale_min"`
	ScaleMax   float32      `yaml:"scale_max"`
	ScaleStep  float32      `yaml:"scale_step"`
	Debug      bool         `yaml:"debug"`
	Watch      bool         `yaml:"watch"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Hello Mesh",
		},
		ClearColor: "black",
		Shape:      core.ShapeTriangle.String(),
		Scale:      1,
		ScaleMin:   0.1,
		ScaleMax:   2,
		ScaleStep:  0.1,
	}
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults; a malformed or invalid one is an error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if _, ok := core.ParseShape(c.Shape); !ok {
		return fmt.Errorf("%w: shape %q", ErrInvalidConfig, c.Shape)
	}
	if c.ScaleMin <= 0 || c.ScaleMax < c.ScaleMin {
		return fmt.Errorf("%w: scale range [%g, %g]", ErrInvalidConfig, c.ScaleMin, c.ScaleMax)
	}
	if c.ScaleStep <= 0 {
		return fmt.Errorf("%w: scale step %g", ErrInvalidConfig, c.ScaleStep)
	}
	if c.Scale < c.ScaleMin || c.Scale > c.ScaleMax {
		return fmt.Errorf("%w: scale %g outside [%g, %g]", ErrInvalidConfig, c.Scale, c.ScaleMin, c.ScaleMax)
	}
	if _, err := c.ClearColorValue(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// InitialShape is the configured shape, triangle when unset or unknown.
func (c Config) InitialShape() core.Shape {
	shape, ok := core.ParseShape(c.Shape)
	if !ok {
		return core.ShapeTriangle
	}
	return shape
}

// ClearColorValue resolves the clear colour by SVG colour name.
func (c Config) ClearColorValue() (gpu.Color, error) {
	rgba, ok := colornames.Map[strings.ToLower(strings.TrimSpace(c.ClearColor))]
	if !ok {
		return gpu.Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, c.ClearColor)
	}
	return gpu.Color{
		R: float64(rgba.R) / 255,
		G: float64(rgba.G) / 255,
		B: float64(rgba.B) / 255,
		A: float64(rgba.A) / 255,
	}, nil
}
