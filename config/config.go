package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"glprimer/core"
	"glprimer/scene"
)

// Shapes the scene section accepts.
const (
	ShapeTriangle = "triangle"
	ShapeCube     = "cube"
	ShapeBox      = "box"
	ShapeSphere   = "sphere"
	ShapeFile     = "file"
)

// Draw paths.
const (
	// PathBuffers uploads the mesh into the renderer's own buffers.
	PathBuffers = "buffers"
	// PathShape wraps the mesh in a Shape that binds and draws itself.
	PathShape = "shape"
)

type Config struct {
	Window    core.WindowConfig `yaml:"window"`
	Scene     SceneConfig       `yaml:"scene"`
	Animation scene.Animation   `yaml:"animation"`
	Shaders   ShaderConfig      `yaml:"shaders"`
}

type SceneConfig struct {
	Path           string     `yaml:"path"`
	Shape          string     `yaml:"shape"`
	BoxSize        [3]float32 `yaml:"box_size"`
	SphereRadius   float32    `yaml:"sphere_radius"`
	SphereSegments int        `yaml:"sphere_segments"`
	Model          string     `yaml:"model"` // .obj, .gltf or .glb, used by the file shape
	Wireframe      bool       `yaml:"wireframe"`
	Cull           bool       `yaml:"cull"`
	ClearColor     core.Color `yaml:"clear_color"`
}

// ShaderConfig names GLSL files on disk. Empty paths use the built-in shaders.
type ShaderConfig struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

func Default() Config {
	return Config{
		Window: core.DefaultWindowConfig(),
		Scene: SceneConfig{
			Path:           PathBuffers,
			Shape:          ShapeCube,
			BoxSize:        [3]float32{0.2, 0.2, 1.0},
			SphereRadius:   0.5,
			SphereSegments: 32,
			ClearColor:     core.ColorDarkGray,
		},
		Animation: scene.DefaultAnimation(),
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.Window.Width < 0 || c.Window.Height < 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d is negative", c.Window.Width, c.Window.Height))
	}

	switch c.Scene.Path {
	case PathBuffers, PathShape:
	default:
		errs = append(errs, fmt.Errorf("unknown draw path %q", c.Scene.Path))
	}

	switch c.Scene.Shape {
	case ShapeTriangle, ShapeCube, ShapeBox, ShapeSphere:
	case ShapeFile:
		if c.Scene.Model == "" {
			errs = append(errs, errors.New("shape \"file\" needs a model path"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown shape %q", c.Scene.Shape))
	}

	for _, s := range c.Scene.BoxSize {
		if s <= 0 {
			errs = append(errs, fmt.Errorf("box size %v must be positive", c.Scene.BoxSize))
			break
		}
	}
	if c.Scene.SphereRadius <= 0 {
		errs = append(errs, fmt.Errorf("sphere radius %v must be positive", c.Scene.SphereRadius))
	}

	if err := c.Animation.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Mesh builds the mesh named by the scene section. Model files are loaded
// by the caller-supplied loader so this package stays free of file formats.
func (s SceneConfig) Mesh(load func(path string) (*scene.Mesh, error)) (*scene.Mesh, error) {
	switch s.Shape {
	case ShapeTriangle:
		return scene.CreateTriangle(), nil
	case ShapeCube:
		return scene.CreateColorCube(), nil
	case ShapeBox:
		return scene.CreateBox(s.BoxSize[0], s.BoxSize[1], s.BoxSize[2]), nil
	case ShapeSphere:
		return scene.CreateSphere(s.SphereRadius, s.SphereSegments), nil
	case ShapeFile:
		if load == nil {
			return nil, errors.New("no model loader")
		}
		return load(s.Model)
	default:
		return nil, fmt.Errorf("unknown shape %q", s.Shape)
	}
}
