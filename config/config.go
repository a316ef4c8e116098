// Package config loads the scene description and app settings from TOML (default) or YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nshade/scene"
	"github.com/bloeys/nshade/xform"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
)

type Format int

const (
	Format_TOML Format = iota
	Format_YAML
)

// FormatFromPath picks YAML for .yaml/.yml files and TOML for everything else
func FormatFromPath(path string) Format {

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return Format_YAML
	default:
		return Format_TOML
	}
}

type Window struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int32  `toml:"width" yaml:"width"`
	Height int32  `toml:"height" yaml:"height"`
	VSync  bool   `toml:"vsync" yaml:"vsync"`
}

type Camera struct {
	Pos     [3]float32 `toml:"pos" yaml:"pos"`
	Forward [3]float32 `toml:"forward" yaml:"forward"`

	// FovDeg is the vertical field of view in degrees
	FovDeg float32 `toml:"fov" yaml:"fov"`
	Near   float32 `toml:"near" yaml:"near"`
	Far    float32 `toml:"far" yaml:"far"`
}

type Light struct {
	Dir      [3]float32 `toml:"dir" yaml:"dir"`
	Ambient  [3]float32 `toml:"ambient" yaml:"ambient"`
	Diffuse  [3]float32 `toml:"diffuse" yaml:"diffuse"`
	Specular [3]float32 `toml:"specular" yaml:"specular"`
}

type Shadow struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`

	// MaxSize caps the shadow map size. 0 means the largest texture the device supports
	MaxSize int32 `toml:"max_size" yaml:"max_size"`
}

type Filter struct {
	Grayscale     bool `toml:"grayscale" yaml:"grayscale"`
	EdgeDetection bool `toml:"edge_detection" yaml:"edge_detection"`
}

type Shaders struct {
	// Dir is empty unless set, so the app default stays relative to the working directory
	Dir string `toml:"dir" yaml:"dir"`
}

// Skybox lists the six cube map faces in the order right, left, top, bottom, front, back.
// An empty list means no skybox
type Skybox struct {
	Faces []string `toml:"faces" yaml:"faces"`
}

func (s *Skybox) Enabled() bool {
	return len(s.Faces) > 0
}

const (
	Shape_Cube = "cube"
)

// Model is either loaded from Path or generated from Shape
type Model struct {
	Name     string     `toml:"name" yaml:"name"`
	Path     string     `toml:"path" yaml:"path"`
	Shape    string     `toml:"shape" yaml:"shape"`
	Textures []string   `toml:"textures" yaml:"textures"`
	Scale    [3]float32 `toml:"scale" yaml:"scale"`
}

func (m *Model) LocalTransform() gglm.Mat4 {
	return xform.Scaling(m.Scale[0], m.Scale[1], m.Scale[2])
}

type Object struct {
	Model   int `toml:"model" yaml:"model"`
	Texture int `toml:"texture" yaml:"texture"`

	Pos [3]float32 `toml:"pos" yaml:"pos"`

	// RotYDeg rotates the object around the world Y axis, in degrees
	RotYDeg float32    `toml:"rot_y" yaml:"rot_y"`
	Scale   [3]float32 `toml:"scale" yaml:"scale"`
}

// Transform is translate * rotateY * scale
func (o *Object) Transform() gglm.Mat4 {
	return xform.Mul(
		xform.Translation(o.Pos[0], o.Pos[1], o.Pos[2]),
		xform.RotationY(o.RotYDeg*gglm.Deg2Rad),
		xform.Scaling(o.Scale[0], o.Scale[1], o.Scale[2]),
	)
}

type Config struct {
	Window  Window   `toml:"window" yaml:"window"`
	Camera  Camera   `toml:"camera" yaml:"camera"`
	Light   Light    `toml:"light" yaml:"light"`
	Shadow  Shadow   `toml:"shadow" yaml:"shadow"`
	Filter  Filter   `toml:"filter" yaml:"filter"`
	Shaders Shaders  `toml:"shaders" yaml:"shaders"`
	Skybox  Skybox   `toml:"skybox" yaml:"skybox"`
	Models  []Model  `toml:"models" yaml:"models"`
	Objects []Object `toml:"objects" yaml:"objects"`
}

// Default is what a config file overrides. It describes an empty scene with a window, camera and light
func Default() Config {
	return Config{
		Window: Window{
			Title:  "nshade",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Camera: Camera{
			Pos:     [3]float32{0, 2, 5},
			Forward: [3]float32{0, 0, -1},
			FovDeg:  45,
			Near:    0.1,
			Far:     100,
		},
		// The shadow camera sits at -10*Dir with a far plane of 7.5, so the length of Dir
		// decides how much of the scene around the origin casts shadows
		Light: Light{
			Dir:      [3]float32{-0.2, -0.5, -0.2},
			Ambient:  [3]float32{0.2, 0.2, 0.2},
			Diffuse:  [3]float32{0.5, 0.5, 0.5},
			Specular: [3]float32{1, 1, 1},
		},
		Shadow: Shadow{
			Enabled: true,
			MaxSize: 4096,
		},
	}
}

// Load reads path, decoding by its extension. Relative paths inside the file are
// resolved against the directory of path, and ~ is expanded
func Load(path string) (Config, error) {

	path, err := homedir.Expand(path)
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config '%s': %w", path, err)
	}

	cfg, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return Config{}, fmt.Errorf("config '%s': %w", path, err)
	}

	if err := cfg.resolvePaths(filepath.Dir(path)); err != nil {
		return Config{}, fmt.Errorf("config '%s': %w", path, err)
	}

	return cfg, nil
}

// Parse decodes data over Default(), fills per-entry defaults and validates the result.
// Unknown keys are rejected
func Parse(data []byte, format Format) (Config, error) {

	cfg := Default()

	var err error
	switch format {
	case Format_YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
		// An empty yaml document is a valid (default) config
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&cfg)
	}

	if err != nil {
		return Config{}, err
	}

	cfg.applyEntryDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEntryDefaults() {

	for i := 0; i < len(c.Models); i++ {
		if c.Models[i].Scale == [3]float32{} {
			c.Models[i].Scale = [3]float32{1, 1, 1}
		}
	}

	for i := 0; i < len(c.Objects); i++ {
		if c.Objects[i].Scale == [3]float32{} {
			c.Objects[i].Scale = [3]float32{1, 1, 1}
		}
	}
}

// Validate checks everything that can be checked without a GPU. Object model and texture
// indices are checked when the scene is created
func (c *Config) Validate() error {

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}

	if c.Camera.FovDeg <= 0 || c.Camera.FovDeg >= 180 {
		return fmt.Errorf("%w: camera fov must be in (0, 180), got %f", ErrInvalidConfig, c.Camera.FovDeg)
	}

	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: camera needs 0 < near < far, got near=%f far=%f", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	}

	if c.Camera.Forward == [3]float32{} {
		return fmt.Errorf("%w: camera forward can't be zero", ErrInvalidConfig)
	}

	if c.Light.Dir == [3]float32{} {
		return fmt.Errorf("%w: light direction can't be zero", ErrInvalidConfig)
	}

	if c.Shadow.MaxSize < 0 {
		return fmt.Errorf("%w: shadow max_size can't be negative, got %d", ErrInvalidConfig, c.Shadow.MaxSize)
	}

	if c.Skybox.Enabled() && len(c.Skybox.Faces) != 6 {
		return fmt.Errorf("%w: skybox needs 6 faces, got %d", ErrInvalidConfig, len(c.Skybox.Faces))
	}

	for i := 0; i < len(c.Models); i++ {

		m := &c.Models[i]
		if (m.Path == "") == (m.Shape == "") {
			return fmt.Errorf("%w: model %d ('%s') needs exactly one of path or shape", ErrInvalidConfig, i, m.Name)
		}

		if m.Shape != "" && m.Shape != Shape_Cube {
			return fmt.Errorf("%w: model %d ('%s') has unknown shape '%s'", ErrInvalidConfig, i, m.Name, m.Shape)
		}
	}

	return nil
}

func (c *Config) resolvePaths(baseDir string) error {

	resolve := func(p *string) error {

		if *p == "" {
			return nil
		}

		expanded, err := homedir.Expand(*p)
		if err != nil {
			return err
		}

		if !filepath.IsAbs(expanded) {
			expanded = filepath.Join(baseDir, expanded)
		}

		*p = expanded
		return nil
	}

	if err := resolve(&c.Shaders.Dir); err != nil {
		return err
	}

	for i := 0; i < len(c.Skybox.Faces); i++ {
		if err := resolve(&c.Skybox.Faces[i]); err != nil {
			return err
		}
	}

	for i := 0; i < len(c.Models); i++ {

		m := &c.Models[i]
		if err := resolve(&m.Path); err != nil {
			return err
		}

		for j := 0; j < len(m.Textures); j++ {
			if err := resolve(&m.Textures[j]); err != nil {
				return err
			}
		}
	}

	return nil
}

func Vec3(v [3]float32) gglm.Vec3 {
	return gglm.NewVec3(v[0], v[1], v[2])
}

func (l *Light) DirLight() scene.DirLight {
	return scene.DirLight{
		Dir:      Vec3(l.Dir),
		Ambient:  Vec3(l.Ambient),
		Diffuse:  Vec3(l.Diffuse),
		Specular: Vec3(l.Specular),
	}
}

func (c *Config) Flags() scene.Flags {
	return scene.Flags{
		Shadow:        c.Shadow.Enabled,
		Grayscale:     c.Filter.Grayscale,
		EdgeDetection: c.Filter.EdgeDetection,
	}
}

// SceneObjects converts the configured objects. Indices are kept as is for scene.New to check
func (c *Config) SceneObjects() []scene.Object {

	out := make([]scene.Object, len(c.Objects))
	for i := 0; i < len(c.Objects); i++ {

		o := &c.Objects[i]
		out[i] = scene.Object{
			ModelIndex:   o.Model,
			TextureIndex: o.Texture,
			Transform:    o.Transform(),
		}
	}

	return out
}
