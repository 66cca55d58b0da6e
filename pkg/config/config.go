package config

import (
	"bytes"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/vgraph/pkg/errors"
	"github.com/matzehuels/vgraph/pkg/graph"
)

const (
	appName  = "vgraph"
	fileName = "flavors.toml"
)

// Config is a parsed flavor file.
type Config struct {
	Flavors map[string]Flavor `toml:"flavors"`
}

// Flavor declares the types of one flavor.
type Flavor struct {
	StrictTypes bool                `toml:"strict_types"`
	Option      *graph.Option       `toml:"option"`
	Nodes       map[string]NodeSpec `toml:"nodes"`
	Lines       map[string]LineSpec `toml:"lines"`
}

// NodeSpec declares a node type. Exactly one of Template and Alias is set.
type NodeSpec struct {
	Template string `toml:"template"`
	Style    string `toml:"style"`
	Alias    string `toml:"alias"`
}

// LineSpec declares a line type as an alias of an existing one.
type LineSpec struct {
	Alias string `toml:"alias"`
	Style string `toml:"style"`
}

// DefaultPath returns the flavor file location, honoring XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "locate home directory")
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads and validates the flavor file at path.
func Load(path string) (*Config, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// LoadDefault reads the file at DefaultPath. A missing file yields an empty config.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg, err := Load(path)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return &Config{}, nil
	}
	return cfg, err
}

// Parse decodes and validates a flavor file. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks names, options and the shape of every type declaration.
// Alias targets are checked by Apply, since they may live in the registry.
func (c *Config) Validate() error {
	for _, name := range slices.Sorted(maps.Keys(c.Flavors)) {
		f := c.Flavors[name]
		if err := errors.ValidateName("flavor", name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "flavor %q", name)
		}
		if f.Option != nil {
			opt := *f.Option
			if opt.Type == "" {
				opt.Type = graph.RenderPure
			}
			if err := opt.Validate(); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "flavor %s option", name)
			}
		}
		for _, typ := range slices.Sorted(maps.Keys(f.Nodes)) {
			n := f.Nodes[typ]
			if err := errors.ValidateName("node type", typ); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "flavor %s", name)
			}
			if (n.Template == "") == (n.Alias == "") {
				return errors.New(errors.ErrCodeInvalidConfig, "flavor %s node %s: set exactly one of template or alias", name, typ)
			}
			if n.Alias != "" && n.Style != "" {
				return errors.New(errors.ErrCodeInvalidConfig, "flavor %s node %s: an alias cannot carry a style", name, typ)
			}
		}
		for _, typ := range slices.Sorted(maps.Keys(f.Lines)) {
			if err := errors.ValidateName("line type", typ); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "flavor %s", name)
			}
			if f.Lines[typ].Alias == "" {
				return errors.New(errors.ErrCodeInvalidConfig, "flavor %s line %s: alias is required", name, typ)
			}
		}
	}
	return nil
}
