// Package config loads photobook settings from .photobook.yaml, a .env file
// and PHOTOBOOK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"tableflip.dev/photobook/pkg/category"
)

// Name is the config file name searched for, without its extension.
const Name = ".photobook"

// Placeholder marks a value copied from the template but never filled in.
const Placeholder = "YOUR_"

// DisabledMessage is shown instead of the gallery when the config is not
// ready.
const DisabledMessage = "Add your photobook config in .photobook.yaml to enable uploads and the live gallery."

// ErrNotReady is returned by Ready when required fields are missing or still
// hold placeholders.
var ErrNotReady = errors.New("config: not ready")

// Gallery tunes the live gallery.
type Gallery struct {
	PageSize   int    `mapstructure:"page_size" yaml:"page_size"`
	Unresolved string `mapstructure:"unresolved" yaml:"unresolved"`
}

// Upload tunes the upload coordinator.
type Upload struct {
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// Config is the loaded configuration.
type Config struct {
	Project string  `mapstructure:"project" yaml:"project"`
	Docs    string  `mapstructure:"docs_path" yaml:"docs_path"`
	Blobs   string  `mapstructure:"blobs_path" yaml:"blobs_path"`
	Gallery Gallery `mapstructure:"gallery" yaml:"gallery"`
	Upload  Upload  `mapstructure:"upload" yaml:"upload"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-" yaml:"-"`
}

// DocsPath is the expanded document store directory.
func (c *Config) DocsPath() string {
	return expand(c.Docs)
}

// BlobsPath is the expanded blob store directory.
func (c *Config) BlobsPath() string {
	return expand(c.Blobs)
}

// Policy parses gallery.unresolved.
func (c *Config) Policy() (category.Policy, error) {
	return category.ParsePolicy(c.Gallery.Unresolved)
}

// Field is one required named value.
type Field struct {
	Name  string
	Value string
}

// Fields lists the required values in a stable order.
func (c *Config) Fields() []Field {
	return []Field{
		{Name: "project", Value: c.Project},
		{Name: "docs_path", Value: c.Docs},
		{Name: "blobs_path", Value: c.Blobs},
	}
}

// Ready reports whether every required field is set to a real value. The
// returned error wraps ErrNotReady and names the offending fields.
func (c *Config) Ready() error {
	var bad []string
	for _, f := range c.Fields() {
		v := strings.TrimSpace(f.Value)
		if v == "" || strings.Contains(v, Placeholder) {
			bad = append(bad, f.Name)
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: missing %s", ErrNotReady, strings.Join(bad, ", "))
	}
	return nil
}

// Options controls where Load looks.
type Options struct {
	// Paths are searched for the config file before the working directory
	// and the home directory.
	Paths []string
	// EnvFile is loaded into the environment before reading; a missing file
	// is ignored. Defaults to ".env".
	EnvFile string
}

// Load reads the configuration. A missing config file is not an error; the
// result then only carries defaults and environment values.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetDefault("project", "")
	v.SetDefault("docs_path", "~/.photobook/docs")
	v.SetDefault("blobs_path", "~/.photobook/blobs")
	v.SetDefault("gallery.page_size", 4)
	v.SetDefault("gallery.unresolved", string(category.DropUnresolved))
	v.SetDefault("upload.concurrency", 0)

	v.SetConfigName(Name) // .yaml is implicit
	v.SetEnvPrefix("PHOTOBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, p := range opts.Paths {
		v.AddConfigPath(expand(p))
	}
	if override := os.Getenv("PHOTOBOOK_CONFIG_PATH"); override != "" {
		v.AddConfigPath(expand(override))
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	return cfg, nil
}

// Template is the starter config written by `photobook init`.
func Template() ([]byte, error) {
	t := Config{
		Project: Placeholder + "PROJECT",
		Docs:    Placeholder + "DOCS_PATH",
		Blobs:   Placeholder + "BLOBS_PATH",
		Gallery: Gallery{PageSize: 4, Unresolved: string(category.DropUnresolved)},
	}
	return yaml.Marshal(t)
}

func expand(p string) string {
	if p == "" {
		return ""
	}
	out, err := homedir.Expand(p)
	if err != nil {
		return p
	}
	return out
}
