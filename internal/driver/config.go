package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/catscript/internal/eval"
	"github.com/you-not-fish/catscript/internal/rtabi"
)

// ConfigFile is the configuration file looked up in the working directory.
const ConfigFile = "catscript.yaml"

// Backend names a way of running a program.
type Backend string

const (
	BackendEval       Backend = "eval"       // tree-walking evaluator
	BackendBytecode   Backend = "bytecode"   // compile to bytecode and run on the VM
	BackendJavaScript Backend = "javascript" // print the JavaScript translation
)

// Config is the contents of catscript.yaml.
type Config struct {
	Path string `yaml:"-"` // file the config was loaded from, if any

	Language  string  `yaml:"language"`   // semver constraint on LanguageVersion
	Backend   Backend `yaml:"backend"`    // default backend
	ClassName string  `yaml:"class_name"` // bytecode class name
	MaxSteps  int64   `yaml:"max_steps"`  // step budget for eval and vm; 0 is unlimited
	MaxDepth  int     `yaml:"max_depth"`  // call depth limit for eval and vm; 0 is the backend default
	LogLevel  string  `yaml:"log_level"`  // debug, info, warn or error
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Language:  ">=1.0.0 <2.0.0",
		Backend:   BackendEval,
		ClassName: rtabi.DefaultClassName,
		MaxSteps:  10_000_000,
		MaxDepth:  eval.DefaultMaxDepth,
		LogLevel:  "info",
	}
}

// LoadConfig reads a configuration file. Fields missing from the file keep
// their default values; unknown fields are an error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	conf := DefaultConfig()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	conf.Path = abs
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", abs, err)
	}
	return conf, nil
}

// FindConfig loads ConfigFile from dir if it exists, and returns the default
// configuration otherwise.
func FindConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

// Validate checks field values and the language constraint.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendEval, BackendBytecode, BackendJavaScript:
	default:
		return fmt.Errorf("unknown backend %q (want eval, bytecode or javascript)", c.Backend)
	}
	if strings.TrimSpace(c.ClassName) == "" {
		return errors.New("class_name must not be empty")
	}
	if strings.ContainsAny(c.ClassName, ". ;[") {
		return fmt.Errorf("class_name %q is not a valid internal class name", c.ClassName)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative, got %d", c.MaxSteps)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return CheckLanguage(c.Language)
}
