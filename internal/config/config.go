package config

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPath           = ".cyberchecklist.yaml"
	DefaultOutputDir      = "."
	DefaultHighlight      = 3.0
	DefaultExportBaseName = "cyberchecklist-results"
)

type Config struct {
	QuestionBank     string  `yaml:"question_bank"`
	OutputDir        string  `yaml:"output_dir"`
	HighlightSeconds float64 `yaml:"highlight_seconds"`
	ExportBaseName   string  `yaml:"export_basename"`
}

// Field is one key/value pair as shown by `config show`.
type Field struct {
	Key   string
	Value string
}

var configCache struct {
	mu      sync.RWMutex
	path    string
	exists  bool
	modTime int64
	cfg     Config
}

func Default() Config {
	return Config{
		OutputDir:        DefaultOutputDir,
		HighlightSeconds: DefaultHighlight,
		ExportBaseName:   DefaultExportBaseName,
	}
}

// Highlight is how long unanswered questions stay flagged.
func (c Config) Highlight() time.Duration {
	return time.Duration(c.HighlightSeconds * float64(time.Second))
}

func (c Config) Fields() []Field {
	return []Field{
		{"question_bank", c.QuestionBank},
		{"output_dir", c.OutputDir},
		{"highlight_seconds", strconv.FormatFloat(c.HighlightSeconds, 'f', -1, 64)},
		{"export_basename", c.ExportBaseName},
	}
}

// normalize puts defaults back for anything left empty or out of range.
func (c Config) normalize() Config {
	d := Default()
	c.QuestionBank = strings.TrimSpace(c.QuestionBank)
	if strings.TrimSpace(c.OutputDir) == "" {
		c.OutputDir = d.OutputDir
	}
	if c.HighlightSeconds <= 0 || math.IsNaN(c.HighlightSeconds) || math.IsInf(c.HighlightSeconds, 0) {
		c.HighlightSeconds = d.HighlightSeconds
	}
	if strings.TrimSpace(c.ExportBaseName) == "" {
		c.ExportBaseName = d.ExportBaseName
	}
	return c
}

// Load reads the optional YAML config at path (DefaultPath when empty).
// A missing file yields the defaults. Results are cached by path and
// modification time.
//
//	question_bank: ./my-bank.yaml
//	output_dir: ./exports
//	highlight_seconds: 3
//	export_basename: cyberchecklist-results
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	st, statErr := os.Stat(path)
	if statErr != nil {
		cfg := Default()
		configCache.mu.Lock()
		configCache.path = path
		configCache.exists = false
		configCache.modTime = 0
		configCache.cfg = cfg
		configCache.mu.Unlock()
		return cfg, nil
	}

	modTime := st.ModTime().UnixNano()
	configCache.mu.RLock()
	if configCache.path == path && configCache.exists && configCache.modTime == modTime {
		cached := configCache.cfg
		configCache.mu.RUnlock()
		return cached, nil
	}
	configCache.mu.RUnlock()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Default(), fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
	}
	cfg = cfg.normalize()

	configCache.mu.Lock()
	configCache.path = path
	configCache.exists = true
	configCache.modTime = modTime
	configCache.cfg = cfg
	configCache.mu.Unlock()

	return cfg, nil
}

// Save writes cfg to path as YAML and drops the cached copy.
func Save(path string, cfg Config) error {
	if path == "" {
		path = DefaultPath
	}
	var buf bytes.Buffer
	buf.WriteString("# cyberchecklist configuration\n\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg.normalize()); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	configCache.mu.Lock()
	configCache.path = ""
	configCache.mu.Unlock()
	return nil
}

// SetKey updates a single key in the config file at path.
func SetKey(path, key, value string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	switch key {
	case "question_bank":
		cfg.QuestionBank = value
	case "output_dir":
		if value == "" {
			return fmt.Errorf("output_dir must not be empty")
		}
		cfg.OutputDir = value
	case "highlight_seconds":
		n, err := strconv.ParseFloat(value, 64)
		if err != nil || n <= 0 || math.IsInf(n, 0) {
			return fmt.Errorf("highlight_seconds must be a number > 0")
		}
		cfg.HighlightSeconds = n
	case "export_basename":
		if value == "" || strings.ContainsAny(value, `/\`) {
			return fmt.Errorf("export_basename must be a plain file name")
		}
		cfg.ExportBaseName = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return Save(path, cfg)
}
