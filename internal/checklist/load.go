package checklist

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_bank.yaml
var defaultBankYAML []byte

// Default returns the built-in household checklist.
func Default() *Bank {
	b, err := ParseYAML(defaultBankYAML)
	if err != nil {
		panic(fmt.Sprintf("checklist: built-in bank is invalid: %v", err))
	}
	return b
}

// ParseYAML decodes a bank document.
func ParseYAML(data []byte) (*Bank, error) {
	var b Bank
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	if err := b.init(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Load reads a bank from path. Files ending in .html or .htm are parsed as
// a checklist form; anything else is treated as YAML. An empty path returns
// the built-in bank.
func Load(path string) (*Bank, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return ParseHTML(bytes.NewReader(data))
	default:
		return ParseYAML(data)
	}
}

// EncodeYAML renders b as a bank document that ParseYAML accepts.
func (b *Bank) EncodeYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(struct {
		Name  string `yaml:"name"`
		Pages []Page `yaml:"pages"`
	}{b.Name, b.Pages}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
