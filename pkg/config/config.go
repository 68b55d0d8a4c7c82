// Package config loads assembler settings from YAML.
package config

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/psilLang/clara/pkg/asm"
	"github.com/psilLang/clara/pkg/bytecode"
)

// DefaultOutputExt is appended to the input name when no output is given.
const DefaultOutputExt = ".clo"

// Config is the file format. Fields left out keep their defaults.
type Config struct {
	Header    HeaderConfig `yaml:"header"`
	Log       LogConfig    `yaml:"log"`
	OutputExt string       `yaml:"output_ext"`
}

// HeaderConfig holds the layout fields written to the binary header.
type HeaderConfig struct {
	InstructionSize   uint8  `yaml:"instruction_size"`
	IntegerSize       uint8  `yaml:"integer_size"`
	Globals           uint32 `yaml:"globals"`
	GlobalsOffset     uint32 `yaml:"globals_offset"`
	StackSize         uint32 `yaml:"stack_size"`
	StringSegmentSize uint32 `yaml:"string_segment_size"`
}

// LogConfig selects the log level and handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Default returns the built-in settings.
func Default() Config {
	h := bytecode.NewHeader()
	return Config{
		Header: HeaderConfig{
			InstructionSize: h.InstructionSize,
			IntegerSize:     h.IntegerSize,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		OutputExt: DefaultOutputExt,
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return c, nil
}

// Parse decodes YAML on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "decode")
	}
	return c, c.Validate()
}

// Validate checks the value ranges.
func (c Config) Validate() error {
	switch c.Header.InstructionSize {
	case 1, 2, 4:
	default:
		return errors.Errorf("instruction_size must be 1, 2 or 4, got %d", c.Header.InstructionSize)
	}
	switch c.Header.IntegerSize {
	case 1, 2, 4:
	default:
		return errors.Errorf("integer_size must be 1, 2 or 4, got %d", c.Header.IntegerSize)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.Errorf("unknown log format %q", c.Log.Format)
	}
	if !strings.HasPrefix(c.OutputExt, ".") || len(c.OutputExt) < 2 {
		return errors.Errorf("output_ext %q must start with '.'", c.OutputExt)
	}
	return nil
}

// ApplyHeader copies the layout fields into h.
func (c Config) ApplyHeader(h *bytecode.Header) {
	h.InstructionSize = c.Header.InstructionSize
	h.IntegerSize = c.Header.IntegerSize
	h.NumGlobals = c.Header.Globals
	h.GlobalsOffset = c.Header.GlobalsOffset
	h.StackSize = c.Header.StackSize
	h.StringSegmentSize = c.Header.StringSegmentSize
}

// BinaryHeader returns a fresh header with the configured layout.
func (c Config) BinaryHeader() bytecode.Header {
	h := bytecode.NewHeader()
	c.ApplyHeader(&h)
	return h
}

// ParseLevel accepts the slog level names plus "trace".
func ParseLevel(s string) (slog.Level, error) {
	if strings.EqualFold(s, "trace") {
		return asm.LevelTrace, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, errors.Errorf("unknown log level %q", s)
	}
	return l, nil
}

// NewLogger builds the configured slog handler on w.
func (c Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// OutputPath replaces the extension of in with ext. An input without an
// extension has no derived name.
func OutputPath(in, ext string) (string, error) {
	old := filepath.Ext(in)
	if old == "" {
		return "", errors.Errorf("cannot derive output name from %q: no extension", in)
	}
	return strings.TrimSuffix(in, old) + ext, nil
}
