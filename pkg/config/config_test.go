package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/psilLang/clara/pkg/asm"
	"github.com/psilLang/clara/pkg/bytecode"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	require.Equal(t, bytecode.NewHeader(), c.BinaryHeader())
	require.Equal(t, ".clo", c.OutputExt)
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
header:
  instruction_size: 2
  globals: 8
  stack_size: 256
log:
  level: debug
  format: json
`))
	require.NoError(t, err)

	h := c.BinaryHeader()
	require.EqualValues(t, 2, h.InstructionSize)
	require.EqualValues(t, 4, h.IntegerSize)
	require.EqualValues(t, 8, h.NumGlobals)
	require.EqualValues(t, 256, h.StackSize)
	require.True(t, h.Validate())
	require.Equal(t, "json", c.Log.Format)
	require.Equal(t, DefaultOutputExt, c.OutputExt)
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, Default(), c)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "stack: 1\n"},
		{"instruction size", "header:\n  instruction_size: 3\n"},
		{"integer size", "header:\n  integer_size: 8\n"},
		{"level", "log:\n  level: loud\n"},
		{"format", "log:\n  format: xml\n"},
		{"extension", "output_ext: clo\n"},
		{"syntax", "header: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clara.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_ext: .bin\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ".bin", c.OutputExt)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected slog.Level
	}{
		{"trace", asm.LevelTrace},
		{"TRACE", asm.LevelTrace},
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		l, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.expected, l, tt.in)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	c := Default()
	c.Log.Format = "json"
	l, err := c.NewLogger(&buf)
	require.NoError(t, err)

	l.Info("hello", "n", 1)
	l.Debug("hidden")
	require.Contains(t, buf.String(), `"msg":"hello"`)
	require.NotContains(t, buf.String(), "hidden")
}

func TestOutputPath(t *testing.T) {
	out, err := OutputPath("dir/prog.rscm", ".clo")
	require.NoError(t, err)
	require.Equal(t, "dir/prog.clo", out)

	out, err = OutputPath("a.b.asm", ".clo")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(out, "a.b.clo"))

	_, err = OutputPath("prog", ".clo")
	require.Error(t, err)
}
