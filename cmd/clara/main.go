// clara assembles RSCM source into CLE bytecode.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/psilLang/clara/pkg/asm"
	"github.com/psilLang/clara/pkg/config"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	stackSize  uint32
	globals    uint32

	exitCode int
)

var rootCmd = &cobra.Command{
	Use:   "clara input [output]",
	Short: "Assemble RSCM source into a CLE binary",
	Long: `Clara reads RSCM assembly, one instruction per line, and writes a CLE
binary: a 27-byte header followed by the encoded instructions.

Mnemonics are case-insensitive and ';' starts a comment. A comma repeats
the previous mnemonic with a new operand list, so "push 1, 2" is two
pushes. Opcodes that take their operands from the stack accept them
inline: "add 3, 4" assembles to push 3, push 4, add.

Without an output name the input extension is replaced with .clo.`,
	Args:          cobra.RangeArgs(1, 2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAssemble,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "YAML config file")
	pf.StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "log format: text or json")

	f := rootCmd.Flags()
	f.Uint32Var(&stackSize, "stack-size", 0, "stack size recorded in the header")
	f.Uint32Var(&globals, "globals", 0, "number of globals recorded in the header")

	rootCmd.AddCommand(dumpCmd)
}

// loadConfig merges the config file with flags and installs the logger.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	c := config.Default()
	if configPath != "" {
		var err error
		if c, err = config.Load(configPath); err != nil {
			return c, nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		c.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		c.Log.Format = logFormat
	}
	if flags.Changed("stack-size") {
		c.Header.StackSize = stackSize
	}
	if flags.Changed("globals") {
		c.Header.Globals = globals
	}
	if err := c.Validate(); err != nil {
		return c, nil, err
	}

	log, err := c.NewLogger(os.Stderr)
	if err != nil {
		return c, nil, err
	}
	slog.SetDefault(log)
	return c, log, nil
}

func runAssemble(cmd *cobra.Command, args []string) error {
	c, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	in := args[0]
	var out string
	if len(args) > 1 {
		out = args[1]
	} else if out, err = config.OutputPath(in, c.OutputExt); err != nil {
		return err
	}

	kind := asm.Compile(in, out,
		asm.WithHeader(c.BinaryHeader()),
		asm.WithLogger(log),
		asm.WithReporter(asm.NewSlogReporter(log)),
	)
	if kind == asm.WriteFailed {
		atexit.Register(func() { os.Remove(out) })
	}
	exitCode = exitCodeFor(kind)
	return nil
}

// exitCodeFor maps a compile result to the process status: 1 for source
// errors, 3 for file errors and 4 when interrupted.
func exitCodeFor(kind asm.ErrorKind) int {
	switch kind {
	case asm.None:
		return 0
	case asm.OpenFileFailed, asm.CreateFileFailed, asm.WriteFailed:
		return 3
	case asm.Interrupted:
		return 4
	}
	return 1
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(2)
	}
	atexit.Exit(exitCode)
}
