package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/psilLang/clara/pkg/bytecode"
	"github.com/psilLang/clara/pkg/isa"
)

var plainDump bool

var dumpCmd = &cobra.Command{
	Use:   "dump file",
	Short: "List the header and instructions of a CLE binary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, _, err := loadConfig(cmd); err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		h, records, derr := bytecode.Decode(f, isa.Default())
		if derr != nil && len(records) == 0 {
			return derr
		}

		w := cmd.OutOrStdout()
		if plainDump {
			fmt.Fprint(w, bytecode.Disassemble(h, records))
		} else {
			renderDump(w, args[0], h, records)
		}
		// A truncated file still lists what decoded.
		return derr
	},
}

func init() {
	dumpCmd.Flags().BoolVar(&plainDump, "plain", false, "print one instruction per line without tables")
}

func renderDump(w io.Writer, title string, h bytecode.Header, records []bytecode.Record) {
	hdr := table.NewWriter()
	hdr.SetOutputMirror(w)
	hdr.SetTitle("Header")
	hdr.AppendRows([]table.Row{
		{"Signature", fmt.Sprintf("%#08x", h.Signature)},
		{"Architecture", fmt.Sprintf("%#08x", h.Architecture)},
		{"Version", fmt.Sprintf("%d.%d", h.Major(), h.Minor())},
		{"Instruction size", h.InstructionSize},
		{"Integer size", h.IntegerSize},
		{"Globals", h.NumGlobals},
		{"Globals offset", h.GlobalsOffset},
		{"Stack size", h.StackSize},
		{"String segment", h.StringSegmentSize},
	})
	hdr.Render()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Offset", "Op", "Name", "Operands"})

	pc := bytecode.HeaderSize
	for _, r := range records {
		ops := make([]string, len(r.Operands))
		for i, op := range r.Operands {
			ops[i] = op.String()
		}
		t.AppendRow(table.Row{
			fmt.Sprintf("%04X", pc),
			fmt.Sprintf("%02X", uint16(r.Op)),
			isa.OpName(r.Op),
			strings.Join(ops, ", "),
		})
		pc += r.Size(int(h.InstructionSize))
	}
	t.AppendFooter(table.Row{"", "", "Total", fmt.Sprintf("%d instructions", len(records))})
	t.Render()
}
