// opref prints the RSCM instruction reference: every opcode with its operand
// slots, defaults, friend mnemonic and the spellings that select it.
//
// Usage: go run ./tools/opref [-markdown]
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/psilLang/clara/pkg/isa"
)

func main() {
	markdown := flag.Bool("markdown", false, "Render as a Markdown table")
	flag.Parse()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Op", "Name", "Operands", "Defaults", "Mnemonics", "Friend"})

	tab := isa.Default()
	spellings := selectors(tab)
	for i := 0; i < tab.NumVariants(); i++ {
		v, _ := tab.Variant(isa.Opcode(i))

		params := make([]string, len(v.Params))
		for j, k := range v.Params {
			if j >= v.MinParams {
				params[j] = "[" + k.String() + "]"
			} else {
				params[j] = k.String()
			}
		}

		friend := ""
		if f, ok := tab.Friend(v.Op); ok {
			friend = f.Name
		}

		t.AppendRow(table.Row{
			fmt.Sprintf("%02X", i),
			v.Name(),
			strings.Join(params, ", "),
			strings.Join(v.Defaults, ", "),
			strings.Join(spellings[v.Op], ", "),
			friend,
		})
	}

	if *markdown {
		t.RenderMarkdown()
		return
	}
	t.Render()
}

// selectors maps each opcode to the mnemonic spellings whose candidates
// include it.
func selectors(tab *isa.Table) map[isa.Opcode][]string {
	out := make(map[isa.Opcode][]string)
	for _, name := range tab.Names() {
		m, _ := tab.Lookup(name)
		for _, op := range m.Candidates {
			out[op] = append(out[op], name)
		}
	}
	return out
}
