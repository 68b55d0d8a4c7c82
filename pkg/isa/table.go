package isa

import (
	"fmt"
	"sort"
	"strings"

	"github.com/psilLang/clara/pkg/types"
)

// Variant is one concrete opcode and its operand slots.
type Variant struct {
	Op        Opcode
	MinParams int
	Params    []types.Kind
	// Defaults fill trailing omitted parameters, as literal text.
	Defaults []string
}

// Name returns the opcode name.
func (v *Variant) Name() string { return OpName(v.Op) }

func (v *Variant) String() string {
	if len(v.Params) == 0 {
		return v.Name()
	}
	kinds := make([]string, len(v.Params))
	for i, k := range v.Params {
		kinds[i] = k.String()
	}
	return v.Name() + " " + strings.Join(kinds, ", ")
}

// Mnemonic is a symbolic instruction name and its candidate opcodes.
type Mnemonic struct {
	Name       string
	Candidates []Opcode
}

// Table is an immutable instruction catalog. It is safe to share between
// assemblers.
type Table struct {
	variants  []Variant
	mnemonics map[string]*Mnemonic
	friends   map[Opcode]*Mnemonic
	names     []string
}

// NewTable builds and validates a table. variants must be indexed by opcode;
// aliases map extra spellings to mnemonic names; friends maps an opcode to the
// mnemonic used to push its operands.
func NewTable(variants []Variant, mnemonics []Mnemonic, aliases map[string]string, friends map[Opcode]string) (*Table, error) {
	variants = append([]Variant(nil), variants...)
	mnemonics = append([]Mnemonic(nil), mnemonics...)
	t := &Table{
		variants:  variants,
		mnemonics: make(map[string]*Mnemonic, len(mnemonics)+len(aliases)),
		friends:   make(map[Opcode]*Mnemonic, len(friends)),
	}

	for i := range variants {
		v := &variants[i]
		if v.Op != Opcode(i) {
			return nil, fmt.Errorf("variant %d has opcode %d", i, v.Op)
		}
		if v.MinParams > len(v.Params) {
			return nil, fmt.Errorf("%s: min params %d exceeds %d declared", v.Name(), v.MinParams, len(v.Params))
		}
		if len(v.Defaults) > 0 && len(v.Defaults) != len(v.Params)-v.MinParams {
			return nil, fmt.Errorf("%s: %d defaults for %d optional params", v.Name(), len(v.Defaults), len(v.Params)-v.MinParams)
		}
	}

	for i := range mnemonics {
		m := &mnemonics[i]
		name := strings.ToLower(m.Name)
		if len(m.Candidates) == 0 {
			return nil, fmt.Errorf("mnemonic %q has no variants", name)
		}
		for _, op := range m.Candidates {
			if int(op) >= len(variants) {
				return nil, fmt.Errorf("mnemonic %q: unknown opcode %d", name, op)
			}
		}
		if _, dup := t.mnemonics[name]; dup {
			return nil, fmt.Errorf("duplicate mnemonic %q", name)
		}
		m.Name = name
		t.mnemonics[name] = m
		t.names = append(t.names, name)
	}

	for alias, name := range aliases {
		m, ok := t.mnemonics[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("alias %q: unknown mnemonic %q", alias, name)
		}
		alias = strings.ToLower(alias)
		if _, dup := t.mnemonics[alias]; dup {
			return nil, fmt.Errorf("duplicate mnemonic %q", alias)
		}
		t.mnemonics[alias] = m
		t.names = append(t.names, alias)
	}

	for op, name := range friends {
		if int(op) >= len(variants) {
			return nil, fmt.Errorf("friend of unknown opcode %d", op)
		}
		m, ok := t.mnemonics[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%s: unknown friend mnemonic %q", OpName(op), name)
		}
		t.friends[op] = m
	}

	sort.Strings(t.names)
	return t, nil
}

// MustTable is like NewTable but panics on error.
func MustTable(variants []Variant, mnemonics []Mnemonic, aliases map[string]string, friends map[Opcode]string) *Table {
	t, err := NewTable(variants, mnemonics, aliases, friends)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup finds a mnemonic by name, ignoring case.
func (t *Table) Lookup(name string) (*Mnemonic, bool) {
	m, ok := t.mnemonics[strings.ToLower(name)]
	return m, ok
}

// Variant returns the variant of an opcode.
func (t *Table) Variant(op Opcode) (*Variant, bool) {
	if int(op) >= len(t.variants) {
		return nil, false
	}
	return &t.variants[op], true
}

// Friend returns the mnemonic that pushes operands for op.
func (t *Table) Friend(op Opcode) (*Mnemonic, bool) {
	m, ok := t.friends[op]
	return m, ok
}

// MaxParams returns the largest parameter count declared by any candidate of m.
func (t *Table) MaxParams(m *Mnemonic) int {
	max := 0
	for _, op := range m.Candidates {
		if n := len(t.variants[op].Params); n > max {
			max = n
		}
	}
	return max
}

// HasFriend reports whether any candidate of m accepts friend-pushed operands.
func (t *Table) HasFriend(m *Mnemonic) bool {
	for _, op := range m.Candidates {
		if _, ok := t.friends[op]; ok {
			return true
		}
	}
	return false
}

// Names returns every mnemonic spelling, aliases included, sorted.
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

// Aliases returns the spellings that resolve to m, sorted.
func (t *Table) Aliases(m *Mnemonic) []string {
	var out []string
	for _, name := range t.names {
		if t.mnemonics[name] == m {
			out = append(out, name)
		}
	}
	return out
}

// NumVariants returns the number of opcodes in the table.
func (t *Table) NumVariants() int { return len(t.variants) }
