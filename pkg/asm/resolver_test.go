package asm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/psilLang/clara/pkg/asm"
	"github.com/psilLang/clara/pkg/isa"
	"github.com/psilLang/clara/pkg/parser"
	"github.com/psilLang/clara/pkg/types"
)

func rec(op isa.Opcode, ops ...types.Operand) asm.Line {
	return asm.Line{Op: op, Operands: ops}
}

// feed runs one source line through r the way the assembler does.
func feed(r *asm.Resolver, line string) ([]asm.Line, error) {
	toks, err := parser.Parse(line)
	Expect(err).NotTo(HaveOccurred())
	for _, tok := range toks {
		if err := r.Digest(tok); err != nil {
			r.Abort()
			return nil, err
		}
	}
	return r.EndLine()
}

var _ = Describe("Resolver", func() {
	var r *asm.Resolver

	BeforeEach(func() {
		r = asm.NewResolver(isa.Default(), nil)
	})

	Context("state transitions", func() {
		It("should start expecting a mnemonic", func() {
			Expect(r.State()).To(Equal(asm.ExpectMnemonic))
		})

		It("should complete a single zero-operand variant at once", func() {
			Expect(r.Digest(types.InstructionRef{Name: "add"})).To(Succeed())
			Expect(r.State()).To(Equal(asm.InstructionComplete))
		})

		It("should collect operands for overloaded mnemonics", func() {
			Expect(r.Digest(types.InstructionRef{Name: "push"})).To(Succeed())
			Expect(r.State()).To(Equal(asm.CollectingOperands))

			Expect(r.Digest(types.Int8(1))).To(Succeed())
			Expect(r.State()).To(Equal(asm.InstructionComplete))
		})

		It("should return to expecting a mnemonic after each line", func() {
			_, err := feed(r, "push 1")
			Expect(err).NotTo(HaveOccurred())
			Expect(r.State()).To(Equal(asm.ExpectMnemonic))
		})

		It("should close the open instruction on a new mnemonic", func() {
			lines, err := feed(r, "push ret")
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]asm.Line{rec(isa.OpPushN), rec(isa.OpRet)}))
		})
	})

	Context("variant selection", func() {
		DescribeTable("resolves a line",
			func(line string, expected ...asm.Line) {
				lines, err := feed(r, line)
				Expect(err).NotTo(HaveOccurred())
				Expect(lines).To(Equal(expected))
			},
			Entry("push without operands", "push", rec(isa.OpPushN)),
			Entry("byte push", "push 127", rec(isa.OpPushB, types.Int8(127))),
			Entry("word push", "push 128", rec(isa.OpPushW, types.Int16(128))),
			Entry("dword push", "push 70000", rec(isa.OpPushD, types.Int32(70000))),
			Entry("float push", "push 1.5", rec(isa.OpPushF, types.Float(1.5))),
			Entry("pop default", "pop", rec(isa.OpPop, types.Int8(1))),
			Entry("pop explicit", "pop 1", rec(isa.OpPop, types.Int8(1))),
			Entry("dup", "dup", rec(isa.OpDup)),
			Entry("dupe", "dup 2", rec(isa.OpDupE, types.Int8(2))),
			Entry("jmp", "jmp", rec(isa.OpJmp)),
			Entry("absolute jump", "jmp 5", rec(isa.OpJmpA, types.Int32(5))),
			Entry("call", "call 300", rec(isa.OpCallA, types.Int32(300))),
			Entry("alias", "jz 10", rec(isa.OpJnt, types.Int32(10))),
			Entry("switch widens both operands", "sw 1 2",
				rec(isa.OpSwitch, types.Int16(1), types.Int32(2))),
			Entry("case-insensitive", "PUSH 1 ; comment", rec(isa.OpPushB, types.Int8(1))),
		)
	})

	Context("friend synthesis", func() {
		It("should push operands before the stack opcode", func() {
			lines, err := feed(r, "add 3, 4")
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]asm.Line{
				rec(isa.OpPushB, types.Int8(3)),
				rec(isa.OpPushB, types.Int8(4)),
				rec(isa.OpAdd),
			}))
		})

		It("should accept operands separated by blanks", func() {
			lines, err := feed(r, "add 3 300")
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]asm.Line{
				rec(isa.OpPushB, types.Int8(3)),
				rec(isa.OpPushW, types.Int16(300)),
				rec(isa.OpAdd),
			}))
		})

		It("should use a direct variant when one fits", func() {
			lines, err := feed(r, "jmp 5")
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]asm.Line{rec(isa.OpJmpA, types.Int32(5))}))
		})

		It("should push when no variant takes the operands", func() {
			lines, err := feed(r, "jmp 5 6")
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]asm.Line{
				rec(isa.OpPushB, types.Int8(5)),
				rec(isa.OpPushB, types.Int8(6)),
				rec(isa.OpJmp),
			}))
		})

		It("should reject extra operands without a friend", func() {
			_, err := feed(r, "ret 5")
			Expect(asm.KindOf(err)).To(Equal(asm.NoMatchingInstruction))

			_, err = feed(r, "push 1 2")
			Expect(asm.KindOf(err)).To(Equal(asm.NoMatchingInstruction))
		})
	})

	Context("repetition", func() {
		It("should repeat the mnemonic for each operand set", func() {
			lines, err := feed(r, "push 1, 2, 3")
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]asm.Line{
				rec(isa.OpPushB, types.Int8(1)),
				rec(isa.OpPushB, types.Int8(2)),
				rec(isa.OpPushB, types.Int8(3)),
			}))
		})

		It("should continue a trailing comma on the next line", func() {
			lines, err := feed(r, "push 1,")
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]asm.Line{rec(isa.OpPushB, types.Int8(1))}))
			Expect(r.Continues()).To(BeTrue())

			lines, err = feed(r, "2")
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]asm.Line{rec(isa.OpPushB, types.Int8(2))}))
		})

		It("should keep a friend operand list open across lines", func() {
			lines, err := feed(r, "add 3,")
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(BeEmpty())

			lines, err = feed(r, "4")
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]asm.Line{
				rec(isa.OpPushB, types.Int8(3)),
				rec(isa.OpPushB, types.Int8(4)),
				rec(isa.OpAdd),
			}))
		})

		It("should repeat the previous line's mnemonic on a leading comma", func() {
			_, err := feed(r, "pop 2")
			Expect(err).NotTo(HaveOccurred())

			lines, err := feed(r, ", 3")
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]asm.Line{rec(isa.OpPop, types.Int8(3))}))
		})

		It("should keep the mnemonic across an aborted line", func() {
			_, err := feed(r, "push 1")
			Expect(err).NotTo(HaveOccurred())
			_, err = feed(r, "push 1 2")
			Expect(err).To(HaveOccurred())

			lines, err := feed(r, ", 3")
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]asm.Line{rec(isa.OpPushB, types.Int8(3))}))
		})

		It("should fail on a trailing comma at end of input", func() {
			_, err := feed(r, "push 1,")
			Expect(err).NotTo(HaveOccurred())

			_, err = r.Flush()
			Expect(asm.KindOf(err)).To(Equal(asm.InvalidToken))
			Expect(r.Continues()).To(BeFalse())
		})
	})

	Context("malformed input", func() {
		DescribeTable("reports the error kind",
			func(line string, kind asm.ErrorKind) {
				_, err := feed(r, line)
				Expect(asm.KindOf(err)).To(Equal(kind))
				Expect(r.State()).To(Equal(asm.ExpectMnemonic))
			},
			Entry("value before mnemonic", "5 push", asm.InvalidMnemonic),
			Entry("nothing to repeat", ", 5", asm.InvalidToken),
			Entry("double comma", "push 1, , 2", asm.InvalidToken),
			Entry("comma before mnemonic", "push 1, add", asm.InvalidToken),
			Entry("missing required operand", "throw", asm.NoMatchingInstruction),
			Entry("float for an integer slot", "enter 1.5", asm.NoMatchingInstruction),
			Entry("operand too wide", "enter 300", asm.NoMatchingInstruction),
		)
	})

	Context("with an ambiguous table", func() {
		var table *isa.Table

		BeforeEach(func() {
			var err error
			table, err = isa.NewTable(
				[]isa.Variant{
					{Op: 0},
					{Op: 1, MinParams: 1, Params: []types.Kind{types.Imm16}},
					{Op: 2, MinParams: 1, Params: []types.Kind{types.Imm16}},
				},
				[]isa.Mnemonic{
					{Name: "nop", Candidates: []isa.Opcode{0}},
					{Name: "twice", Candidates: []isa.Opcode{1, 2}},
				},
				nil, nil,
			)
			Expect(err).NotTo(HaveOccurred())
			r = asm.NewResolver(table, nil)
		})

		It("should surface the ambiguity", func() {
			toks := []types.Operand{types.InstructionRef{Name: "twice"}, types.Int8(5)}
			Expect(r.Digest(toks[0])).To(Succeed())
			err := r.Digest(toks[1])
			Expect(asm.KindOf(err)).To(Equal(asm.AmbiguousInstruction))
			Expect(err.Error()).To(ContainSubstring("|"))
		})
	})
})
