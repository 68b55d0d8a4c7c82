// Package parser turns one line of RSCM assembly into operand tokens using Participle v2.
// The grammar is defined as Go structs with tags.
package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"github.com/psilLang/clara/pkg/isa"
	"github.com/psilLang/clara/pkg/types"
)

// Line is the top-level AST node: tokens up to an optional directive
type Line struct {
	Tokens    []*Token `parser:"@@*"`
	Directive *string  `parser:"@Directive?"`
}

// Token: comma | literal | identifier
type Token struct {
	Comma  bool    `parser:"  @Comma"`
	Number *string `parser:"| @Number"`
	Ident  *string `parser:"| @Ident"`
}

// Assembly line lexer definition
var lineLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Comment", Pattern: `;[^\n]*`},

	// A directive swallows the rest of the line
	{Name: "Directive", Pattern: `\.[^\n]*`},

	{Name: "Comma", Pattern: `,`},

	// Anything starting with a digit or '-' is read as a literal
	{Name: "Number", Pattern: `[-0-9][^\s,;]*`},

	{Name: "Ident", Pattern: `[^\s,;]+`},
})

var lineParser = participle.MustBuild[Line](
	participle.Lexer(lineLexer),
	participle.Elide("Whitespace", "Comment"),
)

var (
	// ErrInvalidToken is returned for literals that do not parse
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnknownMnemonic is returned for identifiers that name no instruction
	ErrUnknownMnemonic = errors.New("unknown mnemonic")
	// ErrInvalidDirective is returned for a directive without a name
	ErrInvalidDirective = errors.New("invalid directive")
)

// TokenError reports the token a line failed on.
type TokenError struct {
	Token string
	Err   error
}

func (e *TokenError) Error() string { return e.Err.Error() + " '" + e.Token + "'" }
func (e *TokenError) Unwrap() error { return e.Err }

// Parser classifies tokens against an instruction table.
type Parser struct {
	table *isa.Table
}

// New creates a parser for the given table
func New(table *isa.Table) *Parser {
	return &Parser{table: table}
}

var defaultParser = New(isa.Default())

// Parse parses a line with the built-in instruction table
func Parse(line string) ([]types.Operand, error) {
	return defaultParser.Parse(line)
}

// Parse lexes one line and returns its operands in source order. A comma
// becomes types.Repetition, a mnemonic becomes types.InstructionRef and a
// literal becomes the smallest immediate holding it. Parsing stops at a
// directive. On error no operands are returned.
func (p *Parser) Parse(line string) ([]types.Operand, error) {
	line = normalize(line)
	if line == "" {
		return nil, nil
	}

	ast, err := lineParser.ParseString("", line)
	if err != nil {
		return nil, &TokenError{Token: line, Err: errors.Wrap(ErrInvalidToken, err.Error())}
	}
	if ast.Directive != nil && strings.TrimSpace(*ast.Directive) == "." {
		return nil, &TokenError{Token: *ast.Directive, Err: ErrInvalidDirective}
	}

	ops := make([]types.Operand, 0, len(ast.Tokens))
	for _, tok := range ast.Tokens {
		op, err := p.operand(tok)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// Directive returns the directive name of a line, if any.
func Directive(line string) (string, bool) {
	line = normalize(line)
	if line == "" {
		return "", false
	}
	ast, err := lineParser.ParseString("", line)
	if err != nil || ast.Directive == nil {
		return "", false
	}
	fields := strings.Fields(*ast.Directive)
	return fields[0], true
}

// normalize strips the comment and surrounding blanks and folds case.
func normalize(line string) string {
	line, _, _ = strings.Cut(line, ";")
	return strings.ToLower(strings.TrimSpace(line))
}

func (p *Parser) operand(tok *Token) (types.Operand, error) {
	switch {
	case tok.Comma:
		return types.Repetition{}, nil
	case tok.Number != nil:
		v, err := ParseLiteral(*tok.Number)
		if err != nil {
			return nil, err
		}
		return v, nil
	case tok.Ident != nil:
		m, ok := p.table.Lookup(*tok.Ident)
		if !ok {
			return nil, &TokenError{Token: *tok.Ident, Err: ErrUnknownMnemonic}
		}
		return types.InstructionRef{Name: m.Name}, nil
	}
	return nil, &TokenError{Err: ErrInvalidToken}
}
