// Package parser turns a Knight token stream into an AST. The grammar is a
// simple fixed-arity recursive descent: every function token consumes
// exactly Arity(op) further expressions, with no operator precedence to
// resolve and no backtracking.
package parser

import (
	"fmt"
	"strings"

	"github.com/knight-lang/go-knight/internal/ast"
	"github.com/knight-lang/go-knight/internal/flags"
	"github.com/knight-lang/go-knight/internal/lexer"
	"github.com/knight-lang/go-knight/internal/text"
	"github.com/knight-lang/go-knight/internal/token"
	"github.com/knight-lang/go-knight/internal/value"
)

// ErrorKind classifies why Parse failed.
type ErrorKind int

const (
	TrailingTokens ErrorKind = iota
	UnterminatedString
	UnknownFunction
	UnexpectedEndOfInput
	InvalidVariableName
	ContainerTooLarge
	InvalidCharset
	IllegalByte
)

func (k ErrorKind) String() string {
	switch k {
	case TrailingTokens:
		return "TrailingTokens"
	case UnterminatedString:
		return "UnterminatedString"
	case UnknownFunction:
		return "UnknownFunction"
	case UnexpectedEndOfInput:
		return "UnexpectedEndOfInput"
	case InvalidVariableName:
		return "InvalidVariableName"
	case ContainerTooLarge:
		return "ContainerTooLarge"
	case InvalidCharset:
		return "InvalidCharset"
	case IllegalByte:
		return "IllegalByte"
	default:
		return "Unknown"
	}
}

// Error is a parse failure at a specific source position.
type Error struct {
	Kind    ErrorKind
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Pos, e.Message)
}

// maxVariableNameLength bounds identifier length under verify-variable-names,
// matching the reference C implementation's fixed name buffer.
const maxVariableNameLength = 127

// Parser consumes tokens from a Lexer one at a time; it never looks more
// than one token ahead, since Knight's fixed-arity grammar needs no more.
type Parser struct {
	lex   *lexer.Lexer
	flags flags.Flags
	cur   token.Token
}

// New creates a Parser reading from lex under the given flag snapshot,
// which gates which extension operators are recognized and which
// compliance checks run against literals.
func New(lex *lexer.Lexer, f flags.Flags) *Parser {
	p := &Parser{lex: lex, flags: f}
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.lex.NextToken()
}

// Parse reads exactly one expression. Under ForbidTrailingTokens it is then
// an error for anything but EOF to follow; otherwise trailing tokens are
// silently ignored, matching a bare Knight interpreter that stops as soon
// as the first expression's arguments are satisfied.
func (p *Parser) Parse() (ast.Node, error) {
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.flags.ForbidTrailingTokens && p.cur.Type != token.EOF {
		return nil, &Error{
			Kind:    TrailingTokens,
			Pos:     p.cur.Pos,
			Message: fmt.Sprintf("unexpected trailing token %q", p.cur.Literal),
		}
	}
	return node, nil
}

func (p *Parser) parseExpr() (ast.Node, error) {
	tok := p.cur

	switch tok.Type {
	case token.EOF:
		return nil, &Error{Kind: UnexpectedEndOfInput, Pos: tok.Pos, Message: "expected an expression, found end of input"}

	case token.ILLEGAL:
		// The lexer reports an unterminated string literal as an ILLEGAL
		// token plus a LexError at the same position.
		if errs := p.lex.Errors(); len(errs) > 0 {
			if le, ok := errs[len(errs)-1].(*lexer.LexError); ok && le.Pos == tok.Pos && strings.HasPrefix(le.Message, "unterminated") {
				return nil, &Error{Kind: UnterminatedString, Pos: tok.Pos, Message: le.Message}
			}
		}
		return nil, &Error{Kind: IllegalByte, Pos: tok.Pos, Message: fmt.Sprintf("invalid token %q", tok.Literal)}

	case token.INT:
		p.advance()
		n, _ := text.ParseInt(tok.Literal, 64)
		return &ast.Literal{Value: value.Integer(n), Pos: tok.Pos}, nil

	case token.STRING:
		p.advance()
		if p.flags.KnightEncoding {
			if err := text.Validate(tok.Literal); err != nil {
				return nil, &Error{Kind: InvalidCharset, Pos: tok.Pos, Message: err.Error()}
			}
		}
		if p.flags.CheckContainerLength {
			if err := text.CheckLength(len(tok.Literal)); err != nil {
				return nil, &Error{Kind: ContainerTooLarge, Pos: tok.Pos, Message: err.Error()}
			}
		}
		return &ast.Literal{Value: value.String(tok.Literal), Pos: tok.Pos}, nil

	case token.IDENT:
		p.advance()
		if p.flags.VerifyVariableNames && len(tok.Literal) > maxVariableNameLength {
			return nil, &Error{
				Kind: InvalidVariableName, Pos: tok.Pos,
				Message: fmt.Sprintf("variable name %q exceeds %d bytes", tok.Literal, maxVariableNameLength),
			}
		}
		return &ast.VarRef{Name: tok.Literal, Pos: tok.Pos}, nil

	case token.FUNC:
		return p.parseCall(tok)

	default:
		return nil, &Error{Kind: UnknownFunction, Pos: tok.Pos, Message: fmt.Sprintf("unrecognized token %q", tok.Literal)}
	}
}

func (p *Parser) parseCall(tok token.Token) (ast.Node, error) {
	op, ok := p.resolveOp(tok.Literal)
	if !ok {
		return nil, &Error{Kind: UnknownFunction, Pos: tok.Pos, Message: fmt.Sprintf("unknown function %q", tok.Literal)}
	}
	if !p.extensionEnabled(op) {
		return nil, &Error{Kind: UnknownFunction, Pos: tok.Pos, Message: fmt.Sprintf("extension function %q is not enabled", tok.Literal)}
	}
	arity, _ := ast.Arity(op)
	p.advance()

	args := make([]ast.Node, arity)
	for i := 0; i < arity; i++ {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}
	return &ast.Call{Op: op, Args: args, Pos: tok.Pos}, nil
}

// resolveOp maps a FUNC token's literal spelling to its canonical operator
// identity: a word-form function (leading uppercase letter) resolves via
// ast.WordOp, everything else is a single symbolic byte resolved via
// ast.SymbolOp.
func (p *Parser) resolveOp(literal string) (string, bool) {
	if len(literal) == 0 {
		return "", false
	}
	if literal[0] >= 'A' && literal[0] <= 'Z' {
		return ast.WordOp(literal)
	}
	return ast.SymbolOp(literal[0])
}

// extensionEnabled reports whether op's governing flag (if it has one) is
// on. Core operators have no gating flag and are always enabled.
func (p *Parser) extensionEnabled(op string) bool {
	switch op {
	case ast.OpValue:
		return p.flags.ValueFunction
	case ast.OpEval:
		return p.flags.EvalFunction
	case ast.OpHandle:
		return p.flags.HandleFunction
	case ast.OpYeet:
		return p.flags.YeetFunction
	case ast.OpUse:
		return p.flags.UseFunction
	case ast.OpSystemExt:
		return p.flags.SystemFunction
	case ast.OpXSRand:
		return p.flags.XSRand
	case ast.OpXRange:
		return p.flags.XRange
	case ast.OpXReverse:
		return p.flags.XReverse
	default:
		return true
	}
}
