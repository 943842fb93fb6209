// Package eval parses and evaluates custom-channel formulas.
//
// A formula is infix arithmetic over the fixed channel vocabulary: numeric
// literals and channel identifiers combined with + - * /, unary minus and
// parentheses, with the usual precedence. Identifiers are resolved against
// the closed channel registry while parsing, so an unknown name fails before
// any numeric work happens.
//
// Alignment rule: one formula may reference channels of exactly one source.
// A formula over primary channels is evaluated per primary-log entry, one
// over temperature channels per temperature-log entry; mixing both in a
// single expression is rejected with KindMixedSources because the two logs
// have independent timestamps and no defined join. Entries where any
// referenced channel is absent under the session's schema version are
// skipped, matching MapOverTime. A formula with no channel references yields
// a constant series over the primary log's timestamps.
package eval

import (
	"fmt"
	"strconv"

	"github.com/rennwerk/telemetry/data"
	"github.com/rennwerk/telemetry/schema"
)

// Expr is a parsed, resolved formula ready for evaluation against any
// session's logs.
type Expr struct {
	root    node
	source  schema.Source
	hasRefs bool // at least one channel referenced
}

// Parse tokenizes, parses and resolves a formula.
//
// Returns:
//   - *Expr: The parsed expression.
//   - error: *Error with KindParse, KindUnknownChannel or KindMixedSources.
func Parse(formula string) (*Expr, error) {
	p := &parser{src: formula}
	p.next()

	root, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tkEOF {
		return nil, &Error{Kind: KindParse, Pos: p.tok.pos, Detail: fmt.Sprintf("unexpected %q", p.tok.text)}
	}

	x := &Expr{root: root, source: schema.SourceData}
	for _, ref := range p.refs {
		if !x.hasRefs {
			x.source = ref.c.Source()
			x.hasRefs = true
			continue
		}
		if ref.c.Source() != x.source {
			return nil, &Error{
				Kind:   KindMixedSources,
				Pos:    ref.pos,
				Detail: fmt.Sprintf("%q is a %s channel but the formula already references %s channels", ref.c, ref.c.Source(), x.source),
			}
		}
	}

	return x, nil
}

// Source reports which log the expression is evaluated over.
func (x *Expr) Source() schema.Source { return x.source }

// Eval walks the expression's source log and produces the derived series.
//
// Returns:
//   - data.Series: One sample per source entry where every referenced channel
//     is present.
//   - error: *Error with KindDivisionByZero when any sample divides by zero.
func (x *Expr) Eval(d *data.DataLog, t *data.TempLog) (data.Series, error) {
	var s data.Series

	switch x.source {
	case schema.SourceData:
		for e := range d.All() {
			v, ok, err := x.root.eval(func(c schema.Channel) (float64, bool) {
				return dataAccessors[c](e)
			})
			if err != nil {
				return nil, err
			}
			if ok {
				s = append(s, data.Sample{T: e.Time(), V: v})
			}
		}
	case schema.SourceTemp:
		for e := range t.All() {
			v, ok, err := x.root.eval(func(c schema.Channel) (float64, bool) {
				return tempAccessors[c](e)
			})
			if err != nil {
				return nil, err
			}
			if ok {
				s = append(s, data.Sample{T: e.Time(), V: v})
			}
		}
	}

	return s, nil
}

// Eval parses formula and evaluates it against the given logs in one call.
func Eval(formula string, d *data.DataLog, t *data.TempLog) (data.Series, error) {
	x, err := Parse(formula)
	if err != nil {
		return nil, err
	}

	return x.Eval(d, t)
}

// --- AST ---

// node evaluates to a value for one entry. get resolves a channel to its
// value for the entry at hand; ok=false means some referenced channel is
// absent and the sample must be skipped.
type node interface {
	eval(get func(schema.Channel) (float64, bool)) (v float64, ok bool, err *Error)
}

type literal float64

func (l literal) eval(func(schema.Channel) (float64, bool)) (float64, bool, *Error) {
	return float64(l), true, nil
}

type channelRef struct {
	c schema.Channel
}

func (r channelRef) eval(get func(schema.Channel) (float64, bool)) (float64, bool, *Error) {
	v, ok := get(r.c)

	return v, ok, nil
}

type negate struct {
	operand node
}

func (n negate) eval(get func(schema.Channel) (float64, bool)) (float64, bool, *Error) {
	v, ok, err := n.operand.eval(get)

	return -v, ok, err
}

type binary struct {
	op  tokenKind
	lhs node
	rhs node
}

func (b binary) eval(get func(schema.Channel) (float64, bool)) (float64, bool, *Error) {
	lv, ok, err := b.lhs.eval(get)
	if err != nil || !ok {
		return 0, ok, err
	}

	rv, ok, err := b.rhs.eval(get)
	if err != nil || !ok {
		return 0, ok, err
	}

	switch b.op {
	case tkPlus:
		return lv + rv, true, nil
	case tkMinus:
		return lv - rv, true, nil
	case tkStar:
		return lv * rv, true, nil
	default: // tkSlash
		if rv == 0 {
			return 0, false, &Error{Kind: KindDivisionByZero, Detail: fmt.Sprintf("%g / 0", lv)}
		}

		return lv / rv, true, nil
	}
}

// --- tokenizer and parser ---

type tokenKind uint8

const (
	tkEOF tokenKind = iota
	tkNumber
	tkIdent
	tkPlus
	tkMinus
	tkStar
	tkSlash
	tkLParen
	tkRParen
	tkInvalid
)

type token struct {
	kind tokenKind
	pos  int
	text string
	val  float64
}

type channelUse struct {
	c   schema.Channel
	pos int
}

type parser struct {
	src  string
	pos  int
	tok  token
	refs []channelUse
}

func (p *parser) next() {
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}

	start := p.pos
	if p.pos >= len(p.src) {
		p.tok = token{kind: tkEOF, pos: start, text: "end of formula"}
		return
	}

	c := p.src[p.pos]
	switch {
	case c == '+':
		p.tok = token{kind: tkPlus, pos: start, text: "+"}
		p.pos++
	case c == '-':
		p.tok = token{kind: tkMinus, pos: start, text: "-"}
		p.pos++
	case c == '*':
		p.tok = token{kind: tkStar, pos: start, text: "*"}
		p.pos++
	case c == '/':
		p.tok = token{kind: tkSlash, pos: start, text: "/"}
		p.pos++
	case c == '(':
		p.tok = token{kind: tkLParen, pos: start, text: "("}
		p.pos++
	case c == ')':
		p.tok = token{kind: tkRParen, pos: start, text: ")"}
		p.pos++
	case isDigit(c) || c == '.':
		for p.pos < len(p.src) && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
			p.pos++
		}
		text := p.src[start:p.pos]
		val, err := strconv.ParseFloat(text, 64)
		if err != nil {
			p.tok = token{kind: tkInvalid, pos: start, text: text}
			return
		}
		p.tok = token{kind: tkNumber, pos: start, text: text, val: val}
	case isIdentStart(c):
		for p.pos < len(p.src) && isIdentPart(p.src[p.pos]) {
			p.pos++
		}
		p.tok = token{kind: tkIdent, pos: start, text: p.src[start:p.pos]}
	default:
		p.tok = token{kind: tkInvalid, pos: start, text: string(c)}
		p.pos++
	}
}

// parseSum handles the lowest precedence level: + and -, left-associative.
func (p *parser) parseSum() (node, error) {
	lhs, err := p.parseProduct()
	if err != nil {
		return nil, err
	}

	for p.tok.kind == tkPlus || p.tok.kind == tkMinus {
		op := p.tok.kind
		p.next()

		rhs, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		lhs = binary{op: op, lhs: lhs, rhs: rhs}
	}

	return lhs, nil
}

// parseProduct handles * and /, left-associative.
func (p *parser) parseProduct() (node, error) {
	lhs, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for p.tok.kind == tkStar || p.tok.kind == tkSlash {
		op := p.tok.kind
		p.next()

		rhs, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		lhs = binary{op: op, lhs: lhs, rhs: rhs}
	}

	return lhs, nil
}

// parseFactor handles the tightest level: unary minus, parentheses, literals
// and channel identifiers.
func (p *parser) parseFactor() (node, error) {
	switch p.tok.kind {
	case tkMinus:
		p.next()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}

		return negate{operand: operand}, nil

	case tkLParen:
		p.next()
		inner, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tkRParen {
			return nil, &Error{Kind: KindParse, Pos: p.tok.pos, Detail: fmt.Sprintf("expected ')', got %q", p.tok.text)}
		}
		p.next()

		return inner, nil

	case tkNumber:
		lit := literal(p.tok.val)
		p.next()

		return lit, nil

	case tkIdent:
		c, err := schema.ChannelByName(p.tok.text)
		if err != nil {
			return nil, &Error{Kind: KindUnknownChannel, Pos: p.tok.pos, Detail: strconv.Quote(p.tok.text)}
		}
		p.refs = append(p.refs, channelUse{c: c, pos: p.tok.pos})
		p.next()

		return channelRef{c: c}, nil

	default:
		return nil, &Error{Kind: KindParse, Pos: p.tok.pos, Detail: fmt.Sprintf("unexpected %q", p.tok.text)}
	}
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }
