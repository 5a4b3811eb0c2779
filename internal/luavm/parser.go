// Copyright 2026 The CPrime Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package luavm

import "fmt"

// SyntaxError reports a parse failure, carrying the offending line.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string { return fmt.Sprintf("lua syntax error at line %d: %s", e.Line, e.Msg) }

// parser is a recursive-descent parser over a Scanner's token stream,
// following the curr/next/advance shape of the 256lights-zb luacode
// package's parser, trimmed to this subset's grammar.
type parser struct {
	sc   *Scanner
	curr Token
}

// Parse parses src as a Lua chunk (a top-level Block).
func Parse(src string) (block Block, err error) {
	p := &parser{sc: NewScanner(src)}
	p.advance()
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*SyntaxError); ok {
				err = se
				return
			}
			panic(r)
		}
	}()
	b := p.block()
	if p.curr.Kind != EOFToken {
		p.fail("expected end of input, found %v", p.curr.Kind)
	}
	return b, nil
}

func (p *parser) advance() { p.curr = p.sc.Scan() }

func (p *parser) fail(format string, args ...any) {
	panic(&SyntaxError{Line: p.curr.Line, Msg: fmt.Sprintf(format, args...)})
}

func (p *parser) expect(k TokenKind, what string) Token {
	if p.curr.Kind != k {
		p.fail("expected %s, found %q", what, p.curr.Text)
	}
	t := p.curr
	p.advance()
	return t
}

func blockEnd(k TokenKind) bool {
	switch k {
	case EOFToken, KwEnd, KwElse, KwElseif:
		return true
	}
	return false
}

func (p *parser) block() Block {
	var b Block
	for !blockEnd(p.curr.Kind) {
		if p.curr.Kind == KwReturn {
			b.Stats = append(b.Stats, p.returnStat())
			break
		}
		b.Stats = append(b.Stats, p.statement())
	}
	return b
}

func (p *parser) statement() Stat {
	switch p.curr.Kind {
	case Semicolon:
		p.advance()
		return p.statement()
	case KwLocal:
		return p.localStat()
	case KwIf:
		return p.ifStat()
	case KwWhile:
		return p.whileStat()
	case KwFor:
		return p.forStat()
	case KwDo:
		p.advance()
		body := p.block()
		p.expect(KwEnd, "'end'")
		return &DoStat{Body: body}
	case KwBreak:
		p.advance()
		return &BreakStat{}
	default:
		return p.exprStat()
	}
}

func (p *parser) localStat() Stat {
	p.advance() // local
	var names []string
	names = append(names, p.expect(NameToken, "name").Text)
	for p.curr.Kind == Comma {
		p.advance()
		names = append(names, p.expect(NameToken, "name").Text)
	}
	var exprs []Expr
	if p.curr.Kind == Assign {
		p.advance()
		exprs = p.exprList()
	}
	return &LocalStat{Names: names, Exprs: exprs}
}

func (p *parser) ifStat() Stat {
	s := &IfStat{}
	p.advance() // if
	s.Conds = append(s.Conds, p.expression())
	p.expect(KwThen, "'then'")
	s.Blocks = append(s.Blocks, p.block())
	for p.curr.Kind == KwElseif {
		p.advance()
		s.Conds = append(s.Conds, p.expression())
		p.expect(KwThen, "'then'")
		s.Blocks = append(s.Blocks, p.block())
	}
	if p.curr.Kind == KwElse {
		p.advance()
		b := p.block()
		s.Else = &b
	}
	p.expect(KwEnd, "'end'")
	return s
}

func (p *parser) whileStat() Stat {
	p.advance() // while
	cond := p.expression()
	p.expect(KwDo, "'do'")
	body := p.block()
	p.expect(KwEnd, "'end'")
	return &WhileStat{Cond: cond, Body: body}
}

func (p *parser) forStat() Stat {
	p.advance() // for
	name := p.expect(NameToken, "name").Text
	p.expect(Assign, "'='")
	start := p.expression()
	p.expect(Comma, "','")
	stop := p.expression()
	var step Expr
	if p.curr.Kind == Comma {
		p.advance()
		step = p.expression()
	}
	p.expect(KwDo, "'do'")
	body := p.block()
	p.expect(KwEnd, "'end'")
	return &NumericForStat{Name: name, Start: start, Stop: stop, Step: step, Body: body}
}

func (p *parser) returnStat() Stat {
	p.advance() // return
	var exprs []Expr
	if !blockEnd(p.curr.Kind) && p.curr.Kind != Semicolon {
		exprs = p.exprList()
	}
	if p.curr.Kind == Semicolon {
		p.advance()
	}
	return &ReturnStat{Exprs: exprs}
}

// exprStat parses either a call statement or an assignment, disambiguated
// by what follows the first primary expression.
func (p *parser) exprStat() Stat {
	first := p.suffixedExpr()
	if p.curr.Kind == Assign || p.curr.Kind == Comma {
		targets := []Expr{first}
		for p.curr.Kind == Comma {
			p.advance()
			targets = append(targets, p.suffixedExpr())
		}
		p.expect(Assign, "'='")
		exprs := p.exprList()
		return &AssignStat{Targets: targets, Exprs: exprs}
	}
	call, ok := first.(*CallExpr)
	if !ok {
		p.fail("syntax error: expression statement must be a call")
	}
	return &CallStat{Call: call}
}

func (p *parser) exprList() []Expr {
	var out []Expr
	out = append(out, p.expression())
	for p.curr.Kind == Comma {
		p.advance()
		out = append(out, p.expression())
	}
	return out
}

// binary operator precedence, per Lua's reference grammar, trimmed to the
// operators this subset parses.
var binaryPrec = map[TokenKind]int{
	KwOr: 1, KwAnd: 2,
	Less: 3, Greater: 3, LessEq: 3, GreaterEq: 3, Eq: 3, NotEq: 3,
	Concat: 4,
	Plus:   5, Minus: 5,
	Star: 6, Slash: 6, Percent: 6,
	Caret: 8,
}

const unaryPrec = 7

func rightAssoc(k TokenKind) bool { return k == Concat || k == Caret }

func (p *parser) expression() Expr { return p.binaryExpr(0) }

func (p *parser) binaryExpr(minPrec int) Expr {
	lhs := p.unaryExpr()
	for {
		prec, ok := binaryPrec[p.curr.Kind]
		if !ok || prec < minPrec {
			return lhs
		}
		op := p.curr.Kind
		p.advance()
		nextMin := prec + 1
		if rightAssoc(op) {
			nextMin = prec
		}
		rhs := p.binaryExpr(nextMin)
		lhs = &BinaryExpr{Op: op, Lhs: lhs, Rhs: rhs}
	}
}

func (p *parser) unaryExpr() Expr {
	switch p.curr.Kind {
	case KwNot, Minus, Hash:
		op := p.curr.Kind
		p.advance()
		return &UnaryExpr{Op: op, Rhs: p.binaryExpr(unaryPrec)}
	}
	return p.suffixedExpr()
}

// suffixedExpr parses a primary expression followed by any chain of
// `.name`, `[expr]`, and `(args)` suffixes.
func (p *parser) suffixedExpr() Expr {
	e := p.primaryExpr()
	for {
		switch p.curr.Kind {
		case Dot:
			p.advance()
			name := p.expect(NameToken, "field name").Text
			e = &IndexExpr{Target: e, Key: &StringExpr{Value: name}}
		case LBracket:
			p.advance()
			key := p.expression()
			p.expect(RBracket, "']'")
			e = &IndexExpr{Target: e, Key: key}
		case LParen:
			e = &CallExpr{Callee: e, Args: p.callArgs()}
		case StringToken:
			e = &CallExpr{Callee: e, Args: []Expr{&StringExpr{Value: p.curr.Text}}}
			p.advance()
		default:
			return e
		}
	}
}

func (p *parser) callArgs() []Expr {
	p.expect(LParen, "'('")
	var args []Expr
	if p.curr.Kind != RParen {
		args = p.exprList()
	}
	p.expect(RParen, "')'")
	return args
}

func (p *parser) primaryExpr() Expr {
	switch p.curr.Kind {
	case KwNil:
		p.advance()
		return &NilExpr{}
	case KwTrue:
		p.advance()
		return &TrueExpr{}
	case KwFalse:
		p.advance()
		return &FalseExpr{}
	case NumberToken:
		v := p.curr.Num
		p.advance()
		return &NumberExpr{Value: v}
	case StringToken:
		v := p.curr.Text
		p.advance()
		return &StringExpr{Value: v}
	case NameToken:
		v := p.curr.Text
		p.advance()
		return &NameExpr{Name: v}
	case LParen:
		p.advance()
		e := p.expression()
		p.expect(RParen, "')'")
		return e
	case LBrace:
		return p.tableExpr()
	}
	p.fail("unexpected token %q", p.curr.Text)
	return nil
}

func (p *parser) tableExpr() Expr {
	p.expect(LBrace, "'{'")
	var fields []TableField
	for p.curr.Kind != RBrace {
		switch {
		case p.curr.Kind == LBracket:
			p.advance()
			key := p.expression()
			p.expect(RBracket, "']'")
			p.expect(Assign, "'='")
			fields = append(fields, TableField{Key: key, Value: p.expression()})
		case p.curr.Kind == NameToken && p.peekIsAssign():
			name := p.curr.Text
			p.advance()
			p.advance() // '='
			fields = append(fields, TableField{Key: &StringExpr{Value: name}, Value: p.expression()})
		default:
			fields = append(fields, TableField{Value: p.expression()})
		}
		if p.curr.Kind == Comma || p.curr.Kind == Semicolon {
			p.advance()
		} else {
			break
		}
	}
	p.expect(RBrace, "'}'")
	return &TableExpr{Fields: fields}
}

// peekIsAssign reports whether the token after the current NameToken is
// '=' (distinguishing `name = expr` table fields from positional entries
// that happen to start with a name expression). This is a one-token
// lookahead implemented by scanning from a throwaway scanner copy, since
// Scanner has no internal state beyond position that needs preserving.
func (p *parser) peekIsAssign() bool {
	save := *p.sc
	next := p.sc.Scan()
	*p.sc = save
	return next.Kind == Assign
}
