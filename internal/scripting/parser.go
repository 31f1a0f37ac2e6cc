package scripting

import "fmt"

// Expression AST. The tree is small enough that direct evaluation beats a
// compile step; precedence climbing keeps the grammar flat.
type node interface{}

type numberNode float64

type stringNode string

type identNode string

type unaryNode struct {
	op    string
	child node
}

type binaryNode struct {
	op          string
	left, right node
}

type callNode struct {
	fn   string
	args []node
}

type assignNode struct {
	name string
	expr node
}

type exprParser struct {
	toks []token
	pos  int
}

// parse reads one statement: `name = expr` or a bare expression.
func parse(src string) (node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &exprParser{toks: toks}

	if p.peek().kind == tokIdent && p.peekAt(1).kind == tokAssign {
		name := p.next().text
		p.next() // '='
		expr, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if err := p.expectEOF(); err != nil {
			return nil, err
		}
		return assignNode{name: name, expr: expr}, nil
	}

	expr, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return expr, nil
}

// binding powers, loosest first
func precedence(t token) int {
	switch t.kind {
	case tokOr:
		return 1
	case tokAnd:
		return 2
	case tokCmp:
		return 3
	case tokOp:
		switch t.text {
		case "+", "-":
			return 4
		case "*", "/":
			return 5
		case "^":
			return 6
		}
	}
	return 0
}

func (p *exprParser) parseExpr(minPrec int) (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		prec := precedence(t)
		if prec == 0 || prec < minPrec {
			return left, nil
		}
		p.next()
		// ^ is right-associative
		nextMin := prec + 1
		if t.text == "^" {
			nextMin = prec
		}
		right, err := p.parseExpr(nextMin)
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: t.text, left: left, right: right}
	}
}

func (p *exprParser) parseUnary() (node, error) {
	t := p.peek()
	if t.kind == tokOp && t.text == "-" {
		p.next()
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: "-", child: child}, nil
	}
	if t.kind == tokNot {
		p.next()
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: "!", child: child}, nil
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		var v float64
		if _, err := fmt.Sscanf(t.text, "%g", &v); err != nil {
			return nil, fmt.Errorf("bad number %q", t.text)
		}
		return numberNode(v), nil
	case tokString:
		return stringNode(t.text), nil
	case tokIdent:
		if p.peek().kind == tokLParen {
			p.next() // '('
			var args []node
			if p.peek().kind != tokRParen {
				for {
					arg, err := p.parseExpr(0)
					if err != nil {
						return nil, err
					}
					args = append(args, arg)
					if p.peek().kind != tokComma {
						break
					}
					p.next()
				}
			}
			if p.peek().kind != tokRParen {
				return nil, fmt.Errorf("expected ) after arguments to %s", t.text)
			}
			p.next()
			return callNode{fn: t.text, args: args}, nil
		}
		return identNode(t.text), nil
	case tokLParen:
		expr, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokRParen {
			return nil, fmt.Errorf("expected ) at position %d", p.peek().pos)
		}
		p.next()
		return expr, nil
	default:
		return nil, fmt.Errorf("unexpected token %q at position %d", t.text, t.pos)
	}
}

func (p *exprParser) peek() token   { return p.toks[p.pos] }
func (p *exprParser) next() token   { t := p.toks[p.pos]; p.pos++; return t }
func (p *exprParser) peekAt(n int) token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *exprParser) expectEOF() error {
	if p.peek().kind != tokEOF {
		return fmt.Errorf("unexpected %q at position %d", p.peek().text, p.peek().pos)
	}
	return nil
}
