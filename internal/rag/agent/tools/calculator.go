package tools

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Calculator over the fixed grammar
//
//	expr   = term   { ("+" | "-") term }
//	term   = factor { ("*" | "/") factor }
//	factor = number | "(" expr ")" | "-" factor
//
// Any rune outside digits, + - * / ( ) . and space is rejected before
// parsing. There is no evaluator fallback, so there is no code-execution
// surface at all.

// Calculate evaluates expression and returns the result as a plain decimal
// string, e.g. "200 * 2" -> "400". Faults come back as errors, never panics.
func Calculate(expression string) (string, error) {
	for _, r := range expression {
		if !strings.ContainsRune("0123456789.+-*/() ", r) {
			return "", fmt.Errorf("invalid character %q in expression", r)
		}
	}

	p := &exprParser{input: expression}
	value, err := p.parseExpr()
	if err != nil {
		return "", err
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return "", fmt.Errorf("unexpected %q at position %d", p.input[p.pos], p.pos)
	}

	return strconv.FormatFloat(value, 'f', -1, 64), nil
}

type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *exprParser) peek() (byte, bool) {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *exprParser) parseExpr() (float64, error) {
	value, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peek()
		if !ok || (op != '+' && op != '-') {
			return value, nil
		}
		p.pos++
		rhs, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			value += rhs
		} else {
			value -= rhs
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	value, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peek()
		if !ok || (op != '*' && op != '/') {
			return value, nil
		}
		p.pos++
		rhs, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			value *= rhs
		} else {
			if rhs == 0 {
				return 0, errors.New("division by zero")
			}
			value /= rhs
		}
	}
}

func (p *exprParser) parseFactor() (float64, error) {
	ch, ok := p.peek()
	if !ok {
		return 0, errors.New("unexpected end of expression")
	}

	switch {
	case ch == '-':
		p.pos++
		value, err := p.parseFactor()
		return -value, err

	case ch == '(':
		p.pos++
		value, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		closing, ok := p.peek()
		if !ok || closing != ')' {
			return 0, errors.New("missing closing parenthesis")
		}
		p.pos++
		return value, nil

	case ch >= '0' && ch <= '9' || ch == '.':
		return p.parseNumber()

	default:
		return 0, fmt.Errorf("unexpected %q at position %d", ch, p.pos)
	}
}

func (p *exprParser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		p.pos++
	}
	value, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", p.input[start:p.pos])
	}
	return value, nil
}
