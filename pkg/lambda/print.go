package lambda

import (
	"strings"

	"github.com/samber/lo"
)

// Precedence levels used for bracketing; a child is wrapped in [ ] when it
// binds more loosely than its context allows.
const (
	precAtom    = 1
	precAnd     = 2
	precOr      = 3
	precImplies = 4
	precBinder  = 5
)

func prec(t Term) int {
	switch v := t.(type) {
	case Conn:
		switch v.Op {
		case And:
			return precAnd
		case Or:
			return precOr
		case Implies, Iff:
			return precImplies
		}
		return precAtom
	case Abs, Quant, Iota:
		return precBinder
	default:
		return precAtom
	}
}

// ASCII renders term using L, A, E and i for the binders.
func ASCII(term Term) string {
	return format(term, true)
}

func format(t Term, ascii bool) string {
	switch v := t.(type) {
	case Const:
		return v.Name
	case Var:
		return v.Name
	case App:
		// F(x)(y) is printed F(x, y).
		var args []Term
		var head Term = v
		for {
			app, ok := head.(App)
			if !ok {
				break
			}
			args = append(args, app.Arg)
			head = app.Fun
		}
		args = lo.Reverse(args)
		rendered := strings.Join(lo.Map(args, func(a Term, _ int) string {
			return format(a, ascii)
		}), ", ")
		switch head.(type) {
		case Const, Var:
			return format(head, ascii) + "(" + rendered + ")"
		default:
			return "(" + format(head, ascii) + ")(" + rendered + ")"
		}
	case Conn:
		return formatConn(v, ascii)
	case Abs:
		return binderSymbol(v, ascii) + v.Param.Name + "." + format(v.Body, ascii)
	case Quant:
		return binderSymbol(v, ascii) + v.Var.Name + "." + format(v.Body, ascii)
	case Iota:
		return binderSymbol(v, ascii) + v.Var.Name + "." + format(v.Body, ascii)
	case nil:
		return "<nil>"
	}
	return "?"
}

func binderSymbol(t Term, ascii bool) string {
	switch v := t.(type) {
	case Abs:
		if ascii {
			return "L"
		}
		return "λ"
	case Quant:
		if v.Kind == Exists {
			if ascii {
				return "E"
			}
			return "∃"
		}
		if ascii {
			return "A"
		}
		return "∀"
	case Iota:
		if ascii {
			return "i"
		}
		return "ι"
	}
	return ""
}

func formatConn(c Conn, ascii bool) string {
	self := prec(c)
	wrap := func(child Term, strict bool) string {
		s := format(child, ascii)
		p := prec(child)
		if p > self || (strict && p == self && p > precAtom) {
			return "[" + s + "]"
		}
		return s
	}

	switch c.Op {
	case Not:
		if len(c.Args) != 1 {
			break
		}
		return "~" + wrap(c.Args[0], false)
	case Implies, Iff:
		if len(c.Args) != 2 {
			break
		}
		sym := " -> "
		if c.Op == Iff {
			sym = " <-> "
		}
		// Right-associative: only the left operand needs brackets at equal precedence.
		return wrap(c.Args[0], true) + sym + wrap(c.Args[1], false)
	case And, Or:
		sym := " & "
		if c.Op == Or {
			sym = " | "
		}
		parts := make([]string, len(c.Args))
		for i, a := range c.Args {
			// The parser nests to the right, so the last operand may stay bare.
			parts[i] = wrap(a, i < len(c.Args)-1)
		}
		return strings.Join(parts, sym)
	}
	return c.Op.String() + "(" + strings.Join(lo.Map(c.Args, func(a Term, _ int) string {
		return format(a, ascii)
	}), ", ") + ")"
}
