package lambda

import (
	"fmt"
	"strings"

	"github.com/vic/montague/pkg/types"
)

// Equal reports syntactic equality, bound variable names included.
func Equal(a, b Term) bool {
	switch x := a.(type) {
	case Const:
		y, ok := b.(Const)
		return ok && x.Name == y.Name && types.Equal(x.Type, y.Type)
	case Var:
		y, ok := b.(Var)
		return ok && x.Name == y.Name && types.Equal(x.Type, y.Type)
	case App:
		y, ok := b.(App)
		return ok && Equal(x.Fun, y.Fun) && Equal(x.Arg, y.Arg)
	case Conn:
		y, ok := b.(Conn)
		if !ok || x.Op != y.Op || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case Quant:
		y, ok := b.(Quant)
		return ok && x.Kind == y.Kind && Equal(x.Var, y.Var) && Equal(x.Body, y.Body)
	case Abs:
		y, ok := b.(Abs)
		return ok && Equal(x.Param, y.Param) && Equal(x.Body, y.Body)
	case Iota:
		y, ok := b.(Iota)
		return ok && Equal(x.Var, y.Var) && Equal(x.Body, y.Body)
	case nil:
		return b == nil
	default:
		panic(fmt.Sprintf("lambda: unknown term type %T", a))
	}
}

// AlphaEqual reports equality up to the renaming of bound variables.
func AlphaEqual(a, b Term) bool {
	return AlphaKey(a) == AlphaKey(b)
}

// AlphaKey renders term with its binders renumbered in traversal order, so two
// terms have the same key exactly when they are alpha-equivalent. Keys are not
// parseable formulas.
func AlphaKey(term Term) string {
	var sb strings.Builder
	idx := 0
	var walk func(Term, map[string]string)
	walk = func(t Term, env map[string]string) {
		switch v := t.(type) {
		case Const:
			fmt.Fprintf(&sb, "c:%s:%s", v.Name, typeKey(v.Type))
		case Var:
			if canon, ok := env[v.Name]; ok {
				fmt.Fprintf(&sb, "b:%s:%s", canon, typeKey(v.Type))
			} else {
				fmt.Fprintf(&sb, "f:%s:%s", v.Name, typeKey(v.Type))
			}
		case App:
			sb.WriteString("@(")
			walk(v.Fun, env)
			sb.WriteString(",")
			walk(v.Arg, env)
			sb.WriteString(")")
		case Conn:
			fmt.Fprintf(&sb, "%s(", v.Op)
			for i, a := range v.Args {
				if i > 0 {
					sb.WriteString(",")
				}
				walk(a, env)
			}
			sb.WriteString(")")
		default:
			param, body, ok := binder(t)
			if !ok {
				panic(fmt.Sprintf("lambda: unknown term type %T", t))
			}
			canon := fmt.Sprintf("#%d", idx)
			idx++
			old, had := env[param.Name]
			env[param.Name] = canon
			fmt.Fprintf(&sb, "%s[%s:%s](", binderTag(t), canon, typeKey(param.Type))
			walk(body, env)
			sb.WriteString(")")
			if had {
				env[param.Name] = old
			} else {
				delete(env, param.Name)
			}
		}
	}
	walk(term, make(map[string]string))
	return sb.String()
}

func binderTag(t Term) string {
	switch v := t.(type) {
	case Abs:
		return "L"
	case Quant:
		return v.Kind.String()
	case Iota:
		return "Iota"
	}
	return "?"
}

func typeKey(t types.Type) string {
	if t == nil {
		return "?"
	}
	return t.Concise()
}
