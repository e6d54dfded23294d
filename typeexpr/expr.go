package typeexpr

import "strings"

// Expr is a syntactic type expression.
type Expr struct {
	Name  string
	Args  []Expr
	Pos   int  // 1-based column in the source text, 0 if built in code
	Tuple bool // Args are tuple elements and Name is empty
}

// Named builds a name expression with optional generic arguments.
func Named(name string, args ...Expr) Expr {
	return Expr{Name: name, Args: args}
}

// TupleOf builds a tuple expression.
func TupleOf(elems ...Expr) Expr {
	return Expr{Tuple: true, Args: append([]Expr{}, elems...)}
}

// String renders the expression back into text.
func (e Expr) String() string {
	var b strings.Builder
	e.write(&b)
	return b.String()
}

func (e Expr) write(b *strings.Builder) {
	if e.Tuple {
		b.WriteByte('(')
		for i, a := range e.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			a.write(b)
		}
		if len(e.Args) == 1 {
			b.WriteByte(',')
		}
		b.WriteByte(')')
		return
	}
	b.WriteString(e.Name)
	if len(e.Args) == 0 {
		return
	}
	b.WriteByte('<')
	for i, a := range e.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		a.write(b)
	}
	b.WriteByte('>')
}
