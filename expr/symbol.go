package expr

import "strings"

// Symbol is a named mathematical placeholder. Identity is the name.
type Symbol struct {
	name string
}

// Var returns the symbol with the given name.
func Var(name string) *Symbol { return &Symbol{name: name} }

func (s *Symbol) Name() string    { return s.name }
func (s *Symbol) Simplify() Expr  { return s }
func (s *Symbol) String() string  { return s.name }
func (s *Symbol) sortClass() int  { return classSymbol }

func (s *Symbol) Sub(name string, value Expr) Expr {
	if s.name == name {
		return value
	}
	return s
}

func (s *Symbol) Diff(name string) Expr {
	if s.name == name {
		return Int(1)
	}
	return Int(0)
}

func (s *Symbol) Equal(o Expr) bool {
	t, ok := o.(*Symbol)
	return ok && s.name == t.name
}

// greekNames maps spelled-out letters common in growth models to
// their LaTeX commands.
var greekNames = map[string]string{
	"alpha": `\alpha`, "beta": `\beta`, "gamma": `\gamma`,
	"delta": `\delta`, "lambda": `\lambda`, "mu": `\mu`,
	"sigma": `\sigma`, "tau": `\tau`, "omega": `\omega`,
}

// LaTeX renders underscored names as subscripts (p_0 becomes p_{0})
// and spelled-out greek letters as commands.
func (s *Symbol) LaTeX() string {
	if g, ok := greekNames[s.name]; ok {
		return g
	}
	if i := strings.IndexByte(s.name, '_'); i > 0 && i < len(s.name)-1 {
		return s.name[:i] + "_{" + s.name[i+1:] + "}"
	}
	return s.name
}
