package expression

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/sadhak/backend/internal/providers/math/common"
)

// String renders r with terms in descending degree order, e.g.
// "2*x**2 + 3*x - 5" or "(x - 1)/(x + 2)".
func (r Rational) String() string {
	if r.num.isZero() {
		if r.inexact {
			return "0.0"
		}
		return "0"
	}
	if d, ok := r.den.constant(); ok {
		return formatPoly(r.num.scale(d.Inv(d)), r.inexact)
	}

	num := formatPoly(r.num, r.inexact)
	if len(r.num) > 1 {
		num = "(" + num + ")"
	}
	den := formatPoly(r.den, r.inexact)
	if len(r.den) > 1 || !isBareMonomial(r.den) {
		den = "(" + den + ")"
	}
	return num + "/" + den
}

func isBareMonomial(p Poly) bool {
	if len(p) != 1 {
		return false
	}
	m, c := p.leading()
	if c.Cmp(big.NewRat(1, 1)) != 0 {
		return false
	}
	factors := 0
	for _, e := range m {
		if e > 0 {
			factors++
		}
	}
	return factors == 1
}

func formatPoly(p Poly, inexact bool) string {
	var b strings.Builder
	for i, m := range p.monomials() {
		c := p[m]
		neg := c.Sign() < 0
		abs := new(big.Rat).Abs(c)
		switch {
		case i == 0 && neg:
			b.WriteString("-")
		case i > 0 && neg:
			b.WriteString(" - ")
		case i > 0:
			b.WriteString(" + ")
		}
		b.WriteString(formatTerm(abs, m, inexact))
	}
	return b.String()
}

// formatTerm renders a non-negative coefficient times a monomial.
func formatTerm(c *big.Rat, m Monomial, inexact bool) string {
	vars := formatMonomial(m)
	if inexact {
		f, _ := c.Float64()
		if vars == "" {
			return common.FormatNumber(f)
		}
		if f == 1 {
			return vars
		}
		return common.FormatNumber(f) + "*" + vars
	}

	if vars == "" {
		return c.RatString()
	}
	var b strings.Builder
	if c.Num().Cmp(big.NewInt(1)) != 0 {
		b.WriteString(c.Num().String())
		b.WriteString("*")
	}
	b.WriteString(vars)
	if !c.IsInt() {
		b.WriteString("/")
		b.WriteString(c.Denom().String())
	}
	return b.String()
}

func formatMonomial(m Monomial) string {
	var parts []string
	for i, e := range m {
		if e == 0 {
			continue
		}
		name := string(rune('a' + i))
		if e > 1 {
			name += "**" + strconv.Itoa(e)
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, "*")
}
