package expression

import (
	"math/big"
	"sort"
)

// numVars is the number of single-letter unknowns a polynomial can carry.
const numVars = 26

// Monomial holds the exponent of each unknown, indexed a..z.
type Monomial [numVars]int

func (m Monomial) degree() int {
	d := 0
	for _, e := range m {
		d += e
	}
	return d
}

func (m Monomial) mul(o Monomial) Monomial {
	var out Monomial
	for i := range m {
		out[i] = m[i] + o[i]
	}
	return out
}

// divides reports whether m divides o.
func (m Monomial) divides(o Monomial) bool {
	for i := range m {
		if m[i] > o[i] {
			return false
		}
	}
	return true
}

func (m Monomial) div(o Monomial) Monomial {
	var out Monomial
	for i := range m {
		out[i] = m[i] - o[i]
	}
	return out
}

// less orders monomials by total degree, then lexicographically with a > b > ... > z.
func (m Monomial) less(o Monomial) bool {
	if dm, do := m.degree(), o.degree(); dm != do {
		return dm < do
	}
	for i := range m {
		if m[i] != o[i] {
			return m[i] < o[i]
		}
	}
	return false
}

func minMonomial(a, b Monomial) Monomial {
	var out Monomial
	for i := range a {
		out[i] = min(a[i], b[i])
	}
	return out
}

// Poly is a polynomial with rational coefficients. Zero coefficients are never stored.
type Poly map[Monomial]*big.Rat

func constPoly(r *big.Rat) Poly {
	if r.Sign() == 0 {
		return Poly{}
	}
	return Poly{Monomial{}: new(big.Rat).Set(r)}
}

func varPoly(idx int) Poly {
	var m Monomial
	m[idx] = 1
	return Poly{m: big.NewRat(1, 1)}
}

func (p Poly) clone() Poly {
	out := make(Poly, len(p))
	for m, c := range p {
		out[m] = new(big.Rat).Set(c)
	}
	return out
}

func (p Poly) isZero() bool { return len(p) == 0 }

// constant returns the value of p when it has no unknowns.
func (p Poly) constant() (*big.Rat, bool) {
	switch len(p) {
	case 0:
		return new(big.Rat), true
	case 1:
		if c, ok := p[Monomial{}]; ok {
			return new(big.Rat).Set(c), true
		}
	}
	return nil, false
}

func (p Poly) isOne() bool {
	c, ok := p.constant()
	return ok && c.Cmp(big.NewRat(1, 1)) == 0
}

func (p Poly) addTerm(m Monomial, c *big.Rat) {
	if cur, ok := p[m]; ok {
		sum := new(big.Rat).Add(cur, c)
		if sum.Sign() == 0 {
			delete(p, m)
			return
		}
		p[m] = sum
		return
	}
	if c.Sign() != 0 {
		p[m] = new(big.Rat).Set(c)
	}
}

func (p Poly) add(q Poly) Poly {
	out := p.clone()
	for m, c := range q {
		out.addTerm(m, c)
	}
	return out
}

func (p Poly) neg() Poly {
	out := make(Poly, len(p))
	for m, c := range p {
		out[m] = new(big.Rat).Neg(c)
	}
	return out
}

func (p Poly) sub(q Poly) Poly { return p.add(q.neg()) }

func (p Poly) mul(q Poly) Poly {
	out := Poly{}
	for m1, c1 := range p {
		for m2, c2 := range q {
			out.addTerm(m1.mul(m2), new(big.Rat).Mul(c1, c2))
		}
	}
	return out
}

func (p Poly) scale(r *big.Rat) Poly {
	if r.Sign() == 0 {
		return Poly{}
	}
	out := make(Poly, len(p))
	for m, c := range p {
		out[m] = new(big.Rat).Mul(c, r)
	}
	return out
}

func (p Poly) equal(q Poly) bool {
	if len(p) != len(q) {
		return false
	}
	for m, c := range p {
		d, ok := q[m]
		if !ok || c.Cmp(d) != 0 {
			return false
		}
	}
	return true
}

// monomials returns the monomials of p from highest to lowest.
func (p Poly) monomials() []Monomial {
	out := make([]Monomial, 0, len(p))
	for m := range p {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[j].less(out[i]) })
	return out
}

func (p Poly) leading() (Monomial, *big.Rat) {
	var best Monomial
	first := true
	for m := range p {
		if first || best.less(m) {
			best = m
			first = false
		}
	}
	return best, p[best]
}

// vars returns the set of unknowns appearing in p.
func (p Poly) vars() map[int]bool {
	out := make(map[int]bool)
	for m := range p {
		for i, e := range m {
			if e > 0 {
				out[i] = true
			}
		}
	}
	return out
}

// divmod divides p by q using the leading term of q. The remainder is zero
// exactly when q divides p in the polynomial ring.
func (p Poly) divmod(q Poly) (quo, rem Poly) {
	quo, rem = Poly{}, Poly{}
	lm, lc := q.leading()
	r := p.clone()
	for !r.isZero() {
		m, c := r.leading()
		if !lm.divides(m) {
			rem.addTerm(m, c)
			delete(r, m)
			continue
		}
		t := Poly{m.div(lm): new(big.Rat).Quo(c, lc)}
		quo = quo.add(t)
		r = r.sub(t.mul(q))
	}
	return quo, rem
}

// monic scales p so its leading coefficient is one.
func (p Poly) monic() Poly {
	if p.isZero() {
		return p
	}
	_, lc := p.leading()
	return p.scale(new(big.Rat).Inv(lc))
}

// monomialContent is the largest monomial dividing every term of p.
func (p Poly) monomialContent() Monomial {
	var out Monomial
	first := true
	for m := range p {
		if first {
			out = m
			first = false
			continue
		}
		out = minMonomial(out, m)
	}
	return out
}

func (p Poly) divMonomial(m Monomial) Poly {
	out := make(Poly, len(p))
	for t, c := range p {
		out[t.div(m)] = c
	}
	return out
}

// univariateGCD runs Euclid's algorithm; both polynomials must be in at most
// one shared unknown.
func univariateGCD(a, b Poly) Poly {
	for !b.isZero() {
		_, r := a.divmod(b)
		a, b = b, r
	}
	return a.monic()
}

// integerContent returns the lcm of the coefficient denominators and the gcd
// of the coefficient numerators.
func (p Poly) integerContent() (lcm, gcd *big.Int) {
	lcm, gcd = big.NewInt(1), new(big.Int)
	for _, c := range p {
		d := c.Denom()
		g := new(big.Int).GCD(nil, nil, lcm, d)
		lcm.Mul(lcm, new(big.Int).Quo(d, g))
		gcd.GCD(nil, nil, gcd, new(big.Int).Abs(c.Num()))
	}
	return lcm, gcd
}
