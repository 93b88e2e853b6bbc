package expression

import (
	"context"
	"fmt"
	"math"
	"math/big"
)

const (
	// maxExponent bounds integer powers of non-constant bases.
	maxExponent = 64
	// maxTerms bounds the size of any intermediate polynomial.
	maxTerms = 4096
)

// Rational is a quotient of two polynomials. Inexact is set once a floating
// point value has entered the computation.
type Rational struct {
	num, den Poly
	inexact  bool
}

func ratConst(r *big.Rat, inexact bool) Rational {
	return Rational{num: constPoly(r), den: constPoly(big.NewRat(1, 1)), inexact: inexact}
}

func ratVar(idx int) Rational {
	return Rational{num: varPoly(idx), den: constPoly(big.NewRat(1, 1))}
}

func ratFloat(f float64) (Rational, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Rational{}, ErrOverflow
	}
	r := new(big.Rat)
	r.SetFloat64(f)
	return ratConst(r, true), nil
}

// constant returns the value when r has no unknowns.
func (r Rational) constant() (*big.Rat, bool) {
	n, ok := r.num.constant()
	if !ok {
		return nil, false
	}
	d, ok := r.den.constant()
	if !ok || d.Sign() == 0 {
		return nil, false
	}
	return n.Quo(n, d), true
}

// tooLarge reports whether multiplying p by q could exceed maxTerms. It is
// checked before each product so oversized input fails fast.
func tooLarge(p, q Poly) bool {
	return len(p)*len(q) > maxTerms
}

func (r Rational) add(o Rational) (Rational, error) {
	if tooLarge(r.num, o.den) || tooLarge(o.num, r.den) || tooLarge(r.den, o.den) {
		return Rational{}, ErrTooComplex
	}
	return Rational{
		num:     r.num.mul(o.den).add(o.num.mul(r.den)),
		den:     r.den.mul(o.den),
		inexact: r.inexact || o.inexact,
	}.cancel()
}

func (r Rational) neg() Rational {
	return Rational{num: r.num.neg(), den: r.den, inexact: r.inexact}
}

func (r Rational) sub(o Rational) (Rational, error) { return r.add(o.neg()) }

func (r Rational) mul(o Rational) (Rational, error) {
	if tooLarge(r.num, o.num) || tooLarge(r.den, o.den) {
		return Rational{}, ErrTooComplex
	}
	return Rational{
		num:     r.num.mul(o.num),
		den:     r.den.mul(o.den),
		inexact: r.inexact || o.inexact,
	}.cancel()
}

func (r Rational) quo(o Rational) (Rational, error) {
	if o.num.isZero() {
		return Rational{}, ErrDivisionByZero
	}
	if tooLarge(r.num, o.den) || tooLarge(r.den, o.num) {
		return Rational{}, ErrTooComplex
	}
	return Rational{
		num:     r.num.mul(o.den),
		den:     r.den.mul(o.num),
		inexact: r.inexact || o.inexact,
	}.cancel()
}

// pow raises r to a constant exponent. Integer exponents keep the result
// exact; anything else needs a constant base and is evaluated in floating point.
func (r Rational) pow(ctx context.Context, exp Rational) (Rational, error) {
	e, ok := exp.constant()
	if !ok {
		return Rational{}, fmt.Errorf("%w: exponent must not contain unknowns", ErrUnsupported)
	}

	if e.IsInt() {
		n := e.Num()
		if !n.IsInt64() || n.Int64() > maxExponent || n.Int64() < -maxExponent {
			if base, ok := r.constant(); ok && isUnit(base) {
				return r.powInt(ctx, int(new(big.Int).Rem(n, big.NewInt(2)).Int64()))
			}
			return Rational{}, fmt.Errorf("%w: exponent %s is too large", ErrTooComplex, n.String())
		}
		out, err := r.powInt(ctx, int(n.Int64()))
		if err != nil {
			return Rational{}, err
		}
		out.inexact = out.inexact || exp.inexact
		return out, nil
	}

	base, ok := r.constant()
	if !ok {
		return Rational{}, fmt.Errorf("%w: non-integer power of an expression with unknowns", ErrUnsupported)
	}
	bf, _ := base.Float64()
	ef, _ := e.Float64()
	if bf == 0 && ef < 0 {
		return Rational{}, ErrDivisionByZero
	}
	if bf < 0 {
		return Rational{}, fmt.Errorf("%w: fractional power of a negative number", ErrUnsupported)
	}
	return ratFloat(math.Pow(bf, ef))
}

func isUnit(x *big.Rat) bool {
	return x.Cmp(big.NewRat(1, 1)) == 0 || x.Cmp(big.NewRat(-1, 1)) == 0
}

func (r Rational) powInt(ctx context.Context, n int) (Rational, error) {
	if n < 0 {
		if r.num.isZero() {
			return Rational{}, ErrDivisionByZero
		}
		r = Rational{num: r.den, den: r.num, inexact: r.inexact}
		n = -n
	}
	out := ratConst(big.NewRat(1, 1), r.inexact)
	var err error
	for range n {
		if ctx.Err() != nil {
			return Rational{}, ErrTimeout
		}
		if out, err = out.mul(r); err != nil {
			return Rational{}, err
		}
	}
	return out, nil
}

// cancel reduces r to lowest terms as far as the available gcd routines allow
// and scales it so every coefficient is an integer and the leading
// denominator coefficient is positive.
func (r Rational) cancel() (Rational, error) {
	if len(r.num) > maxTerms || len(r.den) > maxTerms {
		return Rational{}, ErrTooComplex
	}
	if r.den.isZero() {
		return Rational{}, ErrDivisionByZero
	}
	one := constPoly(big.NewRat(1, 1))
	if r.num.isZero() {
		return Rational{num: Poly{}, den: one, inexact: r.inexact}, nil
	}

	if d, ok := r.den.constant(); ok {
		return Rational{num: r.num.scale(d.Inv(d)), den: one, inexact: r.inexact}, nil
	}

	if q, rem := r.num.divmod(r.den); rem.isZero() {
		return Rational{num: q, den: one, inexact: r.inexact}, nil
	}
	if q, rem := r.den.divmod(r.num); rem.isZero() {
		_, lc := q.leading()
		if len(q) == 1 && q[Monomial{}] != nil {
			return Rational{num: constPoly(new(big.Rat).Inv(lc)), den: one, inexact: r.inexact}, nil
		}
		return Rational{num: one, den: q, inexact: r.inexact}.integral(), nil
	}

	num, den := r.num, r.den
	nv, dv := num.vars(), den.vars()
	if len(nv) == 1 && len(dv) == 1 && sameKeys(nv, dv) {
		if g := univariateGCD(num, den); !g.isOne() {
			num, _ = num.divmod(g)
			den, _ = den.divmod(g)
		}
	}

	common := minMonomial(num.monomialContent(), den.monomialContent())
	if common != (Monomial{}) {
		num = num.divMonomial(common)
		den = den.divMonomial(common)
	}

	if d, ok := den.constant(); ok {
		return Rational{num: num.scale(d.Inv(d)), den: one, inexact: r.inexact}, nil
	}
	return Rational{num: num, den: den, inexact: r.inexact}.integral(), nil
}

// integral rewrites a quotient whose denominator has unknowns so both sides
// have coprime integer coefficients and the leading denominator coefficient
// is positive.
func (r Rational) integral() Rational {
	nl, ng := r.num.integerContent()
	dl, dg := r.den.integerContent()

	// num = (ng/nl)*P and den = (dg/dl)*D with P, D primitive integer polys.
	p := r.num.scale(new(big.Rat).SetFrac(nl, ng))
	d := r.den.scale(new(big.Rat).SetFrac(dl, dg))
	c := new(big.Rat).SetFrac(new(big.Int).Mul(ng, dl), new(big.Int).Mul(nl, dg))

	num := p.scale(new(big.Rat).SetInt(c.Num()))
	den := d.scale(new(big.Rat).SetInt(c.Denom()))
	if _, lc := den.leading(); lc.Sign() < 0 {
		num, den = num.neg(), den.neg()
	}
	return Rational{num: num, den: den, inexact: r.inexact}
}

func sameKeys(a, b map[int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
