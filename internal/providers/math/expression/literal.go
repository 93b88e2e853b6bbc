package expression

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/sadhak/backend/internal/providers/math/common"
)

// maxPowBits bounds the size of an integer power result.
const maxPowBits = 1 << 16

// number is an arbitrary-precision integer or a float. Arithmetic between
// two integers stays exact except for "/", which always yields a float.
type number struct {
	i *big.Int
	f float64
}

func intNumber(i *big.Int) number { return number{i: i} }
func floatNumber(f float64) number { return number{f: f} }

func (n number) isInt() bool { return n.i != nil }

func (n number) float() (float64, error) {
	if n.i == nil {
		return n.f, nil
	}
	f, _ := new(big.Float).SetInt(n.i).Float64()
	if math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: integer too large to convert to float", ErrOverflow)
	}
	return f, nil
}

func (n number) isZero() bool {
	if n.i != nil {
		return n.i.Sign() == 0
	}
	return n.f == 0
}

func (n number) format() (string, error) {
	if n.i != nil {
		return n.i.String(), nil
	}
	if math.IsNaN(n.f) || math.IsInf(n.f, 0) {
		return "", ErrOverflow
	}
	return common.FormatNumber(n.f), nil
}

// evaluateLiteral computes a purely numeric expression. Operator precedence
// from loosest to tightest is + -, then * / // %, then unary signs, then **
// (right associative, so -2**2 is -4 and 2**-1 is 0.5).
func (e *Evaluator) evaluateLiteral(ctx context.Context, tokens []token) (string, error) {
	p := &literalParser{ctx: ctx, tokens: withImplicitProducts(tokens)}
	n, err := p.sum()
	if err != nil {
		return "", err
	}
	if p.pos < len(p.tokens) {
		return "", fmt.Errorf("%w: unexpected %q", ErrSyntax, p.tokens[p.pos].text)
	}
	return n.format()
}

// withImplicitProducts inserts "*" between adjacent operands, so "2(3+4)"
// reads as "2*(3+4)".
func withImplicitProducts(tokens []token) []token {
	out := make([]token, 0, len(tokens))
	for i, t := range tokens {
		if i > 0 && implicitProduct(tokens[i-1], t) {
			out = append(out, token{kind: tokOperator, text: "*"})
		}
		out = append(out, t)
	}
	return out
}

type literalParser struct {
	ctx    context.Context
	tokens []token
	pos    int
}

func (p *literalParser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *literalParser) peekOperator(ops ...string) (string, bool) {
	t, ok := p.peek()
	if !ok || t.kind != tokOperator {
		return "", false
	}
	for _, op := range ops {
		if t.text == op {
			return op, true
		}
	}
	return "", false
}

func (p *literalParser) sum() (number, error) {
	left, err := p.term()
	if err != nil {
		return number{}, err
	}
	for {
		op, ok := p.peekOperator("+", "-")
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.term()
		if err != nil {
			return number{}, err
		}
		if op == "+" {
			left = add(left, right)
		} else {
			left = add(left, negate(right))
		}
	}
}

func (p *literalParser) term() (number, error) {
	left, err := p.factor()
	if err != nil {
		return number{}, err
	}
	for {
		op, ok := p.peekOperator("*", "/", "//", "%")
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.factor()
		if err != nil {
			return number{}, err
		}
		switch op {
		case "*":
			left = multiply(left, right)
		case "/":
			left, err = trueDivide(left, right)
		case "//":
			left, _, err = floorDivide(left, right)
		default:
			_, left, err = floorDivide(left, right)
		}
		if err != nil {
			return number{}, err
		}
	}
}

func (p *literalParser) factor() (number, error) {
	if err := p.ctx.Err(); err != nil {
		return number{}, ErrTimeout
	}
	if op, ok := p.peekOperator("+", "-"); ok {
		p.pos++
		n, err := p.factor()
		if err != nil || op == "+" {
			return n, err
		}
		return negate(n), nil
	}
	return p.power()
}

func (p *literalParser) power() (number, error) {
	base, err := p.atom()
	if err != nil {
		return number{}, err
	}
	if _, ok := p.peekOperator("**"); !ok {
		return base, nil
	}
	p.pos++
	exp, err := p.factor()
	if err != nil {
		return number{}, err
	}
	return raise(base, exp)
}

func (p *literalParser) atom() (number, error) {
	t, ok := p.peek()
	if !ok {
		return number{}, fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	}
	p.pos++

	switch t.kind {
	case tokNumber:
		return parseNumber(t.text)
	case tokLParen:
		n, err := p.sum()
		if err != nil {
			return number{}, err
		}
		if closing, ok := p.peek(); !ok || closing.kind != tokRParen {
			return number{}, fmt.Errorf("%w: '(' was never closed", ErrSyntax)
		}
		p.pos++
		return n, nil
	}
	return number{}, fmt.Errorf("%w: unexpected %q", ErrSyntax, t.text)
}

func parseNumber(lit string) (number, error) {
	if strings.ContainsAny(lit, ".eE") {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil && !math.IsInf(f, 0) {
			return number{}, fmt.Errorf("%w: bad number %q", ErrSyntax, lit)
		}
		return floatNumber(f), nil
	}
	i, ok := new(big.Int).SetString(lit, 10)
	if !ok {
		return number{}, fmt.Errorf("%w: bad number %q", ErrSyntax, lit)
	}
	return intNumber(i), nil
}

func negate(n number) number {
	if n.isInt() {
		return intNumber(new(big.Int).Neg(n.i))
	}
	return floatNumber(-n.f)
}

// floats converts both operands, reporting integers too large for a float.
func floats(a, b number) (float64, float64, error) {
	af, err := a.float()
	if err != nil {
		return 0, 0, err
	}
	bf, err := b.float()
	return af, bf, err
}

func add(a, b number) number {
	if a.isInt() && b.isInt() {
		return intNumber(new(big.Int).Add(a.i, b.i))
	}
	af, bf, err := floats(a, b)
	if err != nil {
		return floatNumber(math.Inf(1))
	}
	return floatNumber(af + bf)
}

func multiply(a, b number) number {
	if a.isInt() && b.isInt() {
		return intNumber(new(big.Int).Mul(a.i, b.i))
	}
	af, bf, err := floats(a, b)
	if err != nil {
		return floatNumber(math.Inf(1))
	}
	return floatNumber(af * bf)
}

func trueDivide(a, b number) (number, error) {
	if b.isZero() {
		return number{}, ErrDivisionByZero
	}
	if a.isInt() && b.isInt() {
		f, _ := new(big.Rat).SetFrac(a.i, b.i).Float64()
		if math.IsInf(f, 0) {
			return number{}, fmt.Errorf("%w: integer division result too large for a float", ErrOverflow)
		}
		return floatNumber(f), nil
	}
	af, bf, err := floats(a, b)
	if err != nil {
		return number{}, err
	}
	return floatNumber(af / bf), nil
}

// floorDivide returns the floored quotient and the remainder carrying the
// divisor's sign, so -7 // 3 is -3 and -7 % 3 is 2.
func floorDivide(a, b number) (number, number, error) {
	if b.isZero() {
		return number{}, number{}, ErrDivisionByZero
	}
	if a.isInt() && b.isInt() {
		q, m := new(big.Int).QuoRem(a.i, b.i, new(big.Int))
		if m.Sign() != 0 && m.Sign() != b.i.Sign() {
			q.Sub(q, big.NewInt(1))
			m.Add(m, b.i)
		}
		return intNumber(q), intNumber(m), nil
	}

	af, bf, err := floats(a, b)
	if err != nil {
		return number{}, number{}, err
	}
	mod := math.Mod(af, bf)
	div := (af - mod) / bf
	if mod != 0 {
		if (bf < 0) != (mod < 0) {
			mod += bf
			div--
		}
	} else {
		mod = math.Copysign(0, bf)
	}
	var quo float64
	if div != 0 {
		quo = math.Floor(div)
		if div-quo > 0.5 {
			quo++
		}
	} else {
		quo = math.Copysign(0, af/bf)
	}
	return floatNumber(quo), floatNumber(mod), nil
}

func raise(base, exp number) (number, error) {
	if base.isInt() && exp.isInt() && exp.i.Sign() >= 0 {
		return intPower(base.i, exp.i)
	}

	bf, ef, err := floats(base, exp)
	if err != nil {
		return number{}, err
	}
	if bf == 0 && ef < 0 {
		return number{}, fmt.Errorf("%w: zero cannot be raised to a negative power", ErrDivisionByZero)
	}
	if bf < 0 && ef != math.Trunc(ef) {
		return number{}, fmt.Errorf("%w: fractional power of a negative number", ErrUnsupported)
	}
	r := math.Pow(bf, ef)
	if math.IsInf(r, 0) {
		return number{}, ErrOverflow
	}
	return floatNumber(r), nil
}

func intPower(base, exp *big.Int) (number, error) {
	switch {
	case exp.Sign() == 0:
		return intNumber(big.NewInt(1)), nil
	case base.Sign() == 0 || base.CmpAbs(big.NewInt(1)) == 0:
		if base.Sign() < 0 && exp.Bit(0) == 0 {
			return intNumber(big.NewInt(1)), nil
		}
		return intNumber(new(big.Int).Set(base)), nil
	}
	if !exp.IsInt64() || exp.Int64() > int64(maxPowBits/base.BitLen()) {
		return number{}, fmt.Errorf("%w: exponent %s is too large", ErrTooComplex, exp.String())
	}
	return intNumber(new(big.Int).Exp(base, exp, nil)), nil
}
