package expression

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"
	jstoken "github.com/dop251/goja/token"
)

// simplify parses src and reduces it to a canonical rational form, with
// substituted unknowns replaced by their values.
func (e *Evaluator) simplify(ctx context.Context, src string, subs map[int]Substitution) (string, error) {
	prog, err := parser.ParseFile(nil, "", src, 0)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if len(prog.Body) != 1 {
		return "", fmt.Errorf("%w: expected a single expression", ErrSyntax)
	}
	stmt, ok := prog.Body[0].(*ast.ExpressionStatement)
	if !ok {
		return "", fmt.Errorf("%w: expected an expression", ErrSyntax)
	}

	c := converter{ctx: ctx, subs: subs}
	r, err := c.convert(stmt.Expression)
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

type converter struct {
	ctx  context.Context
	subs map[int]Substitution
}

func (c converter) convert(node ast.Expression) (Rational, error) {
	if err := c.ctx.Err(); err != nil {
		return Rational{}, ErrTimeout
	}

	switch n := node.(type) {
	case *ast.NumberLiteral:
		v, ok := new(big.Rat).SetString(n.Literal)
		if !ok {
			return Rational{}, fmt.Errorf("%w: bad number %q", ErrSyntax, n.Literal)
		}
		return ratConst(v, strings.ContainsAny(n.Literal, ".eE")), nil

	case *ast.Identifier:
		return c.identifier(n.Name.String())

	case *ast.UnaryExpression:
		if n.Postfix {
			return Rational{}, fmt.Errorf("%w: operator %s", ErrUnsupported, n.Operator)
		}
		operand, err := c.convert(n.Operand)
		if err != nil {
			return Rational{}, err
		}
		switch n.Operator {
		case jstoken.PLUS:
			return operand, nil
		case jstoken.MINUS:
			return operand.neg(), nil
		}
		return Rational{}, fmt.Errorf("%w: operator %s", ErrUnsupported, n.Operator)

	case *ast.BinaryExpression:
		return c.binary(n)

	case *ast.CallExpression:
		return c.call(n)
	}
	return Rational{}, fmt.Errorf("%w: %T", ErrUnsupported, node)
}

func (c converter) identifier(name string) (Rational, error) {
	if name == "pi" {
		return ratFloat(math.Pi)
	}
	if len(name) != 1 || name[0] < 'a' || name[0] > 'z' {
		return Rational{}, fmt.Errorf("%w: name %q", ErrUnsupported, name)
	}
	idx := int(name[0] - 'a')
	if s, ok := c.subs[idx]; ok {
		return ratConst(s.Value, s.Inexact), nil
	}
	return ratVar(idx), nil
}

func (c converter) binary(n *ast.BinaryExpression) (Rational, error) {
	left, err := c.convert(n.Left)
	if err != nil {
		return Rational{}, err
	}
	right, err := c.convert(n.Right)
	if err != nil {
		return Rational{}, err
	}

	switch n.Operator {
	case jstoken.PLUS:
		return left.add(right)
	case jstoken.MINUS:
		return left.sub(right)
	case jstoken.MULTIPLY:
		return left.mul(right)
	case jstoken.SLASH:
		return left.quo(right)
	case jstoken.EXPONENT:
		return left.pow(c.ctx, right)
	case jstoken.REMAINDER:
		return remainder(left, right)
	}
	return Rational{}, fmt.Errorf("%w: operator %s", ErrUnsupported, n.Operator)
}

// remainder takes the floored modulo of two constants.
func remainder(left, right Rational) (Rational, error) {
	a, okA := left.constant()
	b, okB := right.constant()
	if !okA || !okB {
		return Rational{}, fmt.Errorf("%w: modulo of an expression with unknowns", ErrUnsupported)
	}
	if b.Sign() == 0 {
		return Rational{}, ErrDivisionByZero
	}
	q := new(big.Rat).Quo(a, b)
	floor := new(big.Int).Div(q.Num(), q.Denom())
	r := new(big.Rat).Sub(a, new(big.Rat).Mul(b, new(big.Rat).SetInt(floor)))
	return ratConst(r, left.inexact || right.inexact), nil
}

func (c converter) call(n *ast.CallExpression) (Rational, error) {
	callee, ok := n.Callee.(*ast.Identifier)
	if !ok || !functions[callee.Name.String()] {
		return Rational{}, fmt.Errorf("%w: call expression", ErrUnsupported)
	}
	name := callee.Name.String()
	if len(n.ArgumentList) != 1 {
		return Rational{}, fmt.Errorf("%w: %s takes one argument", ErrUnsupported, name)
	}
	arg, err := c.convert(n.ArgumentList[0])
	if err != nil {
		return Rational{}, err
	}
	v, ok := arg.constant()
	if !ok {
		return Rational{}, fmt.Errorf("%w: %s of an expression with unknowns", ErrUnsupported, name)
	}

	if name == "abs" {
		return ratConst(v.Abs(v), arg.inexact), nil
	}
	f, _ := v.Float64()
	switch name {
	case "sqrt":
		if f < 0 {
			return Rational{}, fmt.Errorf("%w: square root of a negative number", ErrUnsupported)
		}
		if root, exact := exactSqrt(v); exact {
			return ratConst(root, arg.inexact), nil
		}
		return ratFloat(math.Sqrt(f))
	case "log":
		if f <= 0 {
			return Rational{}, fmt.Errorf("%w: logarithm of a non-positive number", ErrUnsupported)
		}
		return ratFloat(math.Log(f))
	case "exp":
		return ratFloat(math.Exp(f))
	case "sin":
		return ratFloat(math.Sin(f))
	case "cos":
		return ratFloat(math.Cos(f))
	default:
		return ratFloat(math.Tan(f))
	}
}

// exactSqrt returns the square root of a non-negative rational when both its
// numerator and denominator are perfect squares.
func exactSqrt(v *big.Rat) (*big.Rat, bool) {
	num, den := v.Num(), v.Denom()
	rn, rd := new(big.Int).Sqrt(num), new(big.Int).Sqrt(den)
	if new(big.Int).Mul(rn, rn).Cmp(num) != 0 || new(big.Int).Mul(rd, rd).Cmp(den) != 0 {
		return nil, false
	}
	return new(big.Rat).SetFrac(rn, rd), true
}
