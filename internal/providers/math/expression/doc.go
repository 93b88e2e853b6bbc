/*
Package expression evaluates free-form arithmetic typed by users.

Input is normalised first: trailing punctuation is dropped, "^" becomes
"**", the typographic operators ×, ÷ and − are mapped to ASCII and all
whitespace is removed.

Purely numeric input is evaluated exactly. Integers never lose precision,
"/" always gives a float, and "//" and "%" floor toward negative infinity:

	ev := expression.New(expression.WithTimeout(time.Second))
	out, err := ev.Evaluate(ctx, "2+3*4") // "14"
	ev.Evaluate(ctx, "-7//2")             // "-4"

Input with letters is parsed with the goja parser and reduced to a quotient
of polynomials with exact rational coefficients. Implicit multiplication is
accepted, and a trailing clause binds unknowns before simplifying:

	ev.Evaluate(ctx, "(x^2+2x+1)/(x+1)")         // "x + 1"
	ev.Evaluate(ctx, "2x^2 + 3x - 5 when x=3")   // "22"

Failures are sentinel errors; FormatError renders them for display.
*/
package expression
