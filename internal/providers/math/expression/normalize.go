package expression

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"unicode"
)

var (
	clausePattern = regexp.MustCompile(`(?i)\s+(?:when|where|at|for|with)\s+(.+)$`)
	assignPattern = regexp.MustCompile(`([a-zA-Z])\s*=\s*(-?\d+(?:\.\d+)?)`)

	operatorReplacer = strings.NewReplacer(
		"^", "**",
		"×", "*",
		"÷", "/",
		"−", "-",
		"–", "-",
	)
)

// functions are the names evaluated numerically when applied to a constant.
var functions = map[string]bool{
	"sqrt": true,
	"sin":  true,
	"cos":  true,
	"tan":  true,
	"log":  true,
	"exp":  true,
	"abs":  true,
}

// Substitution is a value bound to an unknown by a trailing clause such as
// "when x=3".
type Substitution struct {
	Value   *big.Rat
	Inexact bool
}

// Normalize trims, drops trailing punctuation, rewrites operator spellings
// and removes all whitespace.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimRight(s, ",.?!")
	s = operatorReplacer.Replace(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// SplitSubstitutions separates a trailing "when x=3, y=2" style clause from
// the expression body. Input without assignments is returned unchanged.
func SplitSubstitutions(raw string) (string, map[int]Substitution) {
	loc := clausePattern.FindStringSubmatchIndex(raw)
	if loc == nil {
		return raw, nil
	}
	clause := raw[loc[2]:loc[3]]
	matches := assignPattern.FindAllStringSubmatch(clause, -1)
	if len(matches) == 0 {
		return raw, nil
	}

	subs := make(map[int]Substitution, len(matches))
	for _, m := range matches {
		v, ok := new(big.Rat).SetString(m[2])
		if !ok {
			continue
		}
		idx := int(unicode.ToLower(rune(m[1][0])) - 'a')
		subs[idx] = Substitution{Value: v, Inexact: strings.Contains(m[2], ".")}
	}
	return raw[:loc[0]], subs
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokSymbol
	tokFunction
	tokOperator
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
}

// tokenize splits a normalised expression into tokens, breaking runs of
// letters into single-letter unknowns unless the run names a function or pi.
func tokenize(s string) ([]token, error) {
	var out []token
	rs := []rune(s)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case isDigit(r) || r == '.' && i+1 < len(rs) && isDigit(rs[i+1]):
			j := scanNumber(rs, i)
			lit := string(rs[i:j])
			if err := checkLeadingZeros(lit); err != nil {
				return nil, err
			}
			out = append(out, token{kind: tokNumber, text: lit})
			i = j

		case isLetter(r):
			j := i
			for j < len(rs) && isLetter(rs[j]) {
				j++
			}
			word := strings.ToLower(string(rs[i:j]))
			switch {
			case functions[word] && j < len(rs) && rs[j] == '(':
				out = append(out, token{kind: tokFunction, text: word})
			case word == "pi":
				out = append(out, token{kind: tokSymbol, text: word})
			default:
				for _, c := range word {
					out = append(out, token{kind: tokSymbol, text: string(c)})
				}
			}
			i = j

		case (r == '*' || r == '/') && i+1 < len(rs) && rs[i+1] == r:
			out = append(out, token{kind: tokOperator, text: string(rs[i : i+2])})
			i += 2

		case strings.ContainsRune("+-*/%", r):
			out = append(out, token{kind: tokOperator, text: string(r)})
			i++

		case r == '(':
			out = append(out, token{kind: tokLParen, text: "("})
			i++

		case r == ')':
			out = append(out, token{kind: tokRParen, text: ")"})
			i++

		default:
			return nil, fmt.Errorf("%w: unexpected character %q", ErrUnsupported, r)
		}
	}
	return out, nil
}

// render joins tokens back into source text, inserting "*" wherever two
// operands are adjacent. A unary sign binds looser than "**", so "-x**2"
// is written as "-1*x**2".
func render(tokens []token) string {
	var b strings.Builder
	for i, t := range tokens {
		if i > 0 && implicitProduct(tokens[i-1], t) {
			b.WriteByte('*')
		}
		if t.kind == tokOperator && (t.text == "-" || t.text == "+") && isUnaryPosition(tokens, i) {
			if i > 0 && tokens[i-1].text == "**" {
				b.WriteString(t.text)
				continue
			}
			if t.text == "-" {
				b.WriteString("-1*")
			}
			continue
		}
		b.WriteString(t.text)
	}
	return b.String()
}

func isUnaryPosition(tokens []token, i int) bool {
	if i == 0 {
		return true
	}
	prev := tokens[i-1]
	return prev.kind == tokOperator || prev.kind == tokLParen
}

func implicitProduct(prev, cur token) bool {
	switch prev.kind {
	case tokNumber, tokSymbol, tokRParen:
	default:
		return false
	}
	switch cur.kind {
	case tokNumber, tokSymbol, tokFunction, tokLParen:
		return true
	}
	return false
}

func hasOperator(tokens []token, op string) bool {
	for _, t := range tokens {
		if t.kind == tokOperator && t.text == op {
			return true
		}
	}
	return false
}

func hasSymbols(tokens []token) bool {
	for _, t := range tokens {
		if t.kind == tokSymbol || t.kind == tokFunction {
			return true
		}
	}
	return false
}

func scanNumber(rs []rune, i int) int {
	j := i
	for j < len(rs) && isDigit(rs[j]) {
		j++
	}
	if j < len(rs) && rs[j] == '.' {
		j++
		for j < len(rs) && isDigit(rs[j]) {
			j++
		}
	}
	// Exponent part only when digits follow, so "2e" stays 2*e.
	if j < len(rs) && (rs[j] == 'e' || rs[j] == 'E') {
		k := j + 1
		if k < len(rs) && (rs[k] == '+' || rs[k] == '-') {
			k++
		}
		if k < len(rs) && isDigit(rs[k]) {
			for k < len(rs) && isDigit(rs[k]) {
				k++
			}
			j = k
		}
	}
	return j
}

func checkLeadingZeros(lit string) error {
	if strings.ContainsAny(lit, ".eE") || len(lit) < 2 || lit[0] != '0' {
		return nil
	}
	if strings.Trim(lit, "0") == "" {
		return nil
	}
	return fmt.Errorf("%w: leading zeros in decimal integer literals are not permitted", ErrSyntax)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isLetter(r rune) bool { return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' }
