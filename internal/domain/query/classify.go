package query

import (
	"regexp"
	"strings"
)

// Category is the kind of request a prompt expresses
type Category string

const (
	Greeting   Category = "greeting"
	Compliment Category = "compliment"
	Mean       Category = "mean"
	Median     Category = "median"
	Mode       Category = "mode"
	Sum        Category = "sum"
	Subtract   Category = "subtract"
	Multiply   Category = "multiply"
	Divide     Category = "divide"
	Expression Category = "expression"
	Unknown    Category = "unknown"
)

// Categories lists every category in a stable order
var Categories = []Category{
	Greeting, Compliment, Mean, Median, Mode, Sum,
	Subtract, Multiply, Divide, Expression, Unknown,
}

type rule struct {
	category Category
	keywords []string
}

// rules are checked in order; the first rule with a keyword contained in the
// lower-cased prompt wins.
var rules = []rule{
	{Median, []string{"median"}},
	{Mode, []string{"mode", "most", "common", "frequent"}},
	{Mean, []string{"mean", "average"}},
	{Sum, []string{"sum", "total", "add"}},
	{Subtract, []string{"subtract", "difference"}},
	{Multiply, []string{"multiply", "product"}},
	{Divide, []string{"divide", "quotient"}},
	{Expression, []string{"calculate", "evaluate", "simplify", "expression"}},
}

var (
	greetingPattern = phrasePattern(
		"hi", "hello", "hey", "greetings",
		"good morning", "good afternoon", "good evening",
	)
	complimentPattern = phrasePattern(
		"thanks", "thank you", "appreciate", "grateful",
		"good job", "well done", "awesome",
	)
)

// phrasePattern matches any of the phrases as whole words, case-insensitively.
// Spaces inside a phrase match any run of whitespace.
func phrasePattern(phrases ...string) *regexp.Regexp {
	alts := make([]string, len(phrases))
	for i, p := range phrases {
		words := strings.Fields(p)
		for j, w := range words {
			words[j] = regexp.QuoteMeta(w)
		}
		alts[i] = strings.Join(words, `\s+`)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`)
}

// IsGreeting reports whether the prompt contains a greeting
func IsGreeting(prompt string) bool {
	return greetingPattern.MatchString(prompt)
}

// IsCompliment reports whether the prompt thanks or praises the calculator
func IsCompliment(prompt string) bool {
	return complimentPattern.MatchString(prompt)
}

// Classify returns the numeric category of a prompt, ignoring greetings and
// compliments.
func Classify(prompt string) Category {
	lower := strings.ToLower(prompt)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category
			}
		}
	}
	return Unknown
}

// Interpret returns the category of a prompt with greetings and compliments
// taking precedence over every numeric category.
func Interpret(prompt string) Category {
	switch {
	case IsGreeting(prompt):
		return Greeting
	case IsCompliment(prompt):
		return Compliment
	}
	return Classify(prompt)
}
