// Package validate provides composable field validation rules applied at the
// transport boundary, before requests reach the auth core.
package validate

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Rule checks a single value and returns a human-readable problem, or ""
// when the value passes.
type Rule func(value any) string

// Field pairs a named value with the rules it must satisfy.
type Field struct {
	Name  string
	Value any
	Rules []Rule
}

// Apply evaluates every field against its rules and collects the first
// failure per field. A nil result means the input is valid.
func Apply(fields ...Field) map[string]any {
	var details map[string]any
	for _, f := range fields {
		for _, rule := range f.Rules {
			if msg := rule(f.Value); msg != "" {
				if details == nil {
					details = map[string]any{}
				}
				details[f.Name] = msg
				break
			}
		}
	}
	return details
}

// Required fails on empty strings.
func Required() Rule {
	return func(value any) string {
		if s, ok := value.(string); ok && s == "" {
			return "must not be empty"
		}
		return ""
	}
}

// MinLen fails on strings shorter than n characters.
func MinLen(n int) Rule {
	return func(value any) string {
		if s, ok := value.(string); ok && utf8.RuneCountInString(s) < n {
			return fmt.Sprintf("must be at least %d characters", n)
		}
		return ""
	}
}

// Matches fails on strings not matching the pattern.
func Matches(pattern *regexp.Regexp, problem string) Rule {
	return func(value any) string {
		if s, ok := value.(string); ok && !pattern.MatchString(s) {
			return problem
		}
		return ""
	}
}

// In fails on integers outside the allowed set.
func In(allowed ...int) Rule {
	return func(value any) string {
		n, ok := value.(int)
		if !ok {
			return "must be a number"
		}
		for _, a := range allowed {
			if n == a {
				return ""
			}
		}
		return fmt.Sprintf("must be one of %v", allowed)
	}
}
