// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package schema

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// registerBuiltins installs the scalar kinds named in §4.4's reserved list
// and the constraint tables of §4.4's "Constraints recognized" table. Date
// and time formats follow §6.3.
func registerBuiltins(r *Registry) {
	r.Register(&KindEntry{
		Name:  "str",
		Shape: func(v any) bool { _, ok := v.(string); return ok },
		Aliases: map[string]string{
			"min_length": "min",
			"max_length": "max",
		},
		Constraints: map[string]ConstraintValidator{
			"min":     strMinLength,
			"max":     strMaxLength,
			"pattern": strPattern,
			"enum":    enumConstraint,
			"format":  strFormat,
		},
	})

	r.Register(&KindEntry{
		Name:  "int",
		Shape: func(v any) bool { _, ok := v.(int64); return ok },
		Constraints: map[string]ConstraintValidator{
			"min":  numMin,
			"max":  numMax,
			"enum": enumConstraint,
		},
	})

	r.Register(&KindEntry{
		Name:  "float",
		Shape: func(v any) bool { _, ok := v.(float64); return ok },
		Constraints: map[string]ConstraintValidator{
			"min":       numMin,
			"max":       numMax,
			"enum":      enumConstraint,
			"precision": floatPrecision,
		},
	})

	r.Register(&KindEntry{
		Name:  "bool",
		Shape: func(v any) bool { _, ok := v.(bool); return ok },
		Constraints: map[string]ConstraintValidator{
			"enum": enumConstraint,
		},
	})

	r.Register(&KindEntry{
		Name:  "null",
		Shape: func(v any) bool { return v == nil },
	})

	r.Register(&KindEntry{
		Name:  "any",
		Shape: func(v any) bool { return true },
	})

	for _, kind := range []string{"date", "time", "datetime"} {
		kind := kind
		r.Register(&KindEntry{
			Name: kind,
			Shape: func(v any) bool {
				s, ok := v.(string)
				if !ok {
					return false
				}
				_, err := parseTemporal(kind, s, "")
				return err == nil
			},
			Constraints: map[string]ConstraintValidator{
				"min":    temporalMin(kind),
				"max":    temporalMax(kind),
				"format": temporalFormat(kind),
			},
		})
	}

	r.Register(&KindEntry{
		Name:  "timestamp",
		Shape: func(v any) bool { _, ok := v.(int64); return ok },
		Constraints: map[string]ConstraintValidator{
			"min":       numMin,
			"max":       numMax,
			"precision": timestampPrecision,
		},
	})

	// "list" and "object" are not data kinds a document value can declare
	// (§4.4 has no bare `list`/`object` type name); these pseudo-entries
	// exist only so the constraint parser can canonicalize aliases and
	// reject unknown constraint names for `[...]` and `{...}` atoms the
	// same data-driven way it does for scalar kinds. Actual enforcement
	// happens structurally (schema.checkListConstraints, validate.Validate),
	// not through these validators.
	noop := func(ConstraintValue, any) string { return "" }
	r.Register(&KindEntry{
		Name: "list",
		Aliases: map[string]string{
			"min": "min_items",
			"max": "max_items",
		},
		Constraints: map[string]ConstraintValidator{
			"min_items": noop,
			"max_items": noop,
			"unique":    noop,
		},
	})
	r.Register(&KindEntry{
		Name: "object",
		Aliases: map[string]string{
			"min": "min_properties",
			"max": "max_properties",
		},
		Constraints: map[string]ConstraintValidator{
			"min_properties": noop,
			"max_properties": noop,
			"required_keys":  noop,
			"ext":            noop,
		},
	})
}

func numAsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func numMin(c ConstraintValue, v any) string {
	want, ok := c.AsFloat64()
	if !ok {
		return "min constraint must be numeric"
	}
	got, ok := numAsFloat(v)
	if !ok {
		return "value is not numeric"
	}
	if got < want {
		return fmt.Sprintf("%v is less than the minimum %v", got, want)
	}
	return ""
}

func numMax(c ConstraintValue, v any) string {
	want, ok := c.AsFloat64()
	if !ok {
		return "max constraint must be numeric"
	}
	got, ok := numAsFloat(v)
	if !ok {
		return "value is not numeric"
	}
	if got > want {
		return fmt.Sprintf("%v is greater than the maximum %v", got, want)
	}
	return ""
}

func strMinLength(c ConstraintValue, v any) string {
	s, _ := v.(string)
	n, ok := c.AsFloat64()
	if !ok {
		return "min constraint must be numeric"
	}
	if len([]rune(s)) < int(n) {
		return fmt.Sprintf("string shorter than minimum length %d", int(n))
	}
	return ""
}

func strMaxLength(c ConstraintValue, v any) string {
	s, _ := v.(string)
	n, ok := c.AsFloat64()
	if !ok {
		return "max constraint must be numeric"
	}
	if len([]rune(s)) > int(n) {
		return fmt.Sprintf("string longer than maximum length %d", int(n))
	}
	return ""
}

func strPattern(c ConstraintValue, v any) string {
	s, _ := v.(string)
	if !c.IsString() {
		return "pattern constraint must be a string"
	}
	re, err := regexp.Compile(c.Str)
	if err != nil {
		return fmt.Sprintf("invalid pattern: %s", err)
	}
	if !re.MatchString(s) {
		return fmt.Sprintf("does not match pattern %q", c.Str)
	}
	return ""
}

// emailPattern and uriPattern are intentionally permissive: §6.3 leaves
// "format" semantics implementation-defined beyond naming email/uri.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var uriPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

func strFormat(c ConstraintValue, v any) string {
	s, _ := v.(string)
	if !c.IsString() {
		return "format constraint must be a string"
	}
	switch c.Str {
	case "email":
		if !emailPattern.MatchString(s) {
			return "does not look like an email address"
		}
	case "uri":
		if !uriPattern.MatchString(s) {
			return "does not look like a URI"
		}
	default:
		return fmt.Sprintf("unknown format %q", c.Str)
	}
	return ""
}

func enumConstraint(c ConstraintValue, v any) string {
	if !c.IsList() {
		return "enum constraint must be a list"
	}
	for _, want := range c.List {
		if constraintValueEqualsNative(want, v) {
			return ""
		}
	}
	return "value is not one of the enumerated values"
}

func constraintValueEqualsNative(c ConstraintValue, v any) bool {
	switch n := v.(type) {
	case string:
		return c.IsString() && c.Str == n
	case int64:
		f, ok := c.AsFloat64()
		return ok && float64(n) == f
	case float64:
		f, ok := c.AsFloat64()
		return ok && n == f
	case bool:
		return c.IsBool() && c.Bool == n
	case nil:
		return c.IsNull
	}
	return false
}

func floatPrecision(c ConstraintValue, v any) string {
	f, ok := v.(float64)
	if !ok {
		return "value is not a float"
	}
	n, ok := c.AsFloat64()
	if !ok {
		return "precision constraint must be numeric"
	}
	maxDigits := int(n)
	s := fmt.Sprintf("%g", f)
	dot := -1
	for i, ch := range s {
		if ch == '.' {
			dot = i
			break
		}
	}
	if dot == -1 {
		return ""
	}
	if len(s)-dot-1 > maxDigits {
		return fmt.Sprintf("more than %d fractional digits", maxDigits)
	}
	return ""
}

// strftimeToGo maps the custom strftime-style directives named in §6.3 onto
// Go reference-time layout elements, for custom `format` strings.
var strftimeToGo = strings.NewReplacer(
	"%Y", "2006", "%m", "01", "%d", "02",
	"%H", "15", "%M", "04", "%S", "05",
	"%I", "03", "%p", "PM", "%b", "Jan", "%B", "January",
	"%a", "Mon", "%A", "Monday",
)

func parseTemporal(kind, s, format string) (time.Time, error) {
	if format != "" && format != "rfc3339" && format != "iso8601" {
		return time.Parse(strftimeToGo.Replace(format), s)
	}
	switch kind {
	case "date":
		return time.Parse("2006-01-02", s)
	case "time":
		if t, err := time.Parse("15:04:05.999999999", s); err == nil {
			return t, nil
		}
		return time.Parse("15:04:05", s)
	case "datetime":
		if format == "iso8601" {
			if t, err := time.Parse("2006-01-02 15:04:05Z07:00", s); err == nil {
				return t, nil
			}
		}
		return time.Parse(time.RFC3339, s)
	}
	return time.Time{}, fmt.Errorf("unknown temporal kind %q", kind)
}

func temporalMin(kind string) ConstraintValidator {
	return func(c ConstraintValue, v any) string {
		s, _ := v.(string)
		got, err := parseTemporal(kind, s, "")
		if err != nil {
			return "value does not parse under the default format"
		}
		want, err := parseTemporal(kind, c.Str, "")
		if err != nil {
			return "min constraint is not a valid temporal value"
		}
		if got.Before(want) {
			return fmt.Sprintf("%s is before the minimum %s", s, c.Str)
		}
		return ""
	}
}

func temporalMax(kind string) ConstraintValidator {
	return func(c ConstraintValue, v any) string {
		s, _ := v.(string)
		got, err := parseTemporal(kind, s, "")
		if err != nil {
			return "value does not parse under the default format"
		}
		want, err := parseTemporal(kind, c.Str, "")
		if err != nil {
			return "max constraint is not a valid temporal value"
		}
		if got.After(want) {
			return fmt.Sprintf("%s is after the maximum %s", s, c.Str)
		}
		return ""
	}
}

func temporalFormat(kind string) ConstraintValidator {
	return func(c ConstraintValue, v any) string {
		s, _ := v.(string)
		if !c.IsString() {
			return "format constraint must be a string"
		}
		if _, err := parseTemporal(kind, s, c.Str); err != nil {
			return fmt.Sprintf("does not match format %q: %s", c.Str, err)
		}
		return ""
	}
}

func timestampPrecision(c ConstraintValue, v any) string {
	n, ok := v.(int64)
	if !ok {
		return "value is not an integer"
	}
	if !c.IsString() {
		return "precision constraint must be one of seconds|milliseconds|microseconds|nanoseconds"
	}
	digits := len(fmt.Sprintf("%d", n))
	if n < 0 {
		digits = len(fmt.Sprintf("%d", -n))
	}
	var band int
	switch c.Str {
	case "seconds":
		band = 10
	case "milliseconds":
		band = 13
	case "microseconds":
		band = 16
	case "nanoseconds":
		band = 19
	default:
		return fmt.Sprintf("unknown precision %q", c.Str)
	}
	if digits > band {
		return fmt.Sprintf("timestamp has more digits than the %s band allows", c.Str)
	}
	return ""
}
