package validation

import (
	"fmt"
	"maps"
	"math"
	"regexp"
	"slices"
	"strings"
	"time"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Record is validated frontmatter. Declared fields hold coerced values; keys
// the schema does not know are copied through untouched.
type Record map[string]any

// String returns the string stored under key, or "".
func (r Record) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Bool returns the boolean stored under key, or false.
func (r Record) Bool(key string) bool {
	v, _ := r[key].(bool)
	return v
}

// Strings returns the string list stored under key.
func (r Record) Strings(key string) []string {
	switch typed := r[key].(type) {
	case []string:
		return slices.Clone(typed)
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Int returns the integral number stored under key. The second value is false
// when the key is absent, not a whole number, or outside the int range.
func (r Record) Int(key string) (int, bool) {
	switch typed := r[key].(type) {
	case int:
		return typed, true
	case int64:
		if typed >= math.MinInt && typed <= math.MaxInt {
			return int(typed), true
		}
	case uint64:
		if typed <= math.MaxInt {
			return int(typed), true
		}
	case float64:
		if typed >= math.MinInt && typed < math.MaxInt && typed == math.Trunc(typed) {
			return int(typed), true
		}
	}
	return 0, false
}

// Date parses the ISO date stored under key.
func (r Record) Date(key string) (time.Time, bool) {
	value := r.String(key)
	if value == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(ISODateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// Validate checks raw against schema. All problems are collected before
// returning so the resulting SchemaViolation lists every failing field.
func Validate(schema Schema, raw map[string]any) (Record, error) {
	record := make(Record, len(raw)+len(schema.Fields))
	for key, value := range raw {
		if _, declared := schema.Lookup(key); !declared {
			record[key] = value
		}
	}

	var issues []Issue
	for _, field := range schema.Fields {
		if field.Rule == nil {
			continue
		}
		value, present := raw[field.Name]
		if isAbsent(value, present) {
			if field.Rule.isRequired() {
				issues = append(issues, Issue{Field: field.Name, Message: "required field is missing", Value: value})
				continue
			}
			if def, ok := defaultFor(field.Rule); ok {
				record[field.Name] = def
			}
			continue
		}

		coerced, issue := check(field.Rule, value)
		if issue != "" {
			issues = append(issues, Issue{Field: field.Name, Message: issue, Value: value})
			continue
		}
		record[field.Name] = coerced
	}

	if len(issues) > 0 {
		return nil, &SchemaViolation{Subject: "frontmatter", Issues: issues}
	}
	return record, nil
}

func isAbsent(value any, present bool) bool {
	if !present || value == nil {
		return true
	}
	if s, ok := value.(string); ok && s == "" {
		return true
	}
	return false
}

func defaultFor(rule Rule) (any, bool) {
	switch r := rule.(type) {
	case StringRule:
		if r.Default != nil {
			return *r.Default, true
		}
	case BooleanRule:
		if r.Default != nil {
			return *r.Default, true
		}
	case EnumRule:
		if r.Default != nil {
			return *r.Default, true
		}
	case ListRule:
	}
	return nil, false
}

// check returns the coerced value or a non-empty message describing why value
// does not satisfy rule.
func check(rule Rule, value any) (any, string) {
	switch r := rule.(type) {
	case StringRule:
		return checkString(r, value)
	case BooleanRule:
		b, ok := value.(bool)
		if !ok {
			return nil, "expected boolean"
		}
		return b, ""
	case ListRule:
		return checkList(value)
	case EnumRule:
		s, ok := value.(string)
		if !ok || !slices.Contains(r.Allowed, s) {
			return nil, fmt.Sprintf("invalid value '%v', expected one of: %s", value, strings.Join(r.Allowed, ", "))
		}
		return s, ""
	default:
		return nil, fmt.Sprintf("unsupported rule %T", rule)
	}
}

func checkString(rule StringRule, value any) (any, string) {
	var s string
	switch typed := value.(type) {
	case string:
		s = typed
	case time.Time:
		// YAML decoders may hand back timestamps for unquoted dates.
		if rule.Format != FormatISODate {
			return nil, "expected string, got date"
		}
		s = typed.UTC().Format(ISODateLayout)
	default:
		return nil, "expected string, got " + describe(value)
	}

	if rule.Format == FormatISODate {
		if !isoDatePattern.MatchString(s) {
			return nil, "expected ISO date (YYYY-MM-DD)"
		}
		if _, err := time.Parse(ISODateLayout, s); err != nil {
			return nil, "expected ISO date (YYYY-MM-DD), got invalid calendar date"
		}
	}
	return s, ""
}

func checkList(value any) (any, string) {
	switch typed := value.(type) {
	case []string:
		return slices.Clone(typed), ""
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			s, ok := item.(string)
			if !ok {
				return nil, "all items must be strings"
			}
			out = append(out, s)
		}
		return out, ""
	default:
		return nil, "expected array of strings"
	}
}

func describe(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	case []any, []string:
		return "array"
	case map[string]any, map[any]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}

// Clone returns a shallow copy of record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}
