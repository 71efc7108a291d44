package i18n

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

// Vars supplies placeholder values for a template.
type Vars map[string]any

// placeholderPattern matches from "{{" to the nearest "}}". Names are trimmed;
// an unterminated "{{" is left alone.
var placeholderPattern = regexp.MustCompile(`(?s)\{\{(.*?)\}\}`)

// Interpolate replaces every {{name}} placeholder in template with the
// matching variable. Placeholders without a variable become empty.
func Interpolate(template string, vars Vars) string {
	if !strings.Contains(template, "{{") {
		return template
	}
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := strings.TrimSpace(match[2 : len(match)-2])
		value, ok := vars[name]
		if !ok {
			return ""
		}
		return stringify(value)
	})
}

func stringify(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(value)
	}
}

// checkVars rejects values that have no sensible string form.
func checkVars(vars Vars) (string, any, bool) {
	for name, value := range vars {
		if value == nil {
			continue
		}
		if _, ok := value.(fmt.Stringer); ok {
			continue
		}
		switch reflect.TypeOf(value).Kind() {
		case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Func, reflect.Chan, reflect.Pointer, reflect.UnsafePointer, reflect.Interface:
			return name, value, false
		}
	}
	return "", nil, true
}
