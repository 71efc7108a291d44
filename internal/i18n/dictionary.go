package i18n

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/folio-press/folio/internal/validation"
)

// Dictionary maps a language code to a nested tree of string templates.
type Dictionary map[string]map[string]any

// Format identifies how dictionary bytes are encoded.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var dictionarySchema = sync.OnceValues(validation.CompileDictionary)

// Decode parses and validates dictionary bytes.
func Decode(data []byte, format Format) (Dictionary, error) {
	var raw any
	switch format {
	case FormatJSON, "":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported dictionary format %q", format)
	}
	return FromMap(raw)
}

// FromMap validates a decoded document and converts it into a Dictionary.
func FromMap(raw any) (Dictionary, error) {
	schema, err := dictionarySchema()
	if err != nil {
		return nil, err
	}
	normalized := validation.NormalizeMaps(raw)
	if err := schema.Validate(normalized); err != nil {
		return nil, err
	}

	top, _ := normalized.(map[string]any)
	dict := make(Dictionary, len(top))
	for lang, tree := range top {
		branch, _ := tree.(map[string]any)
		dict[strings.ToLower(lang)] = branch
	}
	return dict, nil
}

// Lookup walks key segment by segment below language. A missing segment, an
// intermediate string or a non-string leaf reports false.
func (d Dictionary) Lookup(language, key string) (string, bool) {
	node, ok := d[language]
	if !ok || key == "" {
		return "", false
	}

	segments := strings.Split(key, ".")
	for i, segment := range segments {
		value, ok := node[segment]
		if !ok {
			return "", false
		}
		if i == len(segments)-1 {
			template, isString := value.(string)
			return template, isString
		}
		next, isMap := value.(map[string]any)
		if !isMap {
			return "", false
		}
		node = next
	}
	return "", false
}

// Languages returns the dictionary languages sorted.
func (d Dictionary) Languages() []string {
	out := make([]string, 0, len(d))
	for lang := range d {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// Keys returns every dotted key with a string leaf under language, sorted.
func (d Dictionary) Keys(language string) []string {
	var keys []string
	var walk func(prefix string, node map[string]any)
	walk = func(prefix string, node map[string]any) {
		for name, value := range node {
			key := name
			if prefix != "" {
				key = prefix + "." + name
			}
			switch typed := value.(type) {
			case string:
				keys = append(keys, key)
			case map[string]any:
				walk(key, typed)
			}
		}
	}
	walk("", d[language])
	slices.Sort(keys)
	return keys
}
