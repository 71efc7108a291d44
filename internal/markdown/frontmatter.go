package markdown

import (
	"bytes"

	"github.com/adrg/frontmatter"

	"github.com/folio-press/folio/internal/validation"
)

// SplitFrontMatter separates the leading metadata block from the body. YAML
// (---), TOML (+++) and JSON ({ }) blocks are recognised; sources without a
// block yield empty metadata and the whole input as body.
func SplitFrontMatter(source []byte) (map[string]any, []byte, error) {
	meta := map[string]any{}

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, nil, renderError(OpParseMetadata, err)
	}

	normalized, _ := validation.NormalizeMaps(meta).(map[string]any)
	if normalized == nil {
		normalized = map[string]any{}
	}
	return normalized, body, nil
}
