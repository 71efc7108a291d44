package contentcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const discoverMessageType = "folio.content.discover"

var languageRule = validation.In("en", "es").Error("must be one of: en, es")

// DiscoverCommand walks Directory and emits the resulting catalog.
type DiscoverCommand struct {
	// Directory is resolved against the handler's content filesystem.
	Directory string `json:"directory"`
	// Language keeps only records in this language when set.
	Language string `json:"language,omitempty"`
	// Fallback is used when Language yields no records.
	Fallback string `json:"fallback,omitempty"`
	// FeaturedOnly reduces the catalog to featured records.
	FeaturedOnly bool `json:"featured_only,omitempty"`
	// Limit caps featured records; zero uses the default.
	Limit int `json:"limit,omitempty"`
	// Flat disables descending into sub-directories.
	Flat           bool `json:"flat,omitempty"`
	IncludeHidden  bool `json:"include_hidden,omitempty"`
	MaxDepth       int  `json:"max_depth,omitempty"`
	AllowRawMarkup bool `json:"allow_raw_markup,omitempty"`
}

// Type implements command.Message.
func (DiscoverCommand) Type() string { return discoverMessageType }

// Validate ensures the directory is present and languages are supported.
func (cmd DiscoverCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("folio.content.discover.directory_required", "directory is required")
			}
			return nil
		})),
		validation.Field(&cmd.Language, languageRule),
		validation.Field(&cmd.Fallback, languageRule),
		validation.Field(&cmd.Limit, validation.Min(0)),
		validation.Field(&cmd.MaxDepth, validation.Min(0)),
	)
}
