package validation

// Rule is a closed set of field rules: StringRule, BooleanRule, ListRule and
// EnumRule. The unexported marker keeps other packages from adding variants.
type Rule interface {
	isRequired() bool
	rule()
}

// Format constrains the textual shape of a StringRule value.
type Format string

const (
	FormatNone    Format = ""
	FormatISODate Format = "iso-date"
)

// ISODateLayout is the only accepted layout for FormatISODate values.
const ISODateLayout = "2006-01-02"

// StringRule accepts a string, optionally constrained by Format.
type StringRule struct {
	Required bool
	Default  *string
	Format   Format
}

// BooleanRule accepts true or false.
type BooleanRule struct {
	Required bool
	Default  *bool
}

// ListRule accepts a list whose items are all strings.
type ListRule struct {
	Required bool
}

// EnumRule accepts a string drawn from Allowed.
type EnumRule struct {
	Required bool
	Allowed  []string
	Default  *string
}

func (r StringRule) isRequired() bool  { return r.Required }
func (r BooleanRule) isRequired() bool { return r.Required }
func (r ListRule) isRequired() bool    { return r.Required }
func (r EnumRule) isRequired() bool    { return r.Required }

func (StringRule) rule()  {}
func (BooleanRule) rule() {}
func (ListRule) rule()    {}
func (EnumRule) rule()    {}

// Field binds a rule to a frontmatter key.
type Field struct {
	Name string
	Rule Rule
}

// Schema is an ordered list of field rules. Order determines the order in
// which violations are reported.
type Schema struct {
	Fields []Field
}

// Lookup returns the rule registered for name.
func (s Schema) Lookup(name string) (Rule, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field.Rule, true
		}
	}
	return nil, false
}

// StringPtr is a helper for StringRule and EnumRule defaults.
func StringPtr(v string) *string { return &v }

// BoolPtr is a helper for BooleanRule defaults.
func BoolPtr(v bool) *bool { return &v }

var projectSchema = Schema{Fields: []Field{
	{Name: "title", Rule: StringRule{Required: true}},
	{Name: "description", Rule: StringRule{Required: true}},
	{Name: "startDate", Rule: StringRule{Required: true, Format: FormatISODate}},
	{Name: "endDate", Rule: StringRule{Format: FormatISODate}},
	{Name: "employer", Rule: StringRule{}},
	{Name: "tags", Rule: ListRule{Required: true}},
	{Name: "heroImage", Rule: StringRule{Required: true}},
	{Name: "language", Rule: EnumRule{Required: true, Allowed: []string{"en", "es"}}},
	{Name: "slug", Rule: StringRule{}},
	{Name: "featured", Rule: BooleanRule{Default: BoolPtr(false)}},
}}

// ProjectSchema returns the schema applied to portfolio project files. The
// returned value shares no mutable state with other callers.
func ProjectSchema() Schema {
	fields := make([]Field, len(projectSchema.Fields))
	copy(fields, projectSchema.Fields)
	return Schema{Fields: fields}
}
