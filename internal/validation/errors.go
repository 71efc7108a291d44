package validation

import (
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	// ErrSchemaViolation matches every SchemaViolation via errors.Is.
	ErrSchemaViolation = errors.New("schema violation")
	// ErrSchemaInvalid reports a JSON Schema document that does not compile.
	ErrSchemaInvalid = errors.New("schema invalid")
)

// Issue captures a single field-level failure together with the offending value.
type Issue struct {
	Field   string
	Message string
	Value   any
}

func (i Issue) String() string {
	field := strings.TrimSpace(i.Field)
	if field == "" {
		field = "#"
	}
	if i.Message == "" {
		return field
	}
	return field + ": " + i.Message
}

// SchemaViolation aggregates every issue found in one validation pass.
type SchemaViolation struct {
	Subject string
	Issues  []Issue
	Cause   error
}

func (e *SchemaViolation) Error() string {
	subject := e.Subject
	if subject == "" {
		subject = "frontmatter"
	}
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return fmt.Sprintf("invalid %s: %s", subject, e.Cause.Error())
		}
		return "invalid " + subject
	}
	var b strings.Builder
	b.WriteString("invalid ")
	b.WriteString(subject)
	b.WriteString(":")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue.String())
	}
	return b.String()
}

func (e *SchemaViolation) Is(target error) bool {
	return target == ErrSchemaViolation
}

func (e *SchemaViolation) Unwrap() error {
	return e.Cause
}

// Issues extracts validation issues from an error.
func Issues(err error) []Issue {
	if err == nil {
		return nil
	}
	var violation *SchemaViolation
	if errors.As(err, &violation) && violation != nil {
		return violation.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []Issue{{Message: err.Error()}}
}

func collectValidationIssues(err *jsonschema.ValidationError) []Issue {
	if err == nil {
		return nil
	}
	issues := []Issue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Field:   strings.TrimSpace(node.InstanceLocation),
				Message: strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
