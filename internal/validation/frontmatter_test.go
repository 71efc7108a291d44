package validation

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func validProject() map[string]any {
	return map[string]any{
		"title":       "Sample Project",
		"description": "A sample",
		"startDate":   "2024-01-15",
		"tags":        []any{"go", "cli"},
		"heroImage":   "/images/hero.png",
		"language":    "en",
	}
}

func TestValidateAcceptsProjectAndAppliesDefaults(t *testing.T) {
	raw := validProject()
	raw["custom"] = map[string]any{"nested": true}

	record, err := Validate(ProjectSchema(), raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if record.String("title") != "Sample Project" {
		t.Fatalf("unexpected title %q", record.String("title"))
	}
	if featured, ok := record["featured"].(bool); !ok || featured {
		t.Fatalf("expected featured default false, got %#v", record["featured"])
	}
	if tags := record.Strings("tags"); len(tags) != 2 || tags[1] != "cli" {
		t.Fatalf("unexpected tags %v", tags)
	}
	if _, ok := record["custom"].(map[string]any); !ok {
		t.Fatalf("expected unknown field to pass through, got %#v", record["custom"])
	}
	if _, ok := record["endDate"]; ok {
		t.Fatal("expected optional field without default to be omitted")
	}
}

func TestValidateReportsEveryViolation(t *testing.T) {
	raw := validProject()
	delete(raw, "title")
	raw["description"] = ""
	raw["startDate"] = "2024-13-40"
	raw["tags"] = []any{"go", 3}
	raw["language"] = "fr"
	raw["featured"] = "yes"

	_, err := Validate(ProjectSchema(), raw)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}

	msg := err.Error()
	for _, want := range []string{
		"title: required field is missing",
		"description: required field is missing",
		"startDate: expected ISO date (YYYY-MM-DD)",
		"tags: all items must be strings",
		"language: invalid value 'fr', expected one of: en, es",
		"featured: expected boolean",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in error:\n%s", want, msg)
		}
	}
	if got := len(Issues(err)); got != 6 {
		t.Fatalf("expected 6 issues, got %d", got)
	}
	if lines := strings.Count(msg, "\n- "); lines != 6 {
		t.Fatalf("expected one line per issue, got %d", lines)
	}
}

func TestValidateISODate(t *testing.T) {
	cases := []struct {
		value any
		ok    bool
	}{
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2024-13-01", false},
		{"2024-1-01", false},
		{"15/01/2024", false},
		{time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{20240101, false},
	}
	for _, tc := range cases {
		raw := validProject()
		raw["startDate"] = tc.value
		record, err := Validate(ProjectSchema(), raw)
		if tc.ok && err != nil {
			t.Fatalf("%v: unexpected error %v", tc.value, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("%v: expected error", tc.value)
			}
			issues := Issues(err)
			if len(issues) != 1 || issues[0].Field != "startDate" {
				t.Fatalf("%v: expected single startDate issue, got %#v", tc.value, issues)
			}
			if issues[0].Value != tc.value {
				t.Fatalf("expected offending value to be kept, got %#v", issues[0].Value)
			}
			continue
		}
		if _, ok := record.Date("startDate"); !ok {
			t.Fatalf("%v: expected parsable date, got %#v", tc.value, record["startDate"])
		}
	}
}

func TestValidateTypeMessages(t *testing.T) {
	raw := validProject()
	raw["title"] = 42
	raw["tags"] = "go"

	_, err := Validate(ProjectSchema(), raw)
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "title: expected string, got number") {
		t.Fatalf("missing string type message:\n%s", msg)
	}
	if !strings.Contains(msg, "tags: expected array of strings") {
		t.Fatalf("missing list type message:\n%s", msg)
	}
}

func TestProjectSchemaIsIsolated(t *testing.T) {
	first := ProjectSchema()
	first.Fields[0] = Field{Name: "changed", Rule: BooleanRule{}}
	second := ProjectSchema()
	if second.Fields[0].Name != "title" {
		t.Fatalf("expected project schema to be unaffected, got %q", second.Fields[0].Name)
	}
}

func TestRecordAccessors(t *testing.T) {
	record := Record{"order": 2, "weight": 1.5, "startDate": "2024-05-01", "flag": true}
	if v, ok := record.Int("order"); !ok || v != 2 {
		t.Fatalf("expected order 2, got %v %v", v, ok)
	}
	if _, ok := record.Int("weight"); ok {
		t.Fatal("expected non integral value to be rejected")
	}
	if !record.Bool("flag") {
		t.Fatal("expected flag true")
	}
	if d, ok := record.Date("startDate"); !ok || d.Month() != time.May {
		t.Fatalf("unexpected date %v", d)
	}
}

func TestRecordIntRejectsOutOfRangeValues(t *testing.T) {
	record := Record{
		"huge":     uint64(math.MaxUint64),
		"fits":     uint64(42),
		"negative": int64(-7),
		"float":    1e300,
		"whole":    3.0,
	}
	for _, key := range []string{"huge", "float"} {
		if v, ok := record.Int(key); ok {
			t.Fatalf("expected %s to be rejected, got %d", key, v)
		}
	}
	for key, want := range map[string]int{"fits": 42, "negative": -7, "whole": 3} {
		if v, ok := record.Int(key); !ok || v != want {
			t.Fatalf("%s: expected %d, got %d %v", key, want, v, ok)
		}
	}
}
