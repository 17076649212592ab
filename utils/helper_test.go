package utils

import (
	"strings"
	"testing"
	"time"
)

func TestRoundTo1(t *testing.T) {
	cases := []struct {
		in       float64
		expected float64
	}{
		{3.75, 3.8},
		{3.74, 3.7},
		{3.333333, 3.3},
		{5, 5},
		{-1.25, -1.3},
	}
	for _, tc := range cases {
		if got := RoundTo1(tc.in); got != tc.expected {
			t.Fatalf("RoundTo1(%v) expected %v, got %v", tc.in, tc.expected, got)
		}
	}
}

func TestUniqueSlice(t *testing.T) {
	got := UniqueSlice([]int{3, 1, 3, 2, 1})
	if len(got) != 3 || got[0] != 3 || got[1] != 1 || got[2] != 2 {
		t.Fatalf("expected [3 1 2], got %v", got)
	}
}

func TestExecTemplate_ConditionalClause(t *testing.T) {
	tmpl := `SELECT * FROM rules WHERE 1 = 1
{{- if .itemId }} AND item_a_id = @itemId {{- end }}
{{- if .limit }} LIMIT {{ .limit }} {{- end }}`

	withFilter, err := ExecTemplate(tmpl, map[string]interface{}{"itemId": 5, "limit": 50})
	if err != nil {
		t.Fatalf("ExecTemplate error: %v", err)
	}
	if !strings.Contains(withFilter, "AND item_a_id = @itemId") || !strings.Contains(withFilter, "LIMIT 50") {
		t.Fatalf("expected filter and limit clauses, got %q", withFilter)
	}

	withoutFilter, err := ExecTemplate(tmpl, map[string]interface{}{"itemId": 0, "limit": 0})
	if err != nil {
		t.Fatalf("ExecTemplate error: %v", err)
	}
	if strings.Contains(withoutFilter, "item_a_id") || strings.Contains(withoutFilter, "LIMIT") {
		t.Fatalf("expected bare query, got %q", withoutFilter)
	}

	if _, err := ExecTemplate("{{ .broken", nil); err == nil {
		t.Fatal("expected parse error for malformed template")
	}
}

func TestNilIfEmpty(t *testing.T) {
	if got := NilIfEmpty(0); got != nil {
		t.Fatalf("expected nil for zero int, got %v", got)
	}
	if got := NilIfEmpty(7); got == nil || *got != 7 {
		t.Fatalf("expected pointer to 7, got %v", got)
	}
	if got := NilIfEmpty(""); got != nil {
		t.Fatalf("expected nil for empty string, got %v", got)
	}
	if got := NilIfEmpty("abc"); got == nil || *got != "abc" {
		t.Fatalf("expected pointer to abc, got %v", got)
	}
}

func TestConvertToDate_TruncatesToMidnight(t *testing.T) {
	in := time.Date(2026, 8, 29, 17, 45, 12, 0, time.UTC)
	got, err := ConvertToDate(in, "UTC")
	if err != nil {
		t.Fatalf("ConvertToDate error: %v", err)
	}
	expected := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
}

func TestConvertToDate_EmptyTimezoneDefaultsUTC(t *testing.T) {
	in := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	got, err := ConvertToDate(in, "")
	if err != nil {
		t.Fatalf("ConvertToDate error: %v", err)
	}
	if got.Hour() != 0 || got.Day() != 2 {
		t.Fatalf("expected midnight on the 2nd, got %v", got)
	}
}

func TestDereferencePtr(t *testing.T) {
	v := 42
	if got := DereferencePtr(&v); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if got := DereferencePtr[int](nil); got != 0 {
		t.Fatalf("expected zero value, got %d", got)
	}
	if got := DereferencePtr[int](nil, 7); got != 7 {
		t.Fatalf("expected default 7, got %d", got)
	}
}

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal(" 1234.5 ")
	if err != nil {
		t.Fatalf("ParseDecimal error: %v", err)
	}
	if d.String() != "1234.5" {
		t.Fatalf("expected 1234.5, got %s", d.String())
	}
	if _, err := ParseDecimal(""); err == nil {
		t.Fatal("expected error for empty string")
	}
}
