package util

import "testing"

func TestContains(t *testing.T) {
	if !Contains([]string{"n", "p"}, "p") {
		t.Error("expected p to be found")
	}
	if Contains([]int{1, 2}, 3) {
		t.Error("expected 3 not to be found")
	}
}

func TestFilter(t *testing.T) {
	got := Filter([]int{1, 2, 3, 4, 5}, func(n int) bool { return n%2 == 1 })
	if len(got) != 3 || got[0] != 1 || got[2] != 5 {
		t.Errorf("unexpected result %v", got)
	}
	empty := Filter([]int{2}, func(n int) bool { return n > 10 })
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", empty)
	}
}

func TestUnique(t *testing.T) {
	got := Unique([]string{"api.base_url", "api_base_url", "api.base_url"})
	if len(got) != 2 || got[0] != "api.base_url" || got[1] != "api_base_url" {
		t.Errorf("unexpected result %v", got)
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "", "http://localhost:8000"); got != "http://localhost:8000" {
		t.Errorf("unexpected result %q", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("expected zero, got %d", got)
	}
}

func TestSanitizeString(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  hello  ", "hello"},
		{"ac\x00me\x07", "acme"},
		{"\tTech\nCorp ", "TechCorp"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeString(tt.in); got != tt.want {
			t.Errorf("SanitizeString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeEnvValue(t *testing.T) {
	tests := []struct{ in, want string }{
		{`"http://localhost:8000"`, "http://localhost:8000"},
		{`'value'`, "value"},
		{`  plain `, "plain"},
		{`"mismatched'`, `"mismatched'`},
		{`"`, `"`},
	}
	for _, tt := range tests {
		if got := SanitizeEnvValue(tt.in); got != tt.want {
			t.Errorf("SanitizeEnvValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
