package scrape

import (
	"testing"

	"fdehunt-engine/internal/domain"
)

func TestKeywordFilterDefaults(t *testing.T) {
	f := NewKeywordFilter(nil)

	tests := []struct {
		role string
		want bool
	}{
		{"Forward Deployed Engineer", true},
		{"Software Engineer, Forward Deployed", true},
		{"FDE - Federal", true},
		{"Field Engineer II", true},
		{"Customer Engineer, EMEA", true},
		{"Solutions Engineer", true},
		{"Backend Engineer", false},
		{"Account Executive", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			got := f.Match(domain.Job{RoleName: tt.role}, nil)
			if got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestKeywordFilterDescription(t *testing.T) {
	f := NewKeywordFilter(nil)

	job := domain.Job{RoleName: "Implementation Specialist"}
	if f.Match(job, nil) {
		t.Fatal("role alone should not match")
	}

	raw := domain.RawRecord{"descriptionPlain": "You will work as a forward deployed engineer with customers."}
	if !f.Match(job, raw) {
		t.Error("description text should match")
	}
}

func TestKeywordFilterCustom(t *testing.T) {
	f := NewKeywordFilter([]string{" Platform Engineer ", ""})

	if !f.Match(domain.Job{RoleName: "Senior platform engineer"}, nil) {
		t.Error("custom keywords are trimmed and case-insensitive")
	}
	if f.Match(domain.Job{RoleName: "Forward Deployed Engineer"}, nil) {
		t.Error("custom keywords replace the defaults")
	}
}
