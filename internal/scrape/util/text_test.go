package util

import "testing"

func TestCleanText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Forward   Deployed\tEngineer ", "Forward Deployed Engineer"},
		{"New York", "New York"},
		{"", ""},
		{"   ", ""},
		{"one\nline\ntwo", "one line two"},
	}
	for _, tt := range tests {
		if got := CleanText(tt.in); got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Location: New York, NY", "New York, NY"},
		{"New York,  NY,  New York", "New York, NY"},
		{"remote, Remote", "remote"},
		{" , ,London ", "London"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeLocation(tt.in); got != tt.want {
			t.Errorf("NormalizeLocation(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalizeURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{
			"HTTPS://Jobs.Example.com/posting?utm_source=x&b=2&a=1#apply",
			"https://jobs.example.com/posting?a=1&b=2",
		},
		{
			"https://jobs.lever.co/acme/123?gclid=abc",
			"https://jobs.lever.co/acme/123",
		},
		{
			"https://boards.greenhouse.io/acme/jobs/42",
			"https://boards.greenhouse.io/acme/jobs/42",
		},
		{"", ""},
		{"::not a url::", "::not a url::"},
	}
	for _, tt := range tests {
		if got := CanonicalizeURL(tt.in); got != tt.want {
			t.Errorf("CanonicalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
