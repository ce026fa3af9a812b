package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Source identifies the recruiting platform a job was harvested from.
type Source string

const (
	SourceAshby      Source = "ashby"
	SourceGreenhouse Source = "greenhouse"
	SourceLever      Source = "lever"
)

// ParseSource maps a config string onto a known Source.
func ParseSource(s string) (Source, error) {
	switch Source(strings.ToLower(strings.TrimSpace(s))) {
	case SourceAshby:
		return SourceAshby, nil
	case SourceGreenhouse:
		return SourceGreenhouse, nil
	case SourceLever:
		return SourceLever, nil
	}
	return "", fmt.Errorf("unknown source %q", s)
}

// RawRecord is one platform-shaped posting as decoded from a payload,
// before normalization. Keys and value types vary per platform.
type RawRecord map[string]any

// Str returns the string value under key, or "" when absent or not a string.
func (r RawRecord) Str(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// StrOrNum renders the value under key as a string, accepting both JSON
// strings and numbers. Platform ids arrive as either.
func (r RawRecord) StrOrNum(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	}
	return ""
}

// Num returns the numeric value under key and whether one was present.
func (r RawRecord) Num(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

// Map returns the nested object under key, or nil. Lookups on the nil
// result are safe and yield zero values.
func (r RawRecord) Map(key string) RawRecord {
	m, _ := r[key].(map[string]any)
	return m
}

// Job is the canonical posting shape every platform normalizes into.
type Job struct {
	RoleName       string
	CompanyName    string
	Location       string
	JobLink        string
	EmploymentType string
	Team           string
	PublishedDate  string
	Compensation   string
	Source         Source
	JobID          string
}

// UniqueID is the cross-run identity of a posting: a pure function of
// source, company and platform job id. The same job always maps to the
// same id, and changed content does not mint a new one.
func (j Job) UniqueID() string {
	return UniqueID(j.Source, j.CompanyName, j.JobID)
}

// UniqueID builds the dedup key for a posting identity.
func UniqueID(source Source, companyName, jobID string) string {
	return fmt.Sprintf("%s:%s:%s", source, strings.ToLower(strings.TrimSpace(companyName)), jobID)
}

// Complete reports whether the job carries the fields downstream consumers
// rely on. Records failing this are dropped as data anomalies.
func (j Job) Complete() bool {
	return j.RoleName != "" && j.JobLink != "" && j.JobID != ""
}
