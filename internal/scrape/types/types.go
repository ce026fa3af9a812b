package types

import (
	"errors"

	"fdehunt-engine/internal/domain"
)

// ErrPageStructure flags a payload whose shape no longer matches what an
// extractor expects, usually because the platform changed its markup or
// payload layout. Wrapped errors carry the detail.
var ErrPageStructure = errors.New("page structure mismatch")

// Defaults for fields recruiting platforms routinely omit.
const (
	DefaultCompensation   = "Not disclosed"
	DefaultEmploymentType = "FullTime"
)

// Adapter is one platform's URL builder, payload extractor, and
// normalizer branch. Extract and Normalize are pure; all network I/O
// stays in the orchestrator.
type Adapter interface {
	Source() domain.Source
	BuildURL(t domain.CompanyTarget) string
	Extract(payload []byte, t domain.CompanyTarget) ([]domain.RawRecord, error)
	Normalize(raw domain.RawRecord, t domain.CompanyTarget) domain.Job
}
