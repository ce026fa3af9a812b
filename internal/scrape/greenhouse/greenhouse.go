package greenhouse

import (
	"encoding/json"
	"fmt"
	"strings"

	"fdehunt-engine/internal/domain"
	"fdehunt-engine/internal/scrape/types"
	"fdehunt-engine/internal/scrape/util"
)

// Adapter reads Greenhouse boards through the public board API:
// boards-api.greenhouse.io/v1/boards/<slug>/jobs.
type Adapter struct{}

func New() *Adapter { return &Adapter{} }

func (*Adapter) Source() domain.Source { return domain.SourceGreenhouse }

func (*Adapter) BuildURL(t domain.CompanyTarget) string {
	return fmt.Sprintf("https://boards-api.greenhouse.io/v1/boards/%s/jobs", t.Slug)
}

// Extract decodes the {"jobs": [...]} board payload. A missing jobs key
// is a structure mismatch; an empty array is a board with no openings.
func (*Adapter) Extract(payload []byte, t domain.CompanyTarget) ([]domain.RawRecord, error) {
	var board struct {
		Jobs []domain.RawRecord `json:"jobs"`
	}
	if err := json.Unmarshal(payload, &board); err != nil {
		return nil, fmt.Errorf("%w: greenhouse payload for %s: %v", types.ErrPageStructure, t.Slug, err)
	}
	if board.Jobs == nil {
		return nil, fmt.Errorf("%w: greenhouse payload for %s has no jobs array", types.ErrPageStructure, t.Slug)
	}
	return board.Jobs, nil
}

// Normalize maps one board API record onto the canonical shape. The API
// never exposes compensation, and its postings are full-time roles.
func (*Adapter) Normalize(raw domain.RawRecord, t domain.CompanyTarget) domain.Job {
	job := domain.Job{
		RoleName:       util.CleanText(raw.Str("title")),
		CompanyName:    t.Name,
		Location:       util.NormalizeLocation(raw.Map("location").Str("name")),
		JobLink:        util.CanonicalizeURL(raw.Str("absolute_url")),
		EmploymentType: types.DefaultEmploymentType,
		Compensation:   types.DefaultCompensation,
		Source:         domain.SourceGreenhouse,
		JobID:          raw.StrOrNum("id"),
	}
	if deps, ok := raw["departments"].([]any); ok && len(deps) > 0 {
		if d, ok := deps[0].(map[string]any); ok {
			job.Team = util.CleanText(domain.RawRecord(d).Str("name"))
		}
	}
	if up := raw.Str("updated_at"); up != "" {
		job.PublishedDate = strings.SplitN(up, "T", 2)[0]
	}
	return job
}
