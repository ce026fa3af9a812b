package ashby

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"fdehunt-engine/internal/domain"
	"fdehunt-engine/internal/scrape/types"
	"fdehunt-engine/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

const appDataMarker = "window.__appData"

// Adapter reads Ashby boards from the app state embedded in the board
// HTML. Ashby has no public unauthenticated JSON endpoint; the page
// bootstraps a window.__appData object carrying every posting.
type Adapter struct{}

func New() *Adapter { return &Adapter{} }

func (*Adapter) Source() domain.Source { return domain.SourceAshby }

func (*Adapter) BuildURL(t domain.CompanyTarget) string {
	return fmt.Sprintf("https://jobs.ashbyhq.com/%s", t.Slug)
}

// Extract locates the script bootstrapping window.__appData, slices the
// object literal out of it, and returns jobBoard.jobPostings.
func (*Adapter) Extract(payload []byte, t domain.CompanyTarget) ([]domain.RawRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: ashby board html for %s: %v", types.ErrPageStructure, t.Slug, err)
	}

	var src string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if txt := s.Text(); strings.Contains(txt, appDataMarker) {
			src = txt
			return false
		}
		return true
	})
	if src == "" {
		return nil, fmt.Errorf("%w: ashby board for %s carries no %s script", types.ErrPageStructure, t.Slug, appDataMarker)
	}

	obj, err := sliceObject(src, strings.Index(src, appDataMarker))
	if err != nil {
		return nil, fmt.Errorf("%w: ashby app data for %s: %v", types.ErrPageStructure, t.Slug, err)
	}

	var app struct {
		JobBoard struct {
			JobPostings []domain.RawRecord `json:"jobPostings"`
		} `json:"jobBoard"`
	}
	if err := json.Unmarshal([]byte(obj), &app); err != nil {
		return nil, fmt.Errorf("%w: ashby app data for %s: %v", types.ErrPageStructure, t.Slug, err)
	}
	if app.JobBoard.JobPostings == nil {
		return nil, fmt.Errorf("%w: ashby app data for %s has no job postings", types.ErrPageStructure, t.Slug)
	}
	return app.JobBoard.JobPostings, nil
}

// sliceObject returns the balanced {...} literal starting at the first
// brace after from, honoring string quoting and escapes.
func sliceObject(s string, from int) (string, error) {
	start := strings.IndexByte(s[from:], '{')
	if start < 0 {
		return "", fmt.Errorf("no object literal after offset %d", from)
	}
	start += from

	depth := 0
	inStr := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("unbalanced object literal")
}

// Normalize maps one posting onto the canonical shape. Umbrella boards
// (VC portfolios) post on behalf of many companies; there the department
// name carries the real company.
func (*Adapter) Normalize(raw domain.RawRecord, t domain.CompanyTarget) domain.Job {
	company := t.Name
	if t.VCPortfolio {
		if dept := util.CleanText(raw.Str("departmentName")); dept != "" {
			company = dept
		}
	}

	job := domain.Job{
		RoleName:       util.CleanText(raw.Str("title")),
		CompanyName:    company,
		Location:       util.NormalizeLocation(raw.Str("locationName")),
		EmploymentType: types.DefaultEmploymentType,
		Team:           util.CleanText(raw.Str("teamName")),
		Compensation:   types.DefaultCompensation,
		Source:         domain.SourceAshby,
		JobID:          raw.StrOrNum("id"),
	}
	if et := util.CleanText(raw.Str("employmentType")); et != "" {
		job.EmploymentType = et
	}
	if comp := util.CleanText(raw.Str("compensationTierSummary")); comp != "" {
		job.Compensation = comp
	}
	if pub := raw.Str("publishedDate"); pub != "" {
		job.PublishedDate = strings.SplitN(pub, "T", 2)[0]
	}
	if job.JobID != "" {
		job.JobLink = fmt.Sprintf("https://jobs.ashbyhq.com/%s/%s", t.Slug, job.JobID)
	}
	return job
}
