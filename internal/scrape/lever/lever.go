package lever

import (
	"encoding/json"
	"fmt"
	"time"

	"fdehunt-engine/internal/domain"
	"fdehunt-engine/internal/scrape/types"
	"fdehunt-engine/internal/scrape/util"
)

// Options tunes the Lever adapter.
type Options struct {
	// MaxAgeDays drops postings whose createdAt is older than this many
	// days at extract time. 0 keeps everything.
	MaxAgeDays int
}

// Adapter reads Lever boards through the public postings API:
// api.lever.co/v0/postings/<slug>?mode=json.
type Adapter struct {
	opts Options
	now  func() time.Time
}

func New(opts Options) *Adapter {
	return &Adapter{opts: opts, now: time.Now}
}

func (*Adapter) Source() domain.Source { return domain.SourceLever }

func (*Adapter) BuildURL(t domain.CompanyTarget) string {
	return fmt.Sprintf("https://api.lever.co/v0/postings/%s?mode=json", t.Slug)
}

// Extract decodes the postings array. Postings older than MaxAgeDays are
// dropped here; ones without a parseable createdAt are kept.
func (a *Adapter) Extract(payload []byte, t domain.CompanyTarget) ([]domain.RawRecord, error) {
	var postings []domain.RawRecord
	if err := json.Unmarshal(payload, &postings); err != nil {
		return nil, fmt.Errorf("%w: lever payload for %s: %v", types.ErrPageStructure, t.Slug, err)
	}
	if a.opts.MaxAgeDays <= 0 {
		return postings, nil
	}

	cutoff := a.now().AddDate(0, 0, -a.opts.MaxAgeDays)
	out := make([]domain.RawRecord, 0, len(postings))
	for _, p := range postings {
		if ms, ok := p.Num("createdAt"); ok && time.UnixMilli(int64(ms)).Before(cutoff) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Normalize maps one posting onto the canonical shape. Lever nests
// location/commitment/team under categories and stamps createdAt in
// epoch milliseconds.
func (a *Adapter) Normalize(raw domain.RawRecord, t domain.CompanyTarget) domain.Job {
	job := domain.Job{
		RoleName:       util.CleanText(raw.Str("text")),
		CompanyName:    t.Name,
		EmploymentType: types.DefaultEmploymentType,
		Compensation:   types.DefaultCompensation,
		Source:         domain.SourceLever,
		JobID:          raw.StrOrNum("id"),
	}

	cats := raw.Map("categories")
	job.Location = util.NormalizeLocation(cats.Str("location"))
	if c := util.CleanText(cats.Str("commitment")); c != "" {
		job.EmploymentType = c
	}
	job.Team = util.CleanText(cats.Str("team"))

	if ms, ok := raw.Num("createdAt"); ok {
		job.PublishedDate = time.UnixMilli(int64(ms)).UTC().Format("2006-01-02")
	}

	if hosted := raw.Str("hostedUrl"); hosted != "" {
		job.JobLink = util.CanonicalizeURL(hosted)
	} else if job.JobID != "" {
		job.JobLink = fmt.Sprintf("https://jobs.lever.co/%s/%s", t.Slug, job.JobID)
	}
	return job
}
