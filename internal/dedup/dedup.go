package dedup

import (
	"strings"

	"fdehunt-engine/internal/domain"
)

// Dedupe returns the jobs whose unique id is neither in seen nor earlier
// in the same batch, in input order, plus the updated seen set. The
// input set is never mutated and ids are only ever added, so running the
// output through Dedupe again yields the same jobs.
func Dedupe(jobs []domain.Job, seen *domain.SeenSet) ([]domain.Job, *domain.SeenSet) {
	updated := seen.Clone()
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		id := j.UniqueID()
		if updated.Has(id) {
			continue
		}
		updated.Add(id)
		out = append(out, j)
	}
	return out, updated
}

// CollapseBatch drops postings that surfaced through more than one
// platform in a single run, keyed by lowercase company|role|location,
// keeping the first occurrence.
func CollapseBatch(jobs []domain.Job) []domain.Job {
	seen := make(map[string]struct{}, len(jobs))
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		k := strings.ToLower(j.CompanyName) + "|" + strings.ToLower(j.RoleName) + "|" + strings.ToLower(j.Location)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, j)
	}
	return out
}
