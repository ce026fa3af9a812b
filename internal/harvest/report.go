package harvest

import (
	"log"
	"sort"
	"strings"
	"time"

	"fdehunt-engine/internal/domain"
)

// Report is everything one run produced.
type Report struct {
	RunID     string
	StartedAt time.Time
	Elapsed   time.Duration

	// NewJobs are the keyword-matching US postings never surfaced before.
	NewJobs []domain.Job
	// Matched counts keyword-matching US postings before collapse and
	// dedup.
	Matched int

	Stats     map[string]domain.JobStats
	Anomalies map[string]int
	Failures  map[string]error

	// Seen is the updated set, ready to persist once exports succeed.
	Seen *domain.SeenSet
}

// TotalNormalized sums every company's stat line.
func (r *Report) TotalNormalized() (total, us, nonUS int) {
	for _, s := range r.Stats {
		total += s.TotalJobs
		us += s.USJobs
		nonUS += s.NonUSJobs
	}
	return total, us, nonUS
}

// Log renders the end-of-run summary.
func (r *Report) Log() {
	total, us, nonUS := r.TotalNormalized()
	log.Printf("[report] run=%s elapsed=%s normalized=%d us=%d non_us=%d matched=%d new=%d failures=%d",
		r.RunID, r.Elapsed.Round(time.Millisecond), total, us, nonUS, r.Matched, len(r.NewJobs), len(r.Failures))

	companies := make([]string, 0, len(r.Stats))
	for name := range r.Stats {
		companies = append(companies, name)
	}
	sort.Strings(companies)
	for _, name := range companies {
		s := r.Stats[name]
		line := ""
		if len(s.NonUSLocations) > 0 {
			locs := s.NonUSLocations
			if len(locs) > 5 {
				locs = locs[:5]
			}
			line = " non_us_locations=" + strings.Join(locs, "; ")
		}
		if n := r.Anomalies[name]; n > 0 {
			log.Printf("[report] company=%q total=%d us=%d non_us=%d anomalies=%d%s",
				name, s.TotalJobs, s.USJobs, s.NonUSJobs, n, line)
			continue
		}
		log.Printf("[report] company=%q total=%d us=%d non_us=%d%s",
			name, s.TotalJobs, s.USJobs, s.NonUSJobs, line)
	}

	failed := make([]string, 0, len(r.Failures))
	for name := range r.Failures {
		failed = append(failed, name)
	}
	sort.Strings(failed)
	for _, name := range failed {
		log.Printf("[report] failed company=%q err=%v", name, r.Failures[name])
	}
}
