package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fdehunt-engine/internal/domain"
)

// csvHeader is the canonical field order plus the two provenance columns.
var csvHeader = []string{
	"role_name", "company_name", "location", "job_link",
	"employment_type", "team", "published_date", "compensation",
	"source", "job_id",
}

// WriteCSV writes jobs to a timestamped file under dir and returns the
// path. The filename carries the run's wall-clock minute so repeated
// runs never clobber each other.
func WriteCSV(dir string, jobs []domain.Job, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("csv dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("fde_jobs_%s.csv", now.Format("2006-01-02_15-04")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("csv create: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("csv header: %w", err)
	}
	for _, j := range jobs {
		rec := []string{
			j.RoleName, j.CompanyName, j.Location, j.JobLink,
			j.EmploymentType, j.Team, j.PublishedDate, j.Compensation,
			string(j.Source), j.JobID,
		}
		if err := w.Write(rec); err != nil {
			return "", fmt.Errorf("csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("csv flush: %w", err)
	}
	return path, f.Close()
}
