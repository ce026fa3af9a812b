package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fdehunt-engine/internal/domain"
)

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)

	jobs := []domain.Job{
		{
			RoleName:       "Forward Deployed Engineer",
			CompanyName:    "Acme",
			Location:       "New York, NY",
			JobLink:        "https://boards.greenhouse.io/acme/jobs/1",
			EmploymentType: "FullTime",
			Team:           "Engineering",
			PublishedDate:  "2025-05-20",
			Compensation:   "Not disclosed",
			Source:         domain.SourceGreenhouse,
			JobID:          "1",
		},
		{
			RoleName:    "Field Engineer, \"Critical\" Systems",
			CompanyName: "Globex",
			JobLink:     "https://jobs.lever.co/globex/2",
			Source:      domain.SourceLever,
			JobID:       "2",
		},
	}

	path, err := WriteCSV(dir, jobs, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fde_jobs_2025-06-01_12-30.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"role_name", "company_name", "location", "job_link",
		"employment_type", "team", "published_date", "compensation",
		"source", "job_id",
	}, rows[0])

	assert.Equal(t, "Forward Deployed Engineer", rows[1][0])
	assert.Equal(t, "New York, NY", rows[1][2])
	assert.Equal(t, "greenhouse", rows[1][8])

	// quoting survives the round trip
	assert.Equal(t, `Field Engineer, "Critical" Systems`, rows[2][0])
	assert.Equal(t, "", rows[2][2])
}

func TestWriteCSVEmpty(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteCSV(dir, nil, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1, "an empty run still writes the header")
}
