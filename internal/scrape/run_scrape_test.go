package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fdehunt-engine/internal/domain"
	"fdehunt-engine/internal/fetch"
	"fdehunt-engine/internal/scrape/types"
)

// stubAdapter serves JSON arrays of flat records from a test server.
type stubAdapter struct {
	baseURL string
}

func (*stubAdapter) Source() domain.Source { return domain.SourceGreenhouse }

func (s *stubAdapter) BuildURL(t domain.CompanyTarget) string {
	return s.baseURL + "/" + t.Slug
}

func (*stubAdapter) Extract(payload []byte, t domain.CompanyTarget) ([]domain.RawRecord, error) {
	var raws []domain.RawRecord
	if err := json.Unmarshal(payload, &raws); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrPageStructure, err)
	}
	return raws, nil
}

func (*stubAdapter) Normalize(raw domain.RawRecord, t domain.CompanyTarget) domain.Job {
	job := domain.Job{
		RoleName:    raw.Str("title"),
		CompanyName: t.Name,
		Location:    raw.Str("location"),
		Source:      domain.SourceGreenhouse,
		JobID:       raw.Str("id"),
	}
	if job.JobID != "" {
		job.JobLink = "https://example.com/" + t.Slug + "/" + job.JobID
	}
	return job
}

func fastClient(t *testing.T) *fetch.Client {
	t.Helper()
	c := fetch.NewClient(fetch.Options{RequestsPerSec: 1000, Burst: 1000})
	t.Cleanup(c.Close)
	return c
}

func TestScrapeAllBoundedConcurrency(t *testing.T) {
	var mu sync.Mutex
	inFlight, peak := 0, 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		inFlight++
		if inFlight > peak {
			peak = inFlight
		}
		mu.Unlock()

		time.Sleep(25 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()

		fmt.Fprintf(w, `[{"id":"%s-1","title":"Forward Deployed Engineer","location":"New York, NY"}]`, path.Base(r.URL.Path))
	}))
	defer srv.Close()

	targets := make([]domain.CompanyTarget, 0, 12)
	for i := 0; i < 12; i++ {
		targets = append(targets, domain.CompanyTarget{
			Name: fmt.Sprintf("Co%02d", i),
			Slug: fmt.Sprintf("co%02d", i),
		})
	}

	res := ScrapeAll(context.Background(), fastClient(t), &stubAdapter{baseURL: srv.URL}, targets, Options{
		MaxConcurrent: 3,
		Retry:         fetch.Policy{MaxAttempts: 1},
	})

	assert.Empty(t, res.Failures)
	assert.Len(t, res.Jobs, 12)

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, 3, "gate must bound in-flight fetches")
	assert.Greater(t, peak, 1, "tasks should overlap under the gate")
}

func TestScrapeAllPartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/broken") {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `[{"id":"1","title":"Forward Deployed Engineer","location":"Remote"}]`)
	}))
	defer srv.Close()

	targets := []domain.CompanyTarget{
		{Name: "Acme", Slug: "acme"},
		{Name: "Broken", Slug: "broken"},
		{Name: "Globex", Slug: "globex"},
	}

	var done []string
	res := ScrapeAll(context.Background(), fastClient(t), &stubAdapter{baseURL: srv.URL}, targets, Options{
		MaxConcurrent: 2,
		Retry:         fetch.Policy{MaxAttempts: 1},
		OnCompany: func(company string, matches int, err error) {
			done = append(done, company)
		},
	})

	require.Len(t, res.Failures, 1)
	var se *fetch.StatusError
	require.ErrorAs(t, res.Failures["Broken"], &se)
	assert.Equal(t, http.StatusNotFound, se.Status)

	assert.Len(t, res.Jobs, 2, "healthy companies survive a sibling failure")
	assert.Contains(t, res.Stats, "Acme")
	assert.Contains(t, res.Stats, "Globex")
	assert.NotContains(t, res.Stats, "Broken")
	assert.ElementsMatch(t, []string{"Acme", "Broken", "Globex"}, done)
}

func TestScrapeAllCompanyContiguity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slug := path.Base(r.URL.Path)
		fmt.Fprintf(w, `[
			{"id":"%[1]s-1","title":"Forward Deployed Engineer","location":"Remote"},
			{"id":"%[1]s-2","title":"Field Engineer","location":"Remote"},
			{"id":"%[1]s-3","title":"Customer Engineer","location":"Remote"}
		]`, slug)
	}))
	defer srv.Close()

	targets := make([]domain.CompanyTarget, 0, 6)
	for i := 0; i < 6; i++ {
		targets = append(targets, domain.CompanyTarget{
			Name: fmt.Sprintf("Co%d", i),
			Slug: fmt.Sprintf("co%d", i),
		})
	}

	res := ScrapeAll(context.Background(), fastClient(t), &stubAdapter{baseURL: srv.URL}, targets, Options{
		MaxConcurrent: 4,
		Retry:         fetch.Policy{MaxAttempts: 1},
	})
	require.Len(t, res.Jobs, 18)

	// each company's postings must form exactly one contiguous run
	runs := map[string]bool{}
	last := ""
	for _, j := range res.Jobs {
		if j.CompanyName == last {
			continue
		}
		if runs[j.CompanyName] {
			t.Fatalf("company %s split across non-adjacent runs", j.CompanyName)
		}
		runs[j.CompanyName] = true
		last = j.CompanyName
	}
	assert.Len(t, runs, 6)
}

func TestScrapeAllRetriesRateLimit(t *testing.T) {
	var mu sync.Mutex
	hits := map[string]int{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slug := path.Base(r.URL.Path)
		mu.Lock()
		hits[slug]++
		n := hits[slug]
		mu.Unlock()

		switch {
		case slug == "flaky" && n <= 2:
			w.WriteHeader(http.StatusTooManyRequests)
		case slug == "dead":
			http.Error(w, "gone", http.StatusNotFound)
		default:
			fmt.Fprint(w, `[{"id":"1","title":"Forward Deployed Engineer","location":"Remote"}]`)
		}
	}))
	defer srv.Close()

	targets := []domain.CompanyTarget{
		{Name: "Flaky", Slug: "flaky"},
		{Name: "Dead", Slug: "dead"},
	}

	res := ScrapeAll(context.Background(), fastClient(t), &stubAdapter{baseURL: srv.URL}, targets, Options{
		MaxConcurrent: 2,
		Retry:         fetch.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond},
	})

	assert.NotContains(t, res.Failures, "Flaky", "429s within budget recover")
	assert.Contains(t, res.Failures, "Dead")
	assert.Len(t, res.Jobs, 1)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, hits["flaky"])
	assert.Equal(t, 1, hits["dead"], "terminal statuses are not retried")
}
