package scrape

import (
	"context"
	"fmt"
	"log"

	"fdehunt-engine/internal/domain"
	"fdehunt-engine/internal/fetch"
	"fdehunt-engine/internal/scrape/types"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Options tunes one orchestrator pass over a target list.
type Options struct {
	MaxConcurrent int // counting gate size; 0 means 8
	Retry         fetch.Policy
	Keywords      []string // empty means DefaultKeywords
	UnknownIsUS   bool     // classification of empty/unrecognized locations

	// OnCompany, when set, fires once per finished company task with its
	// keyword-match count, or its terminal error.
	OnCompany func(company string, matches int, err error)
}

// Result is everything one pass produced. Jobs keeps each company's
// postings contiguous, in task completion order. Failures holds the
// terminal error per company that yielded nothing; companies absent from
// Failures completed (possibly with zero matches).
type Result struct {
	Jobs      []domain.Job
	Stats     map[string]domain.JobStats
	Anomalies map[string]int
	Failures  map[string]error
}

type companyResult struct {
	target    domain.CompanyTarget
	jobs      []domain.Job
	stats     domain.JobStats
	anomalies int
	err       error
}

// ScrapeAll fans one task per target out under the concurrency gate and
// collects whatever completes. A failing company is recorded and never
// cancels its siblings; ctx expiry abandons the stragglers while the
// finished results survive.
func ScrapeAll(ctx context.Context, client *fetch.Client, adapter types.Adapter, targets []domain.CompanyTarget, opts Options) Result {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 8
	}
	kw := NewKeywordFilter(opts.Keywords)
	gate := semaphore.NewWeighted(int64(opts.MaxConcurrent))
	results := make(chan companyResult, len(targets))

	var g errgroup.Group
	for _, t := range targets {
		t := t
		g.Go(func() error {
			res := companyResult{target: t}
			raws, err := fetchExtract(ctx, client, adapter, t, opts.Retry, gate)
			if err != nil {
				res.err = err
				results <- res
				return nil // best-effort: don't cancel siblings
			}
			// gate released; normalization runs unthrottled
			res.jobs, res.stats, res.anomalies = normalizeAll(adapter, t, raws, kw, opts.UnknownIsUS)
			results <- res
			return nil
		})
	}
	_ = g.Wait()
	close(results)

	out := Result{
		Stats:     make(map[string]domain.JobStats, len(targets)),
		Anomalies: make(map[string]int),
		Failures:  make(map[string]error),
	}
	for res := range results {
		name := res.target.Name
		if opts.OnCompany != nil {
			opts.OnCompany(name, len(res.jobs), res.err)
		}
		if res.err != nil {
			out.Failures[name] = res.err
			log.Printf("[ats:%s] company=%q slug=%q err=%v", adapter.Source(), name, res.target.Slug, res.err)
			continue
		}
		out.Jobs = append(out.Jobs, res.jobs...)
		s := out.Stats[name]
		s.Merge(res.stats)
		out.Stats[name] = s
		if res.anomalies > 0 {
			out.Anomalies[name] += res.anomalies
			log.Printf("[ats:%s] company=%q dropped=%d malformed records", adapter.Source(), name, res.anomalies)
		}
	}
	return out
}

// fetchExtract holds the gate for the network and parse phases only.
// The retry middleware wraps both: a page-structure error is terminal
// and falls straight through, a 429 or transport error re-fetches.
func fetchExtract(ctx context.Context, client *fetch.Client, adapter types.Adapter, t domain.CompanyTarget, policy fetch.Policy, gate *semaphore.Weighted) ([]domain.RawRecord, error) {
	if err := gate.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("gate: %w", err)
	}
	defer gate.Release(1)

	url := adapter.BuildURL(t)
	var raws []domain.RawRecord
	err := fetch.Retry(ctx, policy, func(ctx context.Context) error {
		body, err := client.Get(ctx, url)
		if err != nil {
			return err
		}
		rs, err := adapter.Extract(body, t)
		if err != nil {
			return err
		}
		raws = rs
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return raws, nil
}
