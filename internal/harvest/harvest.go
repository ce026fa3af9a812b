package harvest

import (
	"context"
	"fmt"
	"log"
	"time"

	"fdehunt-engine/internal/config"
	"fdehunt-engine/internal/dedup"
	"fdehunt-engine/internal/domain"
	"fdehunt-engine/internal/events"
	"fdehunt-engine/internal/fetch"
	"fdehunt-engine/internal/scrape"
	"fdehunt-engine/internal/scrape/lever"
	"fdehunt-engine/internal/store"

	"github.com/google/uuid"
)

// Run executes one harvest: loads the seen set, walks every enabled
// platform through the orchestrator, applies the recency filter, the
// cross-platform collapse, and the seen-set dedup, and returns the
// report. The updated seen set rides on the report so the caller can
// persist it after exports succeed. hub may be nil.
func Run(ctx context.Context, cfg config.Config, client *fetch.Client, st *store.SeenStore, hub *events.Hub) (*Report, error) {
	started := time.Now()
	runID := uuid.NewString()

	seen, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load seen set: %w", err)
	}
	log.Printf("[harvest] run=%s seen=%d", runID, seen.Len())

	registry := scrape.NewRegistry(lever.Options{MaxAgeDays: cfg.Sources.Lever.MaxAgeDays})

	report := &Report{
		RunID:     runID,
		StartedAt: started,
		Stats:     make(map[string]domain.JobStats),
		Anomalies: make(map[string]int),
		Failures:  make(map[string]error),
	}

	passes := []struct {
		source    domain.Source
		enabled   bool
		companies []config.Company
	}{
		{domain.SourceAshby, cfg.Sources.Ashby.Enabled, cfg.Sources.Ashby.Companies},
		{domain.SourceGreenhouse, cfg.Sources.Greenhouse.Enabled, cfg.Sources.Greenhouse.Companies},
		{domain.SourceLever, cfg.Sources.Lever.Enabled, cfg.Sources.Lever.Companies},
	}

	// one deadline over every platform pass; stragglers land in Failures
	scrapeCtx := ctx
	if cfg.RunTimeout() > 0 {
		var cancel context.CancelFunc
		scrapeCtx, cancel = context.WithTimeout(ctx, cfg.RunTimeout())
		defer cancel()
	}

	var harvested []domain.Job
	for _, p := range passes {
		if !p.enabled {
			continue
		}
		targets := scrape.Targets(p.source, p.companies)
		if len(targets) == 0 {
			continue
		}
		adapter, err := registry.Adapter(p.source)
		if err != nil {
			return nil, err
		}

		opts := scrape.Options{
			MaxConcurrent: cfg.Harvest.MaxConcurrent,
			Retry: fetch.Policy{
				MaxAttempts: cfg.Retry.MaxAttempts,
				BaseDelay:   cfg.RetryBaseDelay(),
			},
			Keywords:    cfg.Filters.Keywords,
			UnknownIsUS: cfg.UnknownLocationIsUS(),
		}
		if hub != nil {
			src := string(p.source)
			opts.OnCompany = func(company string, matches int, err error) {
				ev := events.CompanyDone{Source: src, Company: company, Matches: matches}
				if err != nil {
					ev.Err = err.Error()
				}
				hub.Publish(runID, events.TypeCompanyDone, ev)
			}
		}

		res := scrape.ScrapeAll(scrapeCtx, client, adapter, targets, opts)
		harvested = append(harvested, res.Jobs...)
		for name, s := range res.Stats {
			agg := report.Stats[name]
			agg.Merge(s)
			report.Stats[name] = agg
		}
		for name, n := range res.Anomalies {
			report.Anomalies[name] += n
		}
		for name, ferr := range res.Failures {
			// a company can sit on several platforms; keep its first failure
			if _, ok := report.Failures[name]; !ok {
				report.Failures[name] = ferr
			}
		}

		if hub != nil {
			hub.Publish(runID, events.TypePlatformDone, events.PlatformDone{
				Source:    string(p.source),
				Companies: len(targets),
				Matches:   len(res.Jobs),
				Failures:  len(res.Failures),
			})
		}
		log.Printf("[harvest] source=%s companies=%d matches=%d failures=%d",
			p.source, len(targets), len(res.Jobs), len(res.Failures))
	}

	report.Matched = len(harvested)

	if cfg.Filters.MaxAgeDays > 0 {
		kept := filterRecent(harvested, cfg.Filters.MaxAgeDays, started)
		if dropped := len(harvested) - len(kept); dropped > 0 {
			log.Printf("[harvest] dropped=%d postings older than %dd", dropped, cfg.Filters.MaxAgeDays)
		}
		harvested = kept
	}

	harvested = dedup.CollapseBatch(harvested)

	newJobs, updated := dedup.Dedupe(harvested, seen)
	report.NewJobs = newJobs
	report.Seen = updated
	report.Elapsed = time.Since(started)

	if hub != nil {
		hub.Publish(runID, events.TypeRunDone, events.RunDone{
			RunID:    runID,
			NewJobs:  len(newJobs),
			Failures: len(report.Failures),
			Elapsed:  report.Elapsed.Round(time.Millisecond).String(),
		})
	}
	return report, nil
}

// filterRecent keeps jobs published within the last maxAgeDays. Jobs
// whose published date is missing or unparseable stay in.
func filterRecent(jobs []domain.Job, maxAgeDays int, now time.Time) []domain.Job {
	cutoff := now.AddDate(0, 0, -maxAgeDays)
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		t, err := time.Parse("2006-01-02", j.PublishedDate)
		if err == nil && t.Before(cutoff) {
			continue
		}
		out = append(out, j)
	}
	return out
}
