package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy: defaults filled in,
// lists trimmed and deduped, plus every rule violation found.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	trimCompanies := func(scope string, cs []Company) []Company {
		seen := map[string]bool{}
		var ys []Company
		for _, c := range cs {
			c.Slug = strings.TrimSpace(c.Slug)
			c.Name = strings.TrimSpace(c.Name)
			if c.Slug == "" {
				res.addWarn("%s: company %q has no slug; skipped", scope, c.Name)
				continue
			}
			if strings.ContainsAny(c.Slug, " \t") {
				res.addErr("%s: slug %q contains whitespace", scope, c.Slug)
			}
			key := strings.ToLower(c.Slug)
			if seen[key] {
				res.addWarn("%s: duplicate slug %q dropped", scope, c.Slug)
				continue
			}
			seen[key] = true
			ys = append(ys, c)
		}
		return ys
	}

	// ---- Normalization ----

	out.Filters.Keywords = trimList(out.Filters.Keywords)
	out.Sources.Ashby.Companies = trimCompanies("sources.ashby", out.Sources.Ashby.Companies)
	out.Sources.Greenhouse.Companies = trimCompanies("sources.greenhouse", out.Sources.Greenhouse.Companies)
	out.Sources.Lever.Companies = trimCompanies("sources.lever", out.Sources.Lever.Companies)

	if out.App.DataDir == "" {
		out.App.DataDir = "data"
	}
	if out.App.OutputDir == "" {
		out.App.OutputDir = filepath.Join(out.App.DataDir, "output")
	}
	if out.Harvest.MaxConcurrent == 0 {
		out.Harvest.MaxConcurrent = 8
	}
	if out.Harvest.RunTimeoutSeconds == 0 {
		out.Harvest.RunTimeoutSeconds = 300
	}
	if out.Harvest.RequestTimeoutSeconds == 0 {
		out.Harvest.RequestTimeoutSeconds = 20
	}
	if out.Harvest.RequestsPerSecond == 0 {
		out.Harvest.RequestsPerSecond = 2
	}
	if out.Harvest.Burst == 0 {
		out.Harvest.Burst = 4
	}
	if out.Retry.MaxAttempts == 0 {
		out.Retry.MaxAttempts = 3
	}
	if out.Retry.BaseDelayMS == 0 {
		out.Retry.BaseDelayMS = 1000
	}
	out.Filters.UnknownLocation = strings.ToLower(strings.TrimSpace(out.Filters.UnknownLocation))
	if out.Filters.UnknownLocation == "" {
		out.Filters.UnknownLocation = "non-us"
	}

	// ---- Validation rules ----

	if out.Harvest.MaxConcurrent < 0 {
		res.addErr("harvest.max_concurrent must be >= 0")
	} else if out.Harvest.MaxConcurrent > 32 {
		res.addWarn("harvest.max_concurrent is very high (%d); boards may rate-limit you.", out.Harvest.MaxConcurrent)
	}
	if out.Harvest.RunTimeoutSeconds < 0 {
		res.addErr("harvest.run_timeout_seconds must be >= 0")
	}
	if out.Harvest.RequestTimeoutSeconds < 0 {
		res.addErr("harvest.request_timeout_seconds must be >= 0")
	}
	if out.Retry.MaxAttempts < 1 {
		res.addErr("retry.max_attempts must be >= 1")
	}
	if out.Retry.BaseDelayMS < 0 {
		res.addErr("retry.base_delay_ms must be >= 0")
	}

	if out.Filters.UnknownLocation != "us" && out.Filters.UnknownLocation != "non-us" {
		res.addErr("filters.unknown_location must be \"us\" or \"non-us\", got %q", out.Filters.UnknownLocation)
	}
	if out.Filters.MaxAgeDays < 0 {
		res.addErr("filters.max_age_days must be >= 0")
	}
	if out.Seen.PruneAfterDays < 0 {
		res.addErr("seen.prune_after_days must be >= 0")
	}
	if out.Sources.Lever.MaxAgeDays < 0 {
		res.addErr("sources.lever.max_age_days must be >= 0")
	}

	enabledTargets := 0
	if out.Sources.Ashby.Enabled {
		enabledTargets += len(out.Sources.Ashby.Companies)
	}
	if out.Sources.Greenhouse.Enabled {
		enabledTargets += len(out.Sources.Greenhouse.Companies)
	}
	if out.Sources.Lever.Enabled {
		enabledTargets += len(out.Sources.Lever.Companies)
	}
	if enabledTargets == 0 {
		res.addWarn("no enabled source has companies configured; a run will produce nothing.")
	}

	for _, c := range out.Sources.Greenhouse.Companies {
		if c.VCPortfolio {
			res.addWarn("sources.greenhouse: vc_portfolio on %q has no effect (ashby only)", c.Slug)
		}
	}
	for _, c := range out.Sources.Lever.Companies {
		if c.VCPortfolio {
			res.addWarn("sources.lever: vc_portfolio on %q has no effect (ashby only)", c.Slug)
		}
	}

	if out.Export.Notion.Enabled && strings.TrimSpace(out.Export.Notion.DatabaseID) == "" {
		res.addErr("export.notion.database_id is required when export.notion.enabled=true")
	}

	return out, res
}
