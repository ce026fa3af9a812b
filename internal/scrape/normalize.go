package scrape

import (
	"fdehunt-engine/internal/domain"
	"fdehunt-engine/internal/scrape/types"
	"fdehunt-engine/internal/scrape/util"
)

// normalizeAll runs one company's raw records through normalize, filter,
// geography classification, and stats. Every complete record is counted
// in the stats; the returned jobs are the keyword matches classified US.
// Records missing required fields are dropped and tallied as anomalies.
func normalizeAll(adapter types.Adapter, t domain.CompanyTarget, raws []domain.RawRecord, kw *KeywordFilter, unknownIsUS bool) (jobs []domain.Job, stats domain.JobStats, anomalies int) {
	for _, raw := range raws {
		job := adapter.Normalize(raw, t)
		if !job.Complete() {
			anomalies++
			continue
		}

		isUS := util.IsUS(job.Location, unknownIsUS)
		if isUS {
			stats.AddUS()
		} else {
			stats.AddNonUS(job.Location)
		}

		if isUS && kw.Match(job, raw) {
			jobs = append(jobs, job)
		}
	}
	return jobs, stats, anomalies
}
