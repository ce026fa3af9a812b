package scrape

import (
	"fmt"

	"fdehunt-engine/internal/config"
	"fdehunt-engine/internal/domain"
	"fdehunt-engine/internal/scrape/ashby"
	"fdehunt-engine/internal/scrape/greenhouse"
	"fdehunt-engine/internal/scrape/lever"
	"fdehunt-engine/internal/scrape/types"
)

// Registry maps each source onto its platform adapter. Adding a platform
// means adding an adapter package and one entry here.
type Registry map[domain.Source]types.Adapter

func NewRegistry(leverOpts lever.Options) Registry {
	return Registry{
		domain.SourceAshby:      ashby.New(),
		domain.SourceGreenhouse: greenhouse.New(),
		domain.SourceLever:      lever.New(leverOpts),
	}
}

// Adapter returns the adapter for source.
func (r Registry) Adapter(source domain.Source) (types.Adapter, error) {
	a, ok := r[source]
	if !ok {
		return nil, fmt.Errorf("no adapter for source %q", source)
	}
	return a, nil
}

// Targets maps one source's configured companies onto harvest targets,
// skipping blank slugs and defaulting the display name to the slug.
func Targets(source domain.Source, companies []config.Company) []domain.CompanyTarget {
	out := make([]domain.CompanyTarget, 0, len(companies))
	for _, c := range companies {
		if c.Slug == "" {
			continue
		}
		name := c.Name
		if name == "" {
			name = c.Slug
		}
		out = append(out, domain.CompanyTarget{
			Name:        name,
			Slug:        c.Slug,
			Source:      source,
			VCPortfolio: c.VCPortfolio,
		})
	}
	return out
}
