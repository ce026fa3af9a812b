package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fdehunt-engine/internal/config"
	"fdehunt-engine/internal/domain"
	"fdehunt-engine/internal/scrape/lever"
)

func TestRegistryCoversEverySource(t *testing.T) {
	r := NewRegistry(lever.Options{MaxAgeDays: 30})

	for _, src := range []domain.Source{domain.SourceAshby, domain.SourceGreenhouse, domain.SourceLever} {
		a, err := r.Adapter(src)
		require.NoError(t, err)
		assert.Equal(t, src, a.Source())
	}

	_, err := r.Adapter(domain.Source("workday"))
	assert.Error(t, err)
}

func TestTargets(t *testing.T) {
	companies := []config.Company{
		{Name: "Acme", Slug: "acme"},
		{Slug: "globex"},
		{Name: "No Slug"},
		{Name: "Vertex", Slug: "vertex", VCPortfolio: true},
	}

	targets := Targets(domain.SourceAshby, companies)
	require.Len(t, targets, 3)

	assert.Equal(t, "Acme", targets[0].Name)
	assert.Equal(t, "globex", targets[1].Name, "display name defaults to the slug")
	assert.True(t, targets[2].VCPortfolio)
	for _, tgt := range targets {
		assert.Equal(t, domain.SourceAshby, tgt.Source)
	}
}
