package domain

// CompanyTarget is one board to harvest: the display name plus the
// platform-specific slug used to build its URL.
type CompanyTarget struct {
	Name   string
	Slug   string
	Source Source

	// VCPortfolio marks an Ashby umbrella board that aggregates postings
	// for many companies; each posting's department carries the real
	// company name.
	VCPortfolio bool
}
