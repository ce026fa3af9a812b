package scrape

import (
	"strings"

	"fdehunt-engine/internal/domain"
)

// DefaultKeywords target forward-deployed and field engineering roles.
var DefaultKeywords = []string{
	"forward deployed engineer",
	"forward deployed",
	"fde",
	"field engineer",
	"customer engineer",
	"solutions engineer",
}

// descriptionKeys are raw-record fields that may carry a longer text to
// search besides the role name. Platforms disagree on the key.
var descriptionKeys = []string{"description", "descriptionPlain", "descriptionHtml", "content"}

// KeywordFilter matches roles against a keyword set, case-insensitive
// substring semantics.
type KeywordFilter struct {
	needles []string
}

func NewKeywordFilter(keywords []string) *KeywordFilter {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	ks := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			ks = append(ks, k)
		}
	}
	return &KeywordFilter{needles: ks}
}

// Match reports whether the role name, or any longer description field
// the raw record carries, contains one of the keywords.
func (f *KeywordFilter) Match(job domain.Job, raw domain.RawRecord) bool {
	blob := strings.ToLower(job.RoleName)
	for _, key := range descriptionKeys {
		if d := raw.Str(key); d != "" {
			blob += " " + strings.ToLower(d)
		}
	}
	for _, n := range f.needles {
		if strings.Contains(blob, n) {
			return true
		}
	}
	return false
}
