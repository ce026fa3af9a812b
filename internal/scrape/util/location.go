package util

import (
	"regexp"
	"strings"
)

// Geography classification of free-form location strings. The heuristics
// are substring and word-boundary checks; they trade precision for zero
// network calls, so postings like "London, KY" misclassify. Non-US
// markers win over US markers so "Remote - Europe" lands non-US even
// though "remote" alone reads as US.

var (
	// "<city>, <state abbrev>" forms
	stateAbbrevPattern = regexp.MustCompile(`(?i)\w+,\s*(al|ak|az|ar|ca|co|ct|de|fl|ga|hi|id|il|in|ia|ks|ky|la|me|md|ma|mi|mn|ms|mo|mt|ne|nv|nh|nj|nm|ny|nc|nd|oh|ok|or|pa|ri|sc|sd|tn|tx|ut|vt|va|wa|wv|wi|wy|dc)\b`)

	usHubPattern = regexp.MustCompile(`(?i)\b(nyc|sf|silicon valley|bay area)\b`)

	remotePattern = regexp.MustCompile(`(?i)\b(remote|us-remote)\b`)

	nonUSShortPattern = regexp.MustCompile(`(?i)\b(uk|eu|emea|apac)\b`)
)

var usCities = []string{
	"new york", "san francisco", "los angeles", "chicago", "boston",
	"seattle", "austin", "denver", "atlanta", "miami",
}

var usStates = []string{
	"alabama", "alaska", "arizona", "arkansas", "california", "colorado",
	"connecticut", "delaware", "florida", "georgia", "hawaii", "idaho",
	"illinois", "indiana", "iowa", "kansas", "kentucky", "louisiana",
	"maine", "maryland", "massachusetts", "michigan", "minnesota",
	"mississippi", "missouri", "montana", "nebraska", "nevada",
	"new hampshire", "new jersey", "new mexico", "north carolina",
	"north dakota", "ohio", "oklahoma", "oregon", "pennsylvania",
	"rhode island", "south carolina", "south dakota", "tennessee",
	"texas", "utah", "vermont", "virginia", "washington",
	"west virginia", "wisconsin", "wyoming",
}

var usCountryMarkers = []string{"united states", "usa", "u.s."}

var nonUSPlaces = []string{
	"london", "united kingdom", "england", "scotland", "ireland", "dublin",
	"germany", "berlin", "munich", "france", "paris", "netherlands",
	"amsterdam", "spain", "madrid", "barcelona", "portugal", "lisbon",
	"poland", "warsaw", "sweden", "stockholm", "switzerland", "zurich",
	"canada", "toronto", "vancouver", "montreal", "singapore", "japan",
	"tokyo", "india", "bangalore", "bengaluru", "mumbai", "australia",
	"sydney", "melbourne", "brazil", "sao paulo", "mexico city", "israel",
	"tel aviv", "dubai", "europe", "latam",
}

// IsUS classifies loc as US or non-US. Empty or unrecognized strings
// fall to unknownIsUS, which callers take from config.
func IsUS(loc string, unknownIsUS bool) bool {
	l := strings.ToLower(CleanText(loc))
	if l == "" {
		return unknownIsUS
	}

	for _, m := range nonUSPlaces {
		if strings.Contains(l, m) {
			return false
		}
	}
	if nonUSShortPattern.MatchString(l) {
		return false
	}

	if stateAbbrevPattern.MatchString(l) || usHubPattern.MatchString(l) {
		return true
	}
	for _, c := range usCities {
		if strings.Contains(l, c) {
			return true
		}
	}
	for _, s := range usStates {
		if strings.Contains(l, s) {
			return true
		}
	}
	for _, m := range usCountryMarkers {
		if strings.Contains(l, m) {
			return true
		}
	}
	if remotePattern.MatchString(l) {
		return true
	}

	return unknownIsUS
}
