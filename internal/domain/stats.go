package domain

// JobStats tallies the geography split of every normalized posting for one
// company. TotalJobs always equals USJobs+NonUSJobs.
type JobStats struct {
	TotalJobs int
	USJobs    int
	NonUSJobs int

	// NonUSLocations holds the distinct non-empty location strings of
	// non-US postings, in first-seen order.
	NonUSLocations []string

	nonUSSeen map[string]struct{}
}

// AddUS counts one US-classified posting.
func (s *JobStats) AddUS() {
	s.TotalJobs++
	s.USJobs++
}

// AddNonUS counts one non-US posting and records its location when the
// string is non-empty and not seen before.
func (s *JobStats) AddNonUS(location string) {
	s.TotalJobs++
	s.NonUSJobs++
	if location == "" {
		return
	}
	if s.nonUSSeen == nil {
		s.nonUSSeen = make(map[string]struct{})
	}
	if _, ok := s.nonUSSeen[location]; ok {
		return
	}
	s.nonUSSeen[location] = struct{}{}
	s.NonUSLocations = append(s.NonUSLocations, location)
}

// Merge folds other into s, preserving first-seen location order across
// the two (s first, then other's unseen entries).
func (s *JobStats) Merge(other JobStats) {
	s.TotalJobs += other.TotalJobs
	s.USJobs += other.USJobs
	s.NonUSJobs += other.NonUSJobs
	for _, loc := range other.NonUSLocations {
		if s.nonUSSeen == nil {
			s.nonUSSeen = make(map[string]struct{})
		}
		if _, ok := s.nonUSSeen[loc]; ok {
			continue
		}
		s.nonUSSeen[loc] = struct{}{}
		s.NonUSLocations = append(s.NonUSLocations, loc)
	}
}
