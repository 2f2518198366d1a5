package listing

import "time"

// State is the mutable filter state behind a listing screen. Changing
// any filter value snaps back to the first page so the user never lands
// on an empty page after narrowing the result set; changing only the
// page size keeps the current page.
type State struct {
	Filter
}

func NewState() *State {
	return &State{Filter: Default()}
}

func (s *State) SetSearch(term string) {
	s.Search = term
	s.Page = DefaultPage
}

func (s *State) SetJobType(jobType string) {
	s.JobType = jobType
	s.Page = DefaultPage
}

func (s *State) SetStatus(status string) {
	s.Status = status
	s.Page = DefaultPage
}

func (s *State) SetSalaryRange(min, max *float64) {
	s.MinSalary = min
	s.MaxSalary = max
	s.Page = DefaultPage
}

func (s *State) SetDateRange(from, to *time.Time) {
	s.DateFrom = from
	s.DateTo = to
	s.Page = DefaultPage
}

func (s *State) SetPage(page int) {
	if page < 1 {
		page = DefaultPage
	}
	s.Page = page
}

func (s *State) SetPageSize(size int) {
	if size < 1 {
		size = DefaultPageSize
	}
	s.PageSize = size
}

// ClearAll resets every filter back to defaults in one action.
func (s *State) ClearAll() {
	s.Filter = Default()
}
