// Package listing implements the client-side listing pipeline: search,
// categorical, salary-range and date-range filtering followed by
// pagination, in that fixed order. The total count reported for
// pagination is always recomputed from the filtered set.
package listing

import (
	"math"
	"strconv"
	"strings"
	"time"

	"jobportal_backend/internal/models"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 6
)

// CategoryAll is the sentinel select value meaning "no filtering".
const CategoryAll = "All"

// Filter is the fully-enumerated filter/paginate configuration. Nil
// pointer fields mean "not set". A date range is applied only when both
// bounds are present.
type Filter struct {
	Search    string
	JobType   string
	Status    string
	MinSalary *float64
	MaxSalary *float64
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	PageSize  int
}

// Default returns the filter with every value at its default.
func Default() Filter {
	return Filter{Page: DefaultPage, PageSize: DefaultPageSize}
}

// FilterJobs applies f to jobs and returns the visible page together
// with the filtered total. The input slice is never mutated.
func FilterJobs(jobs []models.Job, f Filter) ([]models.Job, int) {
	out := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if !matchSearch(f.Search, j.Title, j.CompanyName, j.Location, j.Description) {
			continue
		}
		if !matchCategory(f.JobType, j.JobType) {
			continue
		}
		if !matchSalary(f, j.Salary) {
			continue
		}
		if !matchDate(f, j.CreatedAt) {
			continue
		}
		out = append(out, j)
	}
	return paginate(out, f), len(out)
}

// FilterDeletedJobs is FilterJobs for the deleted-jobs view, where the
// date range applies to the deletion timestamp.
func FilterDeletedJobs(jobs []models.Job, f Filter) ([]models.Job, int) {
	out := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if !matchSearch(f.Search, j.Title, j.CompanyName, j.Location, j.Description) {
			continue
		}
		if !matchCategory(f.JobType, j.JobType) {
			continue
		}
		if !matchSalary(f, j.Salary) {
			continue
		}
		if !matchDate(f, j.DeletedAt.Time) {
			continue
		}
		out = append(out, j)
	}
	return paginate(out, f), len(out)
}

// FilterApplications applies f to applications. Search covers the
// referenced job's title and company plus the notes field; jobType and
// salary come from the referenced job and fail open when the job is not
// preloaded.
func FilterApplications(apps []models.Application, f Filter) ([]models.Application, int) {
	out := make([]models.Application, 0, len(apps))
	for _, a := range apps {
		var title, company, jobType, salary string
		if a.Job != nil {
			title = a.Job.Title
			company = a.Job.CompanyName
			jobType = a.Job.JobType
			salary = a.Job.Salary
		}
		if !matchSearch(f.Search, title, company, a.Notes) {
			continue
		}
		if a.Job != nil && !matchCategory(f.JobType, jobType) {
			continue
		}
		if !matchCategory(f.Status, string(a.Status)) {
			continue
		}
		if !matchSalary(f, salary) {
			continue
		}
		if !matchDate(f, a.CreatedAt) {
			continue
		}
		out = append(out, a)
	}
	return paginate(out, f), len(out)
}

func matchSearch(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func matchCategory(want, have string) bool {
	if want == "" || want == CategoryAll {
		return true
	}
	return want == have
}

// matchSalary checks the requested range against the stored salary,
// which is either a single number or a "min-max" encoded range. A
// salary that cannot be parsed is included: the filter fails open so
// bad data never hides a listing.
func matchSalary(f Filter, salary string) bool {
	if f.MinSalary == nil && f.MaxSalary == nil {
		return true
	}
	min, max := 0.0, math.Inf(1)
	if f.MinSalary != nil {
		min = *f.MinSalary
	}
	if f.MaxSalary != nil {
		max = *f.MaxSalary
	}

	lo, hi, ok := parseSalary(salary)
	if !ok {
		return true
	}
	return lo <= max && hi >= min
}

// parseSalary returns the salary as a [lo, hi] range; a single number
// yields lo == hi.
func parseSalary(s string) (lo, hi float64, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, false
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, v, true
	}
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, errLo := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	hi, errHi := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLo != nil || errHi != nil {
		return 0, 0, false
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, true
}

// matchDate applies the inclusive date range. A partial range (only one
// bound set) is ignored.
func matchDate(f Filter, ts time.Time) bool {
	if f.DateFrom == nil || f.DateTo == nil {
		return true
	}
	return !ts.Before(*f.DateFrom) && !ts.After(*f.DateTo)
}

func paginate[T any](items []T, f Filter) []T {
	page := f.Page
	if page < 1 {
		page = DefaultPage
	}
	size := f.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	start := size * (page - 1)
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
