package listing

import (
	"net/url"
	"strconv"
	"time"
)

// Query-string parameter names recognized by the listing engine. Dates
// travel as date-only values.
const (
	paramSearch    = "search"
	paramJobType   = "jobType"
	paramStatus    = "status"
	paramMinSalary = "minSalary"
	paramMaxSalary = "maxSalary"
	paramDateFrom  = "dateFrom"
	paramDateTo    = "dateTo"
	paramPage      = "page"
	paramPageSize  = "pageSize"

	dateLayout = "2006-01-02"
)

// EncodeQuery serializes f into query parameters, omitting every value
// still at its default so shared links stay minimal.
func EncodeQuery(f Filter) url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set(paramSearch, f.Search)
	}
	if f.JobType != "" && f.JobType != CategoryAll {
		q.Set(paramJobType, f.JobType)
	}
	if f.Status != "" && f.Status != CategoryAll {
		q.Set(paramStatus, f.Status)
	}
	if f.MinSalary != nil {
		q.Set(paramMinSalary, strconv.FormatFloat(*f.MinSalary, 'f', -1, 64))
	}
	if f.MaxSalary != nil {
		q.Set(paramMaxSalary, strconv.FormatFloat(*f.MaxSalary, 'f', -1, 64))
	}
	if f.DateFrom != nil && f.DateTo != nil {
		q.Set(paramDateFrom, f.DateFrom.Format(dateLayout))
		q.Set(paramDateTo, f.DateTo.Format(dateLayout))
	}
	if f.Page > DefaultPage {
		q.Set(paramPage, strconv.Itoa(f.Page))
	}
	if f.PageSize != 0 && f.PageSize != DefaultPageSize {
		q.Set(paramPageSize, strconv.Itoa(f.PageSize))
	}
	return q
}

// DecodeQuery seeds a filter from query parameters, so a shared link
// reproduces the same view. Unknown or malformed values fall back to
// their defaults.
func DecodeQuery(q url.Values) Filter {
	f := Default()
	f.Search = q.Get(paramSearch)
	f.JobType = q.Get(paramJobType)
	f.Status = q.Get(paramStatus)

	if v, err := strconv.ParseFloat(q.Get(paramMinSalary), 64); err == nil {
		f.MinSalary = &v
	}
	if v, err := strconv.ParseFloat(q.Get(paramMaxSalary), 64); err == nil {
		f.MaxSalary = &v
	}
	if from, err := time.Parse(dateLayout, q.Get(paramDateFrom)); err == nil {
		if to, err := time.Parse(dateLayout, q.Get(paramDateTo)); err == nil {
			f.DateFrom = &from
			f.DateTo = &to
		}
	}
	if v, err := strconv.Atoi(q.Get(paramPage)); err == nil && v >= 1 {
		f.Page = v
	}
	if v, err := strconv.Atoi(q.Get(paramPageSize)); err == nil && v >= 1 {
		f.PageSize = v
	}
	return f
}
