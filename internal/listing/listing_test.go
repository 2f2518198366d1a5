package listing

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal_backend/internal/models"
)

func job(title, company, location, jobType, salary string, createdAt time.Time) models.Job {
	j := models.Job{
		Title:       title,
		CompanyName: company,
		Location:    location,
		JobType:     jobType,
		Salary:      salary,
	}
	j.CreatedAt = createdAt
	return j
}

func sampleJobs() []models.Job {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []models.Job{
		job("Senior Go Developer", "Acme", "Berlin", "Full-Time", "90000", base),
		job("Frontend Engineer", "Globex", "Remote", "Full-Time", "50000-70000", base.AddDate(0, 0, 5)),
		job("Data Analyst", "Initech", "New York", "Part-Time", "abc", base.AddDate(0, 0, 10)),
		job("Go Backend Intern", "Acme", "Berlin", "Part-Time", "30000", base.AddDate(0, 0, 15)),
	}
}

func fptr(v float64) *float64 { return &v }

func TestFilterJobs_SearchMatchesAnyField(t *testing.T) {
	jobs := sampleJobs()

	tests := []struct {
		name   string
		search string
		want   int
	}{
		{"empty term matches everything", "", 4},
		{"title match", "go", 2},
		{"company match case-insensitive", "ACME", 2},
		{"location match", "new york", 1},
		{"no match", "kubernetes", 0},
	}

	f := Default()
	f.PageSize = 100
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.Search = tt.search
			_, total := FilterJobs(jobs, f)
			assert.Equal(t, tt.want, total)
		})
	}
}

func TestFilterJobs_JobTypeSentinel(t *testing.T) {
	jobs := sampleJobs()
	f := Default()
	f.PageSize = 100

	f.JobType = "Full-Time"
	_, total := FilterJobs(jobs, f)
	assert.Equal(t, 2, total)

	f.JobType = CategoryAll
	_, total = FilterJobs(jobs, f)
	assert.Equal(t, 4, total)

	f.JobType = ""
	_, total = FilterJobs(jobs, f)
	assert.Equal(t, 4, total)
}

func TestFilterJobs_SalaryRange(t *testing.T) {
	f := Default()
	f.PageSize = 100
	f.MinSalary = fptr(60000)
	f.MaxSalary = fptr(80000)

	jobs := sampleJobs()
	page, total := FilterJobs(jobs, f)
	require.Equal(t, 2, total)

	// "90000" falls outside [60000, 80000]; "50000-70000" overlaps it;
	// "abc" is unparseable and fails open.
	titles := []string{page[0].Title, page[1].Title}
	assert.Contains(t, titles, "Frontend Engineer")
	assert.Contains(t, titles, "Data Analyst")
}

func TestFilterJobs_SalaryRangeContainment(t *testing.T) {
	jobs := []models.Job{job("Wide Range", "Acme", "Berlin", "Full-Time", "10000-200000", time.Now())}
	f := Default()
	f.MinSalary = fptr(60000)
	f.MaxSalary = fptr(80000)

	_, total := FilterJobs(jobs, f)
	assert.Equal(t, 1, total, "job range containing the requested range must match")
}

func TestFilterJobs_OpenEndedSalaryBound(t *testing.T) {
	jobs := sampleJobs()
	f := Default()
	f.PageSize = 100
	f.MinSalary = fptr(150000)

	_, total := FilterJobs(jobs, f)
	assert.Equal(t, 1, total, "only the unparseable salary fails open above 150000")
}

func TestFilterJobs_DateRange(t *testing.T) {
	jobs := sampleJobs()
	f := Default()
	f.PageSize = 100

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 6, 23, 59, 59, 0, time.UTC)
	f.DateFrom = &from
	f.DateTo = &to
	_, total := FilterJobs(jobs, f)
	assert.Equal(t, 2, total)

	// A partial range is ignored.
	f.DateTo = nil
	_, total = FilterJobs(jobs, f)
	assert.Equal(t, 4, total)
}

func TestFilterJobs_TotalCountIsFilteredCount(t *testing.T) {
	jobs := sampleJobs()
	f := Default()
	f.JobType = "Part-Time"
	f.PageSize = 1

	page, total := FilterJobs(jobs, f)
	assert.Equal(t, 2, total, "total must come from the filtered set, not the raw collection")
	assert.Len(t, page, 1)
}

func TestFilterJobs_PaginationInvariants(t *testing.T) {
	var jobs []models.Job
	for i := 0; i < 23; i++ {
		jobs = append(jobs, job(fmt.Sprintf("Job %02d", i), "Acme", "Berlin", "Full-Time", "50000", time.Now()))
	}

	f := Default()
	f.PageSize = 5

	seen := map[string]bool{}
	collected := 0
	for page := 1; ; page++ {
		f.Page = page
		items, total := FilterJobs(jobs, f)
		require.Equal(t, 23, total)
		if len(items) == 0 {
			break
		}
		for _, it := range items {
			assert.False(t, seen[it.Title], "item %q appeared on two pages", it.Title)
			seen[it.Title] = true
		}
		collected += len(items)
	}
	assert.Equal(t, 23, collected, "page sizes must sum to the total count")
}

func TestFilterJobs_Idempotent(t *testing.T) {
	jobs := sampleJobs()
	f := Default()
	f.Search = "go"

	first, totalFirst := FilterJobs(jobs, f)
	second, totalSecond := FilterJobs(jobs, f)

	assert.Equal(t, first, second)
	assert.Equal(t, totalFirst, totalSecond)
	assert.Len(t, jobs, 4, "source collection must not be mutated")
}

func TestFilterJobs_EmptyCollection(t *testing.T) {
	page, total := FilterJobs(nil, Default())
	assert.Empty(t, page)
	assert.Zero(t, total)
}

func TestFilterApplications_StatusAndMissingJob(t *testing.T) {
	j := job("Senior Go Developer", "Acme", "Berlin", "Full-Time", "90000", time.Now())
	apps := []models.Application{
		{Status: models.ApplicationStatusReceived, Job: &j},
		{Status: models.ApplicationStatusHired, Job: &j},
		{Status: models.ApplicationStatusReceived, Job: nil},
	}

	f := Default()
	f.Status = string(models.ApplicationStatusReceived)
	_, total := FilterApplications(apps, f)
	assert.Equal(t, 2, total)

	// jobType filtering fails open when the job is not preloaded.
	f = Default()
	f.JobType = "Full-Time"
	_, total = FilterApplications(apps, f)
	assert.Equal(t, 3, total)
}

func TestState_FilterChangeResetsPage(t *testing.T) {
	s := NewState()
	s.SetPage(4)
	require.Equal(t, 4, s.Page)

	s.SetSearch("go")
	assert.Equal(t, 1, s.Page)

	s.SetPage(3)
	s.SetJobType("Full-Time")
	assert.Equal(t, 1, s.Page)

	s.SetPage(3)
	s.SetSalaryRange(fptr(0), fptr(50000))
	assert.Equal(t, 1, s.Page)

	// Changing only the page size keeps the current page.
	s.SetPage(2)
	s.SetPageSize(12)
	assert.Equal(t, 2, s.Page)
	assert.Equal(t, 12, s.PageSize)
}

func TestState_ClearAll(t *testing.T) {
	s := NewState()
	s.SetSearch("go")
	s.SetJobType("Full-Time")
	s.SetSalaryRange(fptr(10), fptr(20))
	s.SetPage(3)

	s.ClearAll()
	assert.Equal(t, Default(), s.Filter)
}

func TestQuery_RoundTrip(t *testing.T) {
	f := Default()
	f.JobType = "Full-Time"
	f.Page = 2

	q := EncodeQuery(f)
	assert.Equal(t, "Full-Time", q.Get("jobType"))
	assert.Equal(t, "2", q.Get("page"))
	assert.Empty(t, q.Get("search"))
	assert.Empty(t, q.Get("pageSize"), "defaults must be omitted from the URL")

	back := DecodeQuery(q)
	assert.Equal(t, f, back)
}

func TestQuery_RoundTripFull(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	f := Default()
	f.Search = "backend"
	f.Status = "received"
	f.MinSalary = fptr(50000)
	f.MaxSalary = fptr(100000)
	f.DateFrom = &from
	f.DateTo = &to
	f.Page = 3
	f.PageSize = 12

	back := DecodeQuery(EncodeQuery(f))
	assert.Equal(t, f, back)
}

func TestQuery_DefaultsProduceEmptyQuery(t *testing.T) {
	assert.Empty(t, EncodeQuery(Default()).Encode())
}
