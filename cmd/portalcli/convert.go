package main

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/pflag"

	"jobportal_backend/internal/listing"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services/dto"
)

// buildListingState seeds the filter state from an optional shared
// query string, then applies any explicitly passed flags on top.
func buildListingState(fs *pflag.FlagSet, query, search, jobType string, minSalary, maxSalary float64, dateFrom, dateTo string, page, pageSize int) (*listing.State, error) {
	state := listing.NewState()

	if query != "" {
		values, err := url.ParseQuery(query)
		if err != nil {
			return nil, fmt.Errorf("invalid --query: %w", err)
		}
		state.Filter = listing.DecodeQuery(values)
	}

	if fs.Changed("search") {
		state.SetSearch(search)
	}
	if fs.Changed("type") {
		state.SetJobType(jobType)
	}

	if fs.Changed("min-salary") || fs.Changed("max-salary") {
		min, max := state.MinSalary, state.MaxSalary
		if fs.Changed("min-salary") {
			min = &minSalary
		}
		if fs.Changed("max-salary") {
			max = &maxSalary
		}
		state.SetSalaryRange(min, max)
	}

	if fs.Changed("from") || fs.Changed("to") {
		from, to := state.DateFrom, state.DateTo
		var err error
		if fs.Changed("from") {
			if from, err = parseDate(dateFrom); err != nil {
				return nil, err
			}
		}
		if fs.Changed("to") {
			if to, err = parseDate(dateTo); err != nil {
				return nil, err
			}
		}
		state.SetDateRange(from, to)
	}

	if fs.Changed("page") {
		state.SetPage(page)
	}
	if fs.Changed("page-size") {
		state.SetPageSize(pageSize)
	}

	return state, nil
}

func parseDate(value string) (*time.Time, error) {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want 2006-01-02", value)
	}
	return &parsed, nil
}

func jobModels(responses []dto.JobResponse) []models.Job {
	jobs := make([]models.Job, 0, len(responses))
	for _, resp := range responses {
		jobs = append(jobs, jobModel(resp))
	}
	return jobs
}

func jobModel(resp dto.JobResponse) models.Job {
	job := models.Job{
		EmployerID:  resp.EmployerID,
		Title:       resp.Title,
		CompanyName: resp.CompanyName,
		Description: resp.Description,
		Salary:      resp.Salary,
		Location:    resp.Location,
		JobType:     resp.JobType,
	}
	job.ID = resp.ID
	job.CreatedAt = resp.CreatedAt
	job.UpdatedAt = resp.UpdatedAt
	return job
}

func applicationModels(responses []dto.ApplicationResponse) []models.Application {
	applications := make([]models.Application, 0, len(responses))
	for _, resp := range responses {
		application := models.Application{
			JobID:       resp.JobID,
			CandidateID: resp.CandidateID,
			CoverLetter: resp.CoverLetter,
			Status:      resp.Status,
			Notes:       resp.Notes,
		}
		application.ID = resp.ID
		application.CreatedAt = resp.CreatedAt
		application.UpdatedAt = resp.UpdatedAt
		if resp.Job != nil {
			job := jobModel(*resp.Job)
			application.Job = &job
		}
		applications = append(applications, application)
	}
	return applications
}
