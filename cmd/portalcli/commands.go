package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"jobportal_backend/internal/gate"
	"jobportal_backend/internal/listing"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/portalclient"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/internal/session"
)

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	return fs
}

func (a *cli) register(ctx context.Context, args []string) error {
	if err := a.requireScreen(gate.AnonymousOnly()); err != nil {
		return err
	}

	fs := newFlagSet("register")
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (min 6 characters)")
	role := fs.String("role", "candidate", "candidate or employer")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.client.Register(ctx, &dto.RegisterRequest{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  *password,
		Role:      models.UserRole(*role),
	})
	if err != nil {
		return err
	}

	if resp.Token == "" {
		fmt.Printf("registered %s; the account is pending admin approval\n", resp.User.Email)
		return nil
	}

	if err := a.store.Login(resp.Token, sessionUser(&resp.User)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	fmt.Printf("registered and signed in as %s (%s)\n", resp.User.Email, resp.User.Role)
	return nil
}

func (a *cli) login(ctx context.Context, args []string) error {
	if err := a.requireScreen(gate.AnonymousOnly()); err != nil {
		return err
	}

	fs := newFlagSet("login")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}

	if err := a.store.Login(resp.Token, sessionUser(&resp.User)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	fmt.Printf("signed in as %s (%s)\n", resp.User.Email, resp.User.Role)
	return nil
}

func (a *cli) logout() error {
	if err := a.store.Logout(); err != nil {
		return err
	}
	fmt.Println("signed out")
	return nil
}

func (a *cli) whoami() error {
	sess := a.store.Current()
	if sess.Anonymous() {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s %s <%s> role=%s id=%s\n",
		sess.User.FirstName, sess.User.LastName, sess.User.Email, sess.User.Role, sess.User.ID)
	return nil
}

// jobs lists postings through the client-side listing pipeline. The
// --query flag seeds the state from a shared link's query string, then
// individual flags override it.
func (a *cli) jobs(ctx context.Context, args []string) error {
	if err := a.requireScreen(gate.Public()); err != nil {
		return err
	}

	fs := newFlagSet("jobs")
	query := fs.String("query", "", "seed filters from a query string, e.g. 'jobType=Full-Time&page=2'")
	search := fs.String("search", "", "search term (title, company, location, description)")
	jobType := fs.String("type", "", "job type filter (Full-Time, Part-Time, Contract, Internship)")
	minSalary := fs.Float64("min-salary", 0, "minimum salary")
	maxSalary := fs.Float64("max-salary", 0, "maximum salary")
	dateFrom := fs.String("from", "", "posted-after date (2006-01-02)")
	dateTo := fs.String("to", "", "posted-before date (2006-01-02)")
	page := fs.Int("page", 0, "page number")
	pageSize := fs.Int("page-size", 0, "results per page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	state, err := buildListingState(fs, *query, *search, *jobType, *minSalary, *maxSalary, *dateFrom, *dateTo, *page, *pageSize)
	if err != nil {
		return err
	}

	listed, err := a.client.ListJobs(ctx)
	if err != nil {
		return err
	}

	jobs := jobModels(listed)
	visible, total := listing.FilterJobs(jobs, state.Filter)

	fmt.Printf("%d job(s) match, page %d (%d per page)\n", total, state.Page, state.PageSize)
	for _, job := range visible {
		fmt.Printf("  %s  %-30s  %-20s  %-12s  %s\n",
			job.ID, job.Title, job.CompanyName, job.JobType, job.Salary)
	}
	if encoded := listing.EncodeQuery(state.Filter).Encode(); encoded != "" {
		fmt.Printf("shareable query: %s\n", encoded)
	}
	return nil
}

func (a *cli) apply(ctx context.Context, args []string) error {
	if err := a.requireScreen(gate.RoleRestricted(models.UserRoleCandidate)); err != nil {
		return err
	}
	user, err := a.currentUser()
	if err != nil {
		return err
	}

	fs := newFlagSet("apply")
	jobID := fs.String("job", "", "job id")
	resumePath := fs.String("resume", "", "path to resume file (PDF or Word)")
	coverLetter := fs.String("cover-letter", "", "cover letter text")
	coverLetterPath := fs.String("cover-letter-file", "", "path to cover letter file (PDF or Word)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *jobID == "" || *resumePath == "" {
		return fmt.Errorf("--job and --resume are required")
	}
	if *coverLetter != "" && *coverLetterPath != "" {
		return fmt.Errorf("--cover-letter and --cover-letter-file are mutually exclusive")
	}

	exists, err := a.client.CheckApplicationExists(ctx, *jobID, user.ID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("you have already applied for this job")
	}

	file, err := os.Open(*resumePath)
	if err != nil {
		return err
	}
	defer file.Close()

	params := &portalclient.ApplyParams{
		JobID:             *jobID,
		CoverLetter:       *coverLetter,
		Resume:            file,
		ResumeFilename:    filepath.Base(*resumePath),
		ResumeContentType: contentTypeFor(*resumePath),
	}

	if *coverLetterPath != "" {
		clFile, err := os.Open(*coverLetterPath)
		if err != nil {
			return err
		}
		defer clFile.Close()

		params.CoverLetterFile = clFile
		params.CoverLetterFilename = filepath.Base(*coverLetterPath)
		params.CoverLetterContentType = contentTypeFor(*coverLetterPath)
	}

	resp, err := a.client.CreateApplication(ctx, params)
	if err != nil {
		return err
	}

	fmt.Printf("application %s submitted, status %q\n", resp.ID, resp.Status)
	return nil
}

func (a *cli) applications(ctx context.Context, args []string) error {
	if err := a.requireScreen(gate.RoleRestricted(models.UserRoleCandidate)); err != nil {
		return err
	}
	user, err := a.currentUser()
	if err != nil {
		return err
	}

	fs := newFlagSet("applications")
	status := fs.String("status", "", "status filter (received, 'under review', interview, hired, rejected, withdrawn)")
	search := fs.String("search", "", "search term over the applied job")
	page := fs.Int("page", 0, "page number")
	pageSize := fs.Int("page-size", 0, "results per page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	state := listing.NewState()
	if *search != "" {
		state.SetSearch(*search)
	}
	if *status != "" {
		state.SetStatus(*status)
	}
	if *page > 0 {
		state.SetPage(*page)
	}
	if *pageSize > 0 {
		state.SetPageSize(*pageSize)
	}

	listed, err := a.client.ListCandidateApplications(ctx, user.ID)
	if err != nil {
		return err
	}

	applications := applicationModels(listed)
	visible, total := listing.FilterApplications(applications, state.Filter)

	fmt.Printf("%d application(s) match, page %d\n", total, state.Page)
	for _, application := range visible {
		title := "(job removed)"
		if application.Job != nil {
			title = application.Job.Title
		}
		fmt.Printf("  %s  %-30s  %s\n", application.ID, title, application.Status)
	}
	return nil
}

func (a *cli) withdraw(ctx context.Context, args []string) error {
	if err := a.requireScreen(gate.RoleRestricted(models.UserRoleCandidate)); err != nil {
		return err
	}

	fs := newFlagSet("withdraw")
	id := fs.String("id", "", "application id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("--id is required")
	}

	if err := a.client.WithdrawApplication(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("application %s withdrawn\n", *id)
	return nil
}

func (a *cli) status(ctx context.Context, args []string) error {
	if err := a.requireScreen(gate.RoleRestricted(models.UserRoleEmployer)); err != nil {
		return err
	}

	fs := newFlagSet("status")
	id := fs.String("id", "", "application id")
	status := fs.String("status", "", "new status (received, 'under review', interview, hired, rejected)")
	notes := fs.String("notes", "", "internal notes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" || *status == "" {
		return fmt.Errorf("--id and --status are required")
	}

	resp, err := a.client.UpdateApplicationStatus(ctx, *id, models.ApplicationStatus(*status), *notes)
	if err != nil {
		if portalclient.IsConflict(err) {
			return fmt.Errorf("application %s is final and can no longer change", *id)
		}
		return err
	}
	fmt.Printf("application %s is now %q\n", resp.ID, resp.Status)
	return nil
}

func (a *cli) pendingEmployers(ctx context.Context) error {
	if err := a.requireScreen(gate.RoleRestricted(models.UserRoleAdmin)); err != nil {
		return err
	}

	pending, err := a.client.ListPendingEmployers(ctx)
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		fmt.Println("no employers awaiting approval")
		return nil
	}
	for _, employer := range pending {
		fmt.Printf("  %s  %s %s <%s>\n", employer.ID, employer.FirstName, employer.LastName, employer.Email)
	}
	return nil
}

func (a *cli) verifyEmployer(ctx context.Context, args []string) error {
	if err := a.requireScreen(gate.RoleRestricted(models.UserRoleAdmin)); err != nil {
		return err
	}

	fs := newFlagSet("verify-employer")
	id := fs.String("id", "", "employer user id")
	action := fs.String("action", "", "approve or reject")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" || *action == "" {
		return fmt.Errorf("--id and --action are required")
	}

	resp, err := a.client.VerifyEmployer(ctx, *id, strings.ToLower(*action))
	if err != nil {
		return err
	}
	fmt.Printf("employer %s is now %s\n", resp.Email, resp.Status)
	return nil
}

func contentTypeFor(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func sessionUser(user *dto.UserResponse) *session.User {
	return &session.User{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
	}
}
