// portalcli is a terminal client for the job portal API. It keeps a
// durable session on disk, so login survives across invocations, and
// runs the same listing pipeline the portal screens use: search,
// category, salary and date filters followed by pagination.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"jobportal_backend/internal/gate"
	"jobportal_backend/internal/portalclient"
	"jobportal_backend/internal/session"
)

const usage = `portalcli - job portal terminal client

Usage:
  portalcli <command> [flags]

Commands:
  register            create an account (candidate or employer)
  login               sign in and persist the session
  logout              drop the persisted session
  whoami              show the current session
  jobs                browse job listings with filters
  apply               apply to a job with a resume file
  applications        list your applications (candidate)
  withdraw            withdraw one of your applications (candidate)
  status              change an application status (employer)
  pending-employers   list employers awaiting approval (admin)
  verify-employer     approve or reject a pending employer (admin)

Global flags:
  --server URL        API base URL (default http://localhost:8080,
                      or PORTAL_SERVER)
  --session-file PATH durable session location
`

type cli struct {
	store  *session.Store
	client *portalclient.Client
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Print(usage)
		return nil
	}
	command, rest := args[0], args[1:]

	global := pflag.NewFlagSet("portalcli", pflag.ContinueOnError)
	serverURL := global.String("server", defaultServer(), "API base URL")
	sessionFile := global.String("session-file", session.DefaultStoragePath(), "session file path")
	global.ParseErrorsWhitelist.UnknownFlags = true
	if err := global.Parse(rest); err != nil {
		return err
	}

	store := session.NewStore(session.NewFileStorage(*sessionFile))
	if err := store.Restore(); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	app := &cli{store: store}
	app.client = portalclient.New(*serverURL,
		portalclient.WithTokenSource(store),
		portalclient.WithUnauthorizedHook(func() {
			// The server no longer honors the token; drop it so the
			// next command starts anonymous.
			_ = store.Logout()
		}),
	)

	ctx := context.Background()

	switch command {
	case "register":
		return app.register(ctx, rest)
	case "login":
		return app.login(ctx, rest)
	case "logout":
		return app.logout()
	case "whoami":
		return app.whoami()
	case "jobs":
		return app.jobs(ctx, rest)
	case "apply":
		return app.apply(ctx, rest)
	case "applications":
		return app.applications(ctx, rest)
	case "withdraw":
		return app.withdraw(ctx, rest)
	case "status":
		return app.status(ctx, rest)
	case "pending-employers":
		return app.pendingEmployers(ctx)
	case "verify-employer":
		return app.verifyEmployer(ctx, rest)
	case "help", "--help", "-h":
		fmt.Print(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q (try 'portalcli help')", command)
	}
}

func defaultServer() string {
	if v := os.Getenv("PORTAL_SERVER"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

// requireScreen runs the route gate for a screen before any API call,
// mirroring what the portal does on navigation.
func (a *cli) requireScreen(req gate.Requirement) error {
	decision := gate.Decide(req, a.store.Current(), a.store.Ready())
	switch decision.Outcome {
	case gate.Allow:
		return nil
	case gate.Redirect:
		if decision.RedirectTo == gate.LoginRoute {
			return fmt.Errorf("this command needs a login (run 'portalcli login')")
		}
		return fmt.Errorf("already signed in; log out first")
	default:
		return fmt.Errorf("session not restored yet")
	}
}

func (a *cli) currentUser() (session.User, error) {
	sess := a.store.Current()
	if sess.Anonymous() {
		return session.User{}, fmt.Errorf("not logged in")
	}
	return *sess.User, nil
}
