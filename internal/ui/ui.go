package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/vetdesk-app/vetdesk/internal/nav"
	"github.com/vetdesk-app/vetdesk/internal/router"
	"github.com/vetdesk-app/vetdesk/internal/service"
	"github.com/vetdesk-app/vetdesk/internal/session"
	"github.com/vetdesk-app/vetdesk/internal/theme"
)

// Services bundles the resource clients the screens call.
type Services struct {
	Clinics      *service.ClinicService
	Users        *service.UserService
	Pets         *service.PetService
	Catalog      *service.CatalogService
	Appointments *service.AppointmentService
	Availability *service.AvailabilityService
}

// UI drives the interactive terminal front-end. Each iteration re-routes on a
// fresh session snapshot, so a forced logout swaps the whole menu tree on the
// next prompt, the same way the mobile shell swaps navigators.
type UI struct {
	sess     *session.Manager
	registry *router.Registry
	services Services
	themes   *theme.Store
	logger   *zap.Logger
	in       *bufio.Scanner
	out      io.Writer

	quit bool
}

// New builds the UI and subscribes to session expiry notices.
func New(sess *session.Manager, registry *router.Registry, services Services, themes *theme.Store, logger *zap.Logger, in io.Reader, out io.Writer) *UI {
	u := &UI{
		sess:     sess,
		registry: registry,
		services: services,
		themes:   themes,
		logger:   logger,
		in:       bufio.NewScanner(in),
		out:      out,
	}
	sess.Subscribe(session.EventSessionExpired, func(session.Event) {
		u.printDanger("Your session expired. Please sign in again.")
	})
	return u
}

// Run executes the top-level loop until the user quits or input ends.
func (u *UI) Run(ctx context.Context) error {
	for !u.quit {
		if err := ctx.Err(); err != nil {
			return err
		}

		state := router.Route(u.sess.Snapshot())
		switch state.Kind {
		case router.KindLoading:
			u.println("Loading session...")
		case router.KindPublic:
			if done := u.publicScreen(ctx); done {
				return nil
			}
		case router.KindUnknownRole:
			u.unknownRoleScreen(ctx)
		case router.KindRoleHome:
			navigator, ok := u.registry.For(state.Role)
			if !ok {
				u.unknownRoleScreen(ctx)
				continue
			}
			if done := u.homeScreen(ctx, navigator); done {
				return nil
			}
		}
	}
	return nil
}

func (u *UI) publicScreen(ctx context.Context) bool {
	t := u.themes.Current()
	u.printf("\n%sWelcome to VetDesk%s\n", t.Primary, t.Reset)
	u.println("  1) Sign in")
	u.println("  2) Create account")
	u.println("  3) Quit")

	switch u.prompt("Choose") {
	case "1":
		u.loginScreen(ctx)
	case "2":
		u.registerScreen(ctx)
	case "3", "":
		return true
	}
	return false
}

func (u *UI) loginScreen(ctx context.Context) {
	email := u.prompt("Email")
	password := u.prompt("Password")

	result := u.sess.Login(ctx, email, password)
	if !result.Success {
		u.printDanger("Sign in failed: " + result.Message)
		return
	}
	u.printAccent("Welcome back, " + result.User.Name)
}

func (u *UI) registerScreen(ctx context.Context) {
	payload := session.RegisterPayload{
		Name:     u.prompt("Name"),
		Email:    u.prompt("Email"),
		Password: u.prompt("Password"),
		Phone:    u.prompt("Phone (optional)"),
	}

	result := u.sess.Register(ctx, payload)
	if !result.Success {
		u.printDanger("Registration failed: " + result.Message)
		for field, msg := range result.FieldErrors {
			u.printDanger("  " + field + ": " + msg)
		}
		return
	}
	u.printAccent("Account created. Welcome, " + result.User.Name)
}

func (u *UI) unknownRoleScreen(ctx context.Context) {
	u.printDanger("Your account role is not recognized by this app.")
	u.println("  1) Sign out")
	u.prompt("Choose")
	// no recovery path besides signing out
	u.sess.Logout(ctx)
}

func (u *UI) homeScreen(ctx context.Context, navigator nav.Navigator) bool {
	t := u.themes.Current()
	items := navigator.Items(ctx)

	u.printf("\n%s%s%s\n", t.Primary, navigator.Title(), t.Reset)
	for i, item := range items {
		u.printf("  %d) %s\n", i+1, item.Title)
	}
	u.println("  0) Quit")

	choice := u.prompt("Choose")
	if choice == "0" || choice == "" {
		return true
	}
	index, err := strconv.Atoi(choice)
	if err != nil || index < 1 || index > len(items) {
		u.printDanger("Invalid choice")
		return false
	}
	u.dispatch(ctx, items[index-1].Action)
	return false
}

func (u *UI) prompt(label string) string {
	u.printf("%s> ", label)
	if !u.in.Scan() {
		u.quit = true
		return ""
	}
	return strings.TrimSpace(u.in.Text())
}

func (u *UI) println(msg string) { fmt.Fprintln(u.out, msg) }

func (u *UI) printf(format string, a ...any) { fmt.Fprintf(u.out, format, a...) }

func (u *UI) printAccent(msg string) {
	t := u.themes.Current()
	u.printf("%s%s%s\n", t.Accent, msg, t.Reset)
}

func (u *UI) printDanger(msg string) {
	t := u.themes.Current()
	u.printf("%s%s%s\n", t.Danger, msg, t.Reset)
}
