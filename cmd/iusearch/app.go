package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"iusearch/application/auth"
	"iusearch/application/navigation"
	"iusearch/application/search"
	"iusearch/constant"
	"iusearch/model"
	"iusearch/render"
	validatorx "iusearch/utils/validator"
)

var errQuit = errors.New("quit")

// app is the interactive terminal client. Which screen runs is decided by
// the navigation controller; every completed screen counts as a navigation
// transition and triggers a session re-check, so an out-of-band session
// clear bounces the user back to login before the next screen renders.
type app struct {
	auth   auth.AuthApp
	search search.SearchApp
	nav    *navigation.Controller
	in     *bufio.Reader
	out    io.Writer
}

func newApp(authApp auth.AuthApp, searchApp search.SearchApp, nav *navigation.Controller, in io.Reader, out io.Writer) *app {
	return &app{
		auth:   authApp,
		search: searchApp,
		nav:    nav,
		in:     bufio.NewReader(in),
		out:    out,
	}
}

func (a *app) Run(ctx context.Context) error {
	a.nav.Start(ctx)

	for {
		var err error
		switch a.nav.State() {
		case navigation.StateAuthenticated:
			err = a.homeScreen(ctx)
		default:
			err = a.loginScreen(ctx)
		}
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		a.nav.HandleTransition(ctx)
	}
}

func (a *app) loginScreen(ctx context.Context) error {
	if !a.nav.CanNavigate(navigation.ScreenLogin) {
		return nil
	}

	fmt.Fprintln(a.out, "== Investigation Unit Search: Login ==")
	username, err := a.prompt("Username: ")
	if err != nil {
		return err
	}
	password, err := a.prompt("Password: ")
	if err != nil {
		return err
	}

	req := model.LoginRequest{Username: username, Password: password}
	if err := validatorx.ValidateStruct(&req); err != nil {
		fmt.Fprintln(a.out, "Username and password are required.")
		return nil
	}

	result := a.auth.Login(ctx, username, password)
	if !result.Success {
		fmt.Fprintln(a.out, result.Error)
		return nil
	}

	name := "back"
	if n, ok := result.User["name"].(string); ok {
		name = n
	}
	fmt.Fprintf(a.out, "Welcome, %s.\n", name)
	return nil
}

func (a *app) homeScreen(ctx context.Context) error {
	if !a.nav.CanNavigate(navigation.ScreenHome) {
		return nil
	}

	fmt.Fprintln(a.out, "\n== Investigation Unit Search ==")
	fmt.Fprintln(a.out, "1) People search")
	fmt.Fprintln(a.out, "2) Vehicle search")
	fmt.Fprintln(a.out, "3) Current user")
	fmt.Fprintln(a.out, "4) Logout")
	fmt.Fprintln(a.out, "q) Quit")

	choice, err := a.prompt("> ")
	if err != nil {
		return err
	}
	switch choice {
	case "1":
		return a.peopleSearchScreen(ctx)
	case "2":
		return a.vehicleSearchScreen(ctx)
	case "3":
		a.currentUserScreen(ctx)
	case "4":
		result := a.auth.Logout(ctx)
		if !result.Success {
			fmt.Fprintln(a.out, result.Error)
			return nil
		}
		fmt.Fprintln(a.out, "Logged out.")
	case "q":
		return errQuit
	}
	return nil
}

func (a *app) peopleSearchScreen(ctx context.Context) error {
	if !a.nav.CanNavigate(navigation.ScreenPeopleSearch) {
		return nil
	}

	kind, err := a.prompt("Search by (1) name or (2) phone: ")
	if err != nil {
		return err
	}
	searchType := constant.SearchTypeName
	if kind == "2" {
		searchType = constant.SearchTypePhone
	}

	query, err := a.prompt("Query: ")
	if err != nil {
		return err
	}

	result := a.search.SearchPeople(ctx, query, searchType)
	return a.resultsScreen(ctx, result, "people")
}

func (a *app) vehicleSearchScreen(ctx context.Context) error {
	if !a.nav.CanNavigate(navigation.ScreenVehicleSearch) {
		return nil
	}

	query, err := a.prompt("Plate, VIN, or owner: ")
	if err != nil {
		return err
	}

	result := a.search.SearchVehicles(ctx, query)
	return a.resultsScreen(ctx, result, "vehicles")
}

func (a *app) resultsScreen(ctx context.Context, result *model.SearchResult, recordType string) error {
	if !a.nav.CanNavigate(navigation.ScreenSearchResults) {
		return nil
	}

	if !result.Success {
		fmt.Fprintln(a.out, result.Error)
		return nil
	}
	if len(result.Data) == 0 {
		fmt.Fprintln(a.out, "No records found.")
		return nil
	}

	fmt.Fprintf(a.out, "%d record(s) found.\n", result.Total)
	for i := range result.Data {
		rec := &result.Data[i]
		fmt.Fprintf(a.out, "\n[%s] %s\n", render.ListKey(rec, i), render.TableHeader(rec))
		for _, pair := range render.Fields(rec) {
			fmt.Fprintf(a.out, "  %s: %s\n", pair.Label, pair.Value)
		}
	}

	id, err := a.prompt("\nRecord id to open (blank to go back): ")
	if err != nil {
		return err
	}
	if id == "" {
		return nil
	}
	return a.detailScreen(ctx, id, recordType)
}

func (a *app) detailScreen(ctx context.Context, recordID, recordType string) error {
	if !a.nav.CanNavigate(navigation.ScreenDetail) {
		return nil
	}

	result := a.search.RecordDetails(ctx, recordID, recordType)
	if !result.Success {
		fmt.Fprintln(a.out, result.Error)
		return nil
	}

	fmt.Fprintln(a.out, "\n== Record Details ==")
	if result.Data.TableName() != "" {
		fmt.Fprintf(a.out, "Source: %s\n", result.Data.TableName())
	}
	for _, pair := range render.Fields(result.Data) {
		fmt.Fprintf(a.out, "  %s: %s\n", pair.Label, pair.Value)
	}
	return nil
}

func (a *app) currentUserScreen(ctx context.Context) {
	user := a.auth.CurrentUser(ctx)
	if user == nil {
		fmt.Fprintln(a.out, "No user info stored.")
		return
	}
	for key, value := range user {
		fmt.Fprintf(a.out, "  %s: %v\n", key, value)
	}
	if claims := a.auth.TokenClaims(ctx); claims != nil && claims.ExpiresAt > 0 {
		fmt.Fprintf(a.out, "  session expires: %s\n", time.Unix(claims.ExpiresAt, 0).Format(time.RFC1123))
	}
}

func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", errQuit
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
