package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/msgquota/internal/client/models"
	"github.com/dmitrijs2005/msgquota/internal/client/services"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates. On success the
// matching dashboard is created and its poller started; on failure the
// error is shown and any prior session state is left unmodified.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Already logged in. Use logout first.")
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.auth.Login(ctx, email, password); err != nil {
		fmt.Fprintf(a.out, "Login failed: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", a.auth.Session().Role)
	a.syncViews(ctx)
	return a.Show(ctx)
}

// Signup prompts for the registration profile, creates the account, and
// immediately logs in with the same credentials.
func (a *App) Signup(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Already logged in. Use logout first.")
		return nil
	}

	name, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	rawAge, err := getSimpleText(a.reader, "Enter age", a.out)
	if err != nil {
		return err
	}
	age, err := strconv.Atoi(rawAge)
	if err != nil {
		fmt.Fprintln(a.out, "Age must be a whole number")
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "Enter role (USER or ADMIN)", a.out)
	if err != nil {
		return err
	}
	if role == "" {
		role = string(models.RoleUser)
	}

	profile := services.Profile{
		Name:     name,
		Age:      age,
		Email:    email,
		Password: password,
		Role:     models.Role(role),
	}
	if err := a.auth.Signup(ctx, profile); err != nil {
		fmt.Fprintf(a.out, "Signup failed: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Signup successful! Logged in as %s\n", a.auth.Session().Role)
	a.syncViews(ctx)
	return a.Show(ctx)
}

// Logout clears durable and in-memory session state. No server round trip.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	a.teardownViews()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Info shows the current session: role and credential expiry when the
// token carries one.
func (a *App) Info(ctx context.Context) error {
	sess := a.auth.Session()
	if !sess.LoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "Role: %s\n", sess.Role)
	if exp, ok := a.auth.TokenExpiry(); ok {
		fmt.Fprintf(a.out, "Credential expires: %s\n", exp.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}
