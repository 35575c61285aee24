package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/healthnav/internal/client/models"
	"github.com/dmitrijs2005/healthnav/internal/client/services"
	"github.com/dmitrijs2005/healthnav/internal/client/validation"
	"github.com/dmitrijs2005/healthnav/internal/common"
)

// getPassword is an indirection used to facilitate testing.
var getPassword = GetPassword

// reportError prints a failed operation. Field errors are listed one per
// line; anything else is flattened the way it is stored in the state.
func (a *App) reportError(op string, err error) {
	var fe validation.FieldErrors
	if errors.As(err, &fe) {
		fmt.Fprintf(a.out, "%s: please fix the following fields\n", op)
		for _, f := range fe.Fields() {
			fmt.Fprintf(a.out, "  %s: %s\n", f, fe[f])
		}
		return
	}
	fmt.Fprintf(a.out, "%s: %s\n", op, services.ErrorMessage(err))
}

func (a *App) requireLogin() bool {
	if a.isLoggedIn() {
		return true
	}
	fmt.Fprintln(a.out, "Please log in first.")
	return false
}

// Register prompts for the registration form and creates an account.
// The optional health profile may be left blank.
func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	fmt.Fprintln(a.out, "Health profile (optional, press Enter to skip a field)")
	p, err := a.promptProfile(models.User{})
	if err != nil {
		a.reportError("Registration failed", err)
		return err
	}

	data := models.RegisterData{Name: name, Email: email, Password: string(password)}
	if p.DateOfBirth != nil {
		data.DateOfBirth = *p.DateOfBirth
	}
	if p.Height != nil {
		data.Height = *p.Height
	}
	if p.Weight != nil {
		data.Weight = *p.Weight
	}
	for dst, src := range map[*string]*string{
		&data.Illnesses:     p.Illnesses,
		&data.Allergies:     p.Allergies,
		&data.Addictions:    p.Addictions,
		&data.FamilyHistory: p.FamilyHistory,
	} {
		if src != nil {
			*dst = *src
		}
	}
	res, err := a.authService.Register(ctx, data)
	if err != nil {
		a.reportError("Registration failed", err)
		return err
	}

	if res.Message != "" {
		fmt.Fprintln(a.out, res.Message)
	}
	fmt.Fprintf(a.out, "Location recorded from %s: %s, %s\n", res.Source,
		models.FormatFloat(res.Location.Lat()), models.FormatFloat(res.Location.Lon()))
	if res.LoggedIn {
		a.setMode(ModeOnline)
		fmt.Fprintf(a.out, "Welcome, %s!\n", displayName(a.store.Session().User))
	} else {
		fmt.Fprintln(a.out, "Registration successful! Please log in.")
	}
	return nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, models.Credentials{Email: email, Password: string(password)}); err != nil {
		a.reportError("Login failed", err)
		return err
	}

	a.setMode(ModeOnline)
	fmt.Fprintf(a.out, "Login successful. Hello, %s!\n", displayName(a.store.Session().User))
	return nil
}

// Logout ends the session locally even when the server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.reportError("Logout", err)
		return err
	}
	a.chat.Reset()
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	s := a.store.Session()
	if !s.Authenticated {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\n", orDash(s.User.Name), s.User.Email)
	return nil
}

// Profile reloads the profile from the server and prints it. When the
// server cannot be reached the cached profile is shown.
func (a *App) Profile(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	if err := a.authService.LoadProfile(ctx); err != nil {
		a.reportError("Could not refresh profile, showing saved data", err)
	}
	printUser(a.out, a.store.Session().User)
	return nil
}

// EditProfile prompts for every editable field, showing the current value.
// Blank answers keep the field unchanged.
func (a *App) EditProfile(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	patch, err := a.promptProfile(a.store.Session().User)
	if err != nil {
		a.reportError("Profile not updated", err)
		return err
	}
	if patch.IsEmpty() {
		fmt.Fprintln(a.out, "Nothing to update.")
		return nil
	}
	if err := a.authService.UpdateProfile(ctx, patch); err != nil {
		a.reportError("Profile not updated", err)
		return err
	}
	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}

func (a *App) promptProfile(cur models.User) (models.UserPatch, error) {
	var (
		p   models.UserPatch
		err error
	)
	label := func(name, current string) string {
		if current == "" || current == "-" {
			return name
		}
		return fmt.Sprintf("%s [%s]", name, current)
	}

	if p.DateOfBirth, err = GetOptionalText(a.reader, label("Date of birth (YYYY-MM-DD)", cur.DateOfBirth), a.out); err != nil {
		return p, err
	}
	if p.Height, err = GetOptionalFloat(a.reader, label("Height (cm)", floatOrDash(cur.Height)), a.out); err != nil {
		return p, err
	}
	if p.Weight, err = GetOptionalFloat(a.reader, label("Weight (kg)", floatOrDash(cur.Weight)), a.out); err != nil {
		return p, err
	}
	if p.Illnesses, err = GetOptionalText(a.reader, label("Illnesses", cur.Illnesses), a.out); err != nil {
		return p, err
	}
	if p.Allergies, err = GetOptionalText(a.reader, label("Allergies", cur.Allergies), a.out); err != nil {
		return p, err
	}
	if p.Addictions, err = GetOptionalText(a.reader, label("Addictions", cur.Addictions), a.out); err != nil {
		return p, err
	}
	if p.FamilyHistory, err = GetOptionalText(a.reader, label("Family history", cur.FamilyHistory), a.out); err != nil {
		return p, err
	}
	return p, nil
}

// Refresh exchanges the refresh token now. A failure ends the session.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.authService.Refresh(ctx); err != nil {
		a.reportError("Session refresh failed, please log in again", err)
		return err
	}
	fmt.Fprintln(a.out, "Session refreshed.")
	return nil
}
