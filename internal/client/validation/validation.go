// Package validation checks forms locally before they are submitted and
// reports one message per offending field.
package validation

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/healthnav/internal/client/models"
)

// FieldErrors maps a form field name to its message.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := slices.Sorted(maps.Keys(f))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return strings.Join(parts, "; ")
}

// Fields returns the offending field names in sorted order.
func (f FieldErrors) Fields() []string {
	return slices.Sorted(maps.Keys(f))
}

type field struct {
	name  string
	label string
}

// form field names and display labels by Go struct field.
var fields = map[string]field{
	"Name":          {"name", "Name"},
	"Email":         {"email", "Email"},
	"Password":      {"password", "Password"},
	"DateOfBirth":   {"date_of_birth", "Date of birth"},
	"Height":        {"height", "Height"},
	"Weight":        {"weight", "Weight"},
	"LocationLat":   {"location_lat", "Latitude"},
	"LocationLng":   {"location_lng", "Longitude"},
	"Illnesses":     {"illnesses", "Illnesses"},
	"Allergies":     {"allergies", "Allergies"},
	"Addictions":    {"addictions", "Addictions"},
	"FamilyHistory": {"family_history", "Family history"},
}

// Validator wraps a configured validator.Validate. It is safe for
// concurrent use.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

func message(fe validator.FieldError, label string) string {
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please enter a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "gte", "lte":
		return label + " is out of range"
	case "datetime":
		return label + " must be a date in YYYY-MM-DD format"
	case "latitude", "longitude":
		return label + " must be a valid coordinate"
	default:
		return label + " is invalid"
	}
}

func (v *Validator) check(s any) FieldErrors {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return FieldErrors{"_": err.Error()}
	}

	out := FieldErrors{}
	for _, fe := range ves {
		f, ok := fields[fe.StructField()]
		if !ok {
			f = field{name: strings.ToLower(fe.StructField()), label: fe.StructField()}
		}
		// first failing rule per field wins
		if _, seen := out[f.name]; !seen {
			out[f.name] = message(fe, f.label)
		}
	}
	return out
}

// Register validates the registration form. Name, email and password are
// trimmed of surrounding blanks before checking, as the server would.
func (v *Validator) Register(d models.RegisterData) FieldErrors {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	return v.check(d)
}

// Login validates the login form.
func (v *Validator) Login(c models.Credentials) FieldErrors {
	c.Email = strings.TrimSpace(c.Email)
	return v.check(c)
}

// Profile validates the known fields of a profile patch.
func (v *Validator) Profile(p models.UserPatch) FieldErrors {
	return v.check(p)
}
