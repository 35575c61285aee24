package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/healthnav/internal/client/models"
)

func TestRegister(t *testing.T) {
	v := New()

	tests := []struct {
		name string
		in   models.RegisterData
		want FieldErrors
	}{
		{
			name: "valid",
			in:   models.RegisterData{Name: "Ann", Email: "a@b.com", Password: "abcdef"},
			want: nil,
		},
		{
			name: "all missing",
			in:   models.RegisterData{Name: "   "},
			want: FieldErrors{
				"name":     "Name is required",
				"email":    "Email is required",
				"password": "Password is required",
			},
		},
		{
			name: "bad email and short password",
			in:   models.RegisterData{Name: "Ann", Email: "nope", Password: "abc"},
			want: FieldErrors{
				"email":    "Please enter a valid email",
				"password": "Password must be at least 6 characters",
			},
		},
		{
			name: "optional ranges",
			in: models.RegisterData{
				Name: "Ann", Email: "a@b.com", Password: "abcdef",
				DateOfBirth: "02/01/1990", Height: 500, Weight: 1,
			},
			want: FieldErrors{
				"date_of_birth": "Date of birth must be a date in YYYY-MM-DD format",
				"height":        "Height is out of range",
				"weight":        "Weight is out of range",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Register(tt.in)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogin(t *testing.T) {
	v := New()
	assert.Nil(t, v.Login(models.Credentials{Email: " a@b.com ", Password: "x"}))

	errs := v.Login(models.Credentials{})
	assert.Equal(t, []string{"email", "password"}, errs.Fields())
}

func TestProfile(t *testing.T) {
	v := New()
	assert.Nil(t, v.Profile(models.UserPatch{}))
	assert.Nil(t, v.Profile(models.UserPatch{Height: models.Ptr(180.0), DateOfBirth: models.Ptr("1990-01-02")}))

	errs := v.Profile(models.UserPatch{Height: models.Ptr(10.0), LocationLat: models.Ptr(95.0)})
	assert.Equal(t, FieldErrors{
		"height":       "Height is out of range",
		"location_lat": "Latitude must be a valid coordinate",
	}, errs)
}

func TestFieldErrors_Error(t *testing.T) {
	f := FieldErrors{"b": "second", "a": "first"}
	assert.Equal(t, "a: first; b: second", f.Error())
}
