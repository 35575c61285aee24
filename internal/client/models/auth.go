package models

// Credentials is the login form.
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// RegisterData is the registration form. Optional profile fields are
// skipped when zero. Coordinates are always sent; HasLocation marks them as
// given by the caller, so (0, 0) is a real position rather than a gap.
type RegisterData struct {
	Name          string  `validate:"required"`
	Email         string  `validate:"required,email"`
	Password      string  `validate:"required,min=6"`
	DateOfBirth   string  `validate:"omitempty,datetime=2006-01-02"`
	Height        float64 `validate:"omitempty,gte=30,lte=300"`
	Weight        float64 `validate:"omitempty,gte=2,lte=500"`
	Illnesses     string
	Allergies     string
	Addictions    string
	FamilyHistory string
	LocationLat   float64
	LocationLng   float64
	HasLocation   bool
}

// FormFields renders d as multipart form fields in the order the backend
// documents them.
func (d RegisterData) FormFields() []FormField {
	out := []FormField{
		{Name: "email", Value: d.Email},
		{Name: "password", Value: d.Password},
		{Name: "location_lat", Value: FormatFloat(d.LocationLat)},
		{Name: "location_lng", Value: FormatFloat(d.LocationLng)},
	}
	if d.Name != "" {
		out = append(out, FormField{Name: "name", Value: d.Name})
	}
	if d.DateOfBirth != "" {
		out = append(out, FormField{Name: "date_of_birth", Value: d.DateOfBirth})
	}
	if d.Height != 0 {
		out = append(out, FormField{Name: "height", Value: FormatFloat(d.Height)})
	}
	if d.Weight != 0 {
		out = append(out, FormField{Name: "weight", Value: FormatFloat(d.Weight)})
	}
	for _, f := range []FormField{
		{Name: "illnesses", Value: d.Illnesses},
		{Name: "allergies", Value: d.Allergies},
		{Name: "addictions", Value: d.Addictions},
		{Name: "family_history", Value: d.FamilyHistory},
	} {
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}

// TokenPair is the bearer token pair issued by the backend.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Complete reports whether both tokens are present.
func (t TokenPair) Complete() bool {
	return t.AccessToken != "" && t.RefreshToken != ""
}

// AuthResponse is returned by login and, depending on the backend revision,
// by registration. Register responses may omit user and tokens.
type AuthResponse struct {
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
	TokenPair
}
