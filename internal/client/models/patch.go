package models

import "strconv"

// UserPatch is a partial user. Nil fields are "unknown / unchanged": they
// are neither sent to the server nor merged into the session.
type UserPatch struct {
	ID            *FlexID  `json:"id,omitempty"`
	Email         *string  `json:"email,omitempty"`
	Name          *string  `json:"name,omitempty"`
	Role          *string  `json:"role,omitempty"`
	IsVerified    *bool    `json:"isVerified,omitempty"`
	DateOfBirth   *string  `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Height        *float64 `json:"height,omitempty" validate:"omitempty,gte=30,lte=300"`
	Weight        *float64 `json:"weight,omitempty" validate:"omitempty,gte=2,lte=500"`
	Illnesses     *string  `json:"illnesses,omitempty"`
	Allergies     *string  `json:"allergies,omitempty"`
	Addictions    *string  `json:"addictions,omitempty"`
	FamilyHistory *string  `json:"family_history,omitempty"`
	LocationLat   *float64 `json:"location_lat,omitempty" validate:"omitempty,latitude"`
	LocationLng   *float64 `json:"location_lng,omitempty" validate:"omitempty,longitude"`
}

// FormField is one name/value pair of a multipart form.
type FormField struct {
	Name  string
	Value string
}

// ProfileFields returns the editable, non-nil fields of p in a stable order.
// Identity fields (id, email, name, role, isVerified) are never included.
func (p UserPatch) ProfileFields() []FormField {
	var out []FormField
	addString := func(name string, v *string) {
		if v != nil {
			out = append(out, FormField{Name: name, Value: *v})
		}
	}
	addFloat := func(name string, v *float64) {
		if v != nil {
			out = append(out, FormField{Name: name, Value: FormatFloat(*v)})
		}
	}

	addString("date_of_birth", p.DateOfBirth)
	addFloat("height", p.Height)
	addFloat("weight", p.Weight)
	addString("illnesses", p.Illnesses)
	addString("allergies", p.Allergies)
	addString("addictions", p.Addictions)
	addString("family_history", p.FamilyHistory)
	addFloat("location_lat", p.LocationLat)
	addFloat("location_lng", p.LocationLng)
	return out
}

// IsEmpty reports whether p carries no editable field.
func (p UserPatch) IsEmpty() bool {
	return len(p.ProfileFields()) == 0
}

// FormatFloat renders f the way the backend form parser expects: shortest
// representation, no exponent for ordinary values.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
