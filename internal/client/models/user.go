package models

// User is the session's identity and health profile.
type User struct {
	ID            FlexID   `json:"id"`
	Email         string   `json:"email"`
	Name          string   `json:"name"`
	Role          string   `json:"role"`
	IsVerified    bool     `json:"isVerified"`
	DateOfBirth   string   `json:"date_of_birth,omitempty"`
	Height        *float64 `json:"height,omitempty"`
	Weight        *float64 `json:"weight,omitempty"`
	Illnesses     string   `json:"illnesses,omitempty"`
	Allergies     string   `json:"allergies,omitempty"`
	Addictions    string   `json:"addictions,omitempty"`
	FamilyHistory string   `json:"family_history,omitempty"`
	LocationLat   *float64 `json:"location_lat,omitempty"`
	LocationLng   *float64 `json:"location_lng,omitempty"`
}

// Clone returns a deep copy of u.
func (u User) Clone() User {
	c := u
	c.Height = cloneFloat(u.Height)
	c.Weight = cloneFloat(u.Weight)
	c.LocationLat = cloneFloat(u.LocationLat)
	c.LocationLng = cloneFloat(u.LocationLng)
	return c
}

// IsZero reports whether u carries no identity.
func (u User) IsZero() bool {
	return u.ID == "" && u.Email == ""
}

// Merge copies every non-nil field of p into u.
func (u *User) Merge(p UserPatch) {
	if p.ID != nil {
		u.ID = *p.ID
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.IsVerified != nil {
		u.IsVerified = *p.IsVerified
	}
	if p.DateOfBirth != nil {
		u.DateOfBirth = *p.DateOfBirth
	}
	if p.Height != nil {
		u.Height = cloneFloat(p.Height)
	}
	if p.Weight != nil {
		u.Weight = cloneFloat(p.Weight)
	}
	if p.Illnesses != nil {
		u.Illnesses = *p.Illnesses
	}
	if p.Allergies != nil {
		u.Allergies = *p.Allergies
	}
	if p.Addictions != nil {
		u.Addictions = *p.Addictions
	}
	if p.FamilyHistory != nil {
		u.FamilyHistory = *p.FamilyHistory
	}
	if p.LocationLat != nil {
		u.LocationLat = cloneFloat(p.LocationLat)
	}
	if p.LocationLng != nil {
		u.LocationLng = cloneFloat(p.LocationLng)
	}
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
