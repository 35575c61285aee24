package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexID_AcceptsStringAndNumber(t *testing.T) {
	var v struct {
		A FlexID `json:"a"`
		B FlexID `json:"b"`
		C FlexID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"abc","b":42,"c":null}`), &v))
	assert.Equal(t, FlexID("abc"), v.A)
	assert.Equal(t, FlexID("42"), v.B)
	assert.Equal(t, FlexID(""), v.C)

	require.Error(t, json.Unmarshal([]byte(`{"a":{}}`), &v))
}

func TestUser_MergeOnlyTouchesKnownFields(t *testing.T) {
	u := User{ID: "7", Email: "a@b.com", Name: "Ann", Illnesses: "asthma", Height: Ptr(170.0)}

	u.Merge(UserPatch{Weight: Ptr(65.5), Illnesses: Ptr("")})

	assert.Equal(t, FlexID("7"), u.ID)
	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, "", u.Illnesses)
	require.NotNil(t, u.Height)
	assert.Equal(t, 170.0, *u.Height)
	require.NotNil(t, u.Weight)
	assert.Equal(t, 65.5, *u.Weight)
}

func TestUser_CloneIsDeep(t *testing.T) {
	u := User{Height: Ptr(180.0)}
	c := u.Clone()
	*c.Height = 1
	assert.Equal(t, 180.0, *u.Height)
}

func TestUserPatch_ProfileFields(t *testing.T) {
	p := UserPatch{
		Name:        Ptr("ignored"),
		Height:      Ptr(172.5),
		Allergies:   Ptr("pollen"),
		LocationLat: Ptr(48.8566),
	}
	assert.Equal(t, []FormField{
		{Name: "height", Value: "172.5"},
		{Name: "allergies", Value: "pollen"},
		{Name: "location_lat", Value: "48.8566"},
	}, p.ProfileFields())
	assert.False(t, p.IsEmpty())
	assert.True(t, UserPatch{Name: Ptr("x")}.IsEmpty())
}

func TestRegisterData_FormFieldsSkipsEmptyOptionals(t *testing.T) {
	d := RegisterData{Email: "a@b.com", Password: "abcdef", LocationLat: 37.77, LocationLng: -122.42, Weight: 70}
	assert.Equal(t, []FormField{
		{Name: "email", Value: "a@b.com"},
		{Name: "password", Value: "abcdef"},
		{Name: "location_lat", Value: "37.77"},
		{Name: "location_lng", Value: "-122.42"},
		{Name: "weight", Value: "70"},
	}, d.FormFields())
}

func TestParseColor(t *testing.T) {
	c, ok := ParseColor("red")
	assert.True(t, ok)
	assert.Equal(t, ColorRed, c)

	_, ok = ParseColor("orange")
	assert.False(t, ok)
}

func TestCard_CloneIsDeep(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	c := Card{
		ID:              "1",
		Recommendations: []string{"a"},
		Location:        &GeoPoint{Lat: 1, Lng: 2, Intensity: Ptr(0.5)},
		Timestamp:       &ts,
	}
	cp := c.Clone()
	cp.Recommendations[0] = "b"
	*cp.Location.Intensity = 0.9
	cp.Location.Lat = 9

	assert.Equal(t, "a", c.Recommendations[0])
	assert.Equal(t, 0.5, *c.Location.Intensity)
	assert.Equal(t, 1.0, c.Location.Lat)
	assert.Nil(t, CloneCards(nil))
}

func TestGeoPoint_WeightDefaultsToOne(t *testing.T) {
	assert.Equal(t, 1.0, GeoPoint{}.Weight())
	assert.Equal(t, 0.3, GeoPoint{Intensity: Ptr(0.3)}.Weight())
}

func TestSection_Info(t *testing.T) {
	for _, s := range Sections {
		info, ok := s.Info()
		assert.True(t, ok)
		assert.NotEmpty(t, info.Title)
	}
	_, ok := Section("x").Info()
	assert.False(t, ok)
}
