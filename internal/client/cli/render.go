package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/healthnav/internal/client/models"
)

func displayName(u models.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func floatOrDash(f *float64) string {
	if f == nil {
		return "-"
	}
	return models.FormatFloat(*f)
}

func printUser(w io.Writer, u models.User) {
	verified := "no"
	if u.IsVerified {
		verified = "yes"
	}
	fmt.Fprintf(w, "Name:           %s\n", orDash(u.Name))
	fmt.Fprintf(w, "Email:          %s\n", orDash(u.Email))
	fmt.Fprintf(w, "Role:           %s\n", orDash(u.Role))
	fmt.Fprintf(w, "Verified:       %s\n", verified)
	fmt.Fprintf(w, "Date of birth:  %s\n", orDash(u.DateOfBirth))
	fmt.Fprintf(w, "Height (cm):    %s\n", floatOrDash(u.Height))
	fmt.Fprintf(w, "Weight (kg):    %s\n", floatOrDash(u.Weight))
	fmt.Fprintf(w, "Illnesses:      %s\n", orDash(u.Illnesses))
	fmt.Fprintf(w, "Allergies:      %s\n", orDash(u.Allergies))
	fmt.Fprintf(w, "Addictions:     %s\n", orDash(u.Addictions))
	fmt.Fprintf(w, "Family history: %s\n", orDash(u.FamilyHistory))
	fmt.Fprintf(w, "Location:       %s, %s\n", floatOrDash(u.LocationLat), floatOrDash(u.LocationLng))
}

func printCardLine(w io.Writer, c models.Card) {
	icon := c.Icon
	if icon == "" {
		icon = " "
	}
	fmt.Fprintf(w, "[%s] %s %s (%s)\n", c.ID, icon, c.Title, c.Color)
	if c.Summary != "" {
		fmt.Fprintf(w, "      %s\n", c.Summary)
	}
}

func printCard(w io.Writer, c models.Card) {
	fmt.Fprintf(w, "%s %s\n", c.Icon, c.Title)
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "Category: %s\n", c.Color)
	if c.Timestamp != nil {
		fmt.Fprintf(w, "Issued:   %s\n", c.Timestamp.Local().Format("2006-01-02 15:04"))
	}
	if c.Location != nil {
		fmt.Fprintf(w, "Location: %s, %s\n", models.FormatFloat(c.Location.Lat), models.FormatFloat(c.Location.Lng))
	}
	if c.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", c.Summary)
	}
	if c.Details != "" {
		fmt.Fprintf(w, "\n%s\n", c.Details)
	}
	if len(c.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRecommendations:")
		for _, r := range c.Recommendations {
			fmt.Fprintf(w, "  - %s\n", r)
		}
	}
}
