package cli

import (
	"context"
	"fmt"
	"time"
)

// Version of the navigator.
const Version = "1.0.0"

const aboutText = `Space Health Navigator is an innovative platform that combines AI technology
with health monitoring to provide personalized health insights and
recommendations.

Our Mission
To empower individuals with accessible, reliable health information and
AI-powered tools to make informed decisions about their wellbeing.

Key Features
  - AI Health Assistant (AIHA)
  - Personalized health insights
  - Environmental health alerts
  - Secure profile management
`

func (a *App) About(ctx context.Context) error {
	fmt.Fprint(a.out, aboutText)
	fmt.Fprintf(a.out, "\nVersion %s • © %d Space Health Navigator\n", Version, time.Now().Year())
	return nil
}
