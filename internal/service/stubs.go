package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/dcastano/partnerscope/internal/model"
)

// Legacy stub tools kept as scaffolding for the agent shell. They only
// know about New York and exist so the shell always has a working tool
// to dispatch to.

// Weather returns a canned weather report for a city.
func Weather(city string) *model.Envelope {
	if strings.ToLower(strings.TrimSpace(city)) != "new york" {
		return model.Errorf("weather information for %q is not available", city)
	}
	return model.Success("The weather in New York is sunny with a temperature of 25 degrees Celsius (77 degrees Fahrenheit).")
}

// CurrentTime returns the current time in a city.
func CurrentTime(city string) *model.Envelope {
	if strings.ToLower(strings.TrimSpace(city)) != "new york" {
		return model.Errorf("no timezone information for %q", city)
	}

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return model.Errorf("loading timezone: %v", err)
	}

	now := time.Now().In(loc)
	return model.Success(fmt.Sprintf("The current time in New York is %s", now.Format("2006-01-02 15:04:05 MST-0700")))
}
