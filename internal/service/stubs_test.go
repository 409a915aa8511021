package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/partnerscope/internal/model"
)

func TestWeather(t *testing.T) {
	env := Weather("New York")
	require.True(t, env.OK())
	assert.Contains(t, env.Report, "sunny")

	// Case and surrounding whitespace don't matter.
	assert.True(t, Weather(" new york ").OK())

	env = Weather("London")
	assert.Equal(t, model.StatusError, env.Status)
	assert.Contains(t, env.ErrorMessage, "London")
}

func TestCurrentTime(t *testing.T) {
	env := CurrentTime("new york")
	require.True(t, env.OK())
	assert.Contains(t, env.Report, "The current time in New York is")

	env = CurrentTime("Tokyo")
	assert.Equal(t, model.StatusError, env.Status)
}
