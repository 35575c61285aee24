package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ProfileDevelopment, c.Profile)
	assert.Equal(t, "http://127.0.0.1:5000/", c.API.BaseURL)
	assert.Equal(t, 5*time.Second, c.API.Timeout)
	assert.Equal(t, "application/json", c.API.Headers["Accept"])
	assert.Equal(t, "navigator.db", c.DBPath)
	assert.Equal(t, 30*time.Second, c.TokenCheckInterval)
	assert.True(t, c.SeedFixtures)
	assert.Nil(t, c.Location)
}

func TestAPIFor(t *testing.T) {
	prod, err := APIFor(ProfileProduction)
	require.NoError(t, err)
	assert.Equal(t, "https://your-production-api.com/", prod.BaseURL)
	assert.Equal(t, 10*time.Second, prod.Timeout)

	_, err = APIFor("staging")
	require.Error(t, err)
}

func TestLoad_NoArgsUsesDefaults(t *testing.T) {
	cfg, err := load(nil)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, ProfileDevelopment, cfg.Profile)
	assert.Equal(t, "http://127.0.0.1:5000/", cfg.API.BaseURL)
}

func TestLoad_ProductionProfileDisablesFixtures(t *testing.T) {
	cfg, err := load([]string{"-p", "production"})
	require.NoError(t, err)
	assert.Equal(t, ProfileProduction, cfg.Profile)
	assert.Equal(t, "https://your-production-api.com/", cfg.API.BaseURL)
	assert.False(t, cfg.SeedFixtures)
}

func TestLoad_UnknownProfileFails(t *testing.T) {
	_, err := load([]string{"-p", "staging"})
	require.Error(t, err)
}

func TestLoad_BaseURLOverrideSurvivesProfile(t *testing.T) {
	cfg, err := load([]string{"-p", "production", "-a", "http://localhost:8080/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
}
