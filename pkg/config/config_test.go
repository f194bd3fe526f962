package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func TestFromViperDefaults(t *testing.T) {
	cfg := fromViper(newTestViper())

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 15, cfg.Scheduling.GranularityMinutes)
	assert.Equal(t, 15, cfg.Scheduling.BufferMinutes)
	assert.Equal(t, 30, cfg.Scheduling.MaxHorizonDays)
	assert.Equal(t, 14, cfg.Scheduling.TopDays)
	assert.Equal(t, 20, cfg.Scheduling.SlotsPerDay)
	assert.Equal(t, 90, cfg.Scheduling.DemandWindowDays)
	assert.Equal(t, time.Hour, cfg.Scheduling.DemandTTL)
	assert.Equal(t, DefaultBusinessHours, cfg.Scheduling.BusinessHours)
}

func TestFromViperEnvOverrides(t *testing.T) {
	t.Setenv("SCHEDULING_GRANULARITY_MINUTES", "30")
	t.Setenv("SCHEDULING_BUFFER_MINUTES", "0")
	t.Setenv("SCHEDULING_DEMAND_TTL", "not-a-duration")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := fromViper(newTestViper())

	assert.Equal(t, 30, cfg.Scheduling.GranularityMinutes)
	assert.Equal(t, 0, cfg.Scheduling.BufferMinutes)
	assert.Equal(t, time.Hour, cfg.Scheduling.DemandTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}
