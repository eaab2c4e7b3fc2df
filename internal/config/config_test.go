package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestBuildDSN(t *testing.T) {
	dsn := BuildDSN(Database{
		Driver:   "postgres",
		User:     "analytics",
		Password: "pw",
		URL:      "db:5432/analytics?sslmode=disable",
	})

	assert.Equal(t, "postgres://analytics:pw@db:5432/analytics?sslmode=disable", dsn)
}

func TestSetDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()

	assert.Equal(t, "15 0 * * *", viper.GetString("ROLLUP_SYNC_CRON"))
	assert.Equal(t, 2, viper.GetInt("ROLLUP_SYNC_LOOKBACK_DAYS"))
	assert.Equal(t, 14, viper.GetInt("RISK_DEFAULT_HORIZON_DAYS"))
	assert.Equal(t, 0.05, viper.GetFloat64("RISK_REFUND_SPIKE_HIGH"))
	assert.False(t, viper.GetBool("ROLLUP_SYNC_ENABLED"))
}
