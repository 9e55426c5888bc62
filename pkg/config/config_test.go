package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverMemory)
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Quota.FreeMeetings)
	assert.Equal(t, 5, cfg.Quota.FreeAutomations)
	assert.Equal(t, 5, cfg.Quota.FreeTranscriptions)
	assert.Equal(t, 15*time.Minute, cfg.Quota.FreeMaxVideo)
	assert.Equal(t, 3, cfg.Quota.FreeMinutesHistory)
	assert.Equal(t, 4, cfg.Pipeline.MaxConcurrent)
	assert.Equal(t, 30*time.Minute, cfg.Pipeline.RunTimeout)
	assert.Equal(t, "Asia/Colombo", cfg.Calendar.TimeZone)
	assert.Equal(t, 10*time.Minute, cfg.Assembly.ChunkLength)
	assert.Equal(t, ClassifierKeyword, cfg.Agenda.Classifier)
}

func TestLoadKeepsKeywordClassifierWithGroqKey(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverMemory)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GROQ_API_KEY", "gsk-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ClassifierKeyword, cfg.Agenda.Classifier)

	t.Setenv("AGENDA_CLASSIFIER", "ZeroShot")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, ClassifierZeroShot, cfg.Agenda.Classifier)
}

func TestLoadQuotaOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverMemory)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("QUOTA_FREE_AUTOMATIONS", "2")
	t.Setenv("QUOTA_FREE_MAX_VIDEO", "5m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Quota.FreeAutomations)
	assert.Equal(t, 5*time.Minute, cfg.Quota.FreeMaxVideo)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database: DatabaseConfig{Driver: DriverMemory},
			Auth:     AuthConfig{Provider: AuthJWT, JWTSecret: "s"},
			Calendar: CalendarConfig{TimeZone: "UTC"},
			Pipeline: PipelineConfig{MaxConcurrent: 1},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("mongo requires uri", func(t *testing.T) {
		cfg := base()
		cfg.Database.Driver = DriverMongo
		assert.ErrorContains(t, cfg.Validate(), "MONGO_URI")
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := base()
		cfg.Database.Driver = "sqlite"
		assert.Error(t, cfg.Validate())
	})

	t.Run("jwt requires key", func(t *testing.T) {
		cfg := base()
		cfg.Auth.JWTSecret = ""
		assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")
	})

	t.Run("zeroshot requires groq key", func(t *testing.T) {
		cfg := base()
		cfg.Agenda.Classifier = ClassifierZeroShot
		assert.ErrorContains(t, cfg.Validate(), "GROQ_API_KEY")
		cfg.Groq.APIKey = "k"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unknown classifier", func(t *testing.T) {
		cfg := base()
		cfg.Agenda.Classifier = "bert"
		assert.ErrorContains(t, cfg.Validate(), "AGENDA_CLASSIFIER")
	})

	t.Run("bad timezone", func(t *testing.T) {
		cfg := base()
		cfg.Calendar.TimeZone = "Mars/Olympus"
		assert.Error(t, cfg.Validate())
	})
}

func TestGetEnvAsList(t *testing.T) {
	t.Setenv("ORIGINS_TEST", "http://a, http://b,,")
	assert.Equal(t, []string{"http://a", "http://b"}, getEnvAsList("ORIGINS_TEST", ""))
}
