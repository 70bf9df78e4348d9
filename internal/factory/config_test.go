package factory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordtiles/internal/services/game"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) SetupTest() {
	for _, key := range []string{
		"STORAGE_TYPE", "REDIS_URL", "DICTIONARY_PATHS", "TURN_TIMEOUT",
		"SWEEP_INTERVAL", "SWEEP_WORKERS", "PORT",
	} {
		s.T().Setenv(key, "")
	}
}

func (s *ConfigSuite) TestDefaults() {
	cfg, err := ConfigFromEnv()
	s.Require().NoError(err)

	s.Equal(StorageTypeMemory, cfg.StorageType)
	s.Nil(cfg.RedisConfig)
	s.Equal(map[string]string{"en": "data/words.txt"}, cfg.DictionaryPaths)
	s.Equal(game.DefaultTurnTimeout, cfg.TurnTimeout)
	s.Equal(DefaultSweepInterval, cfg.SweepInterval)
	s.Equal(4, cfg.Sweep.Workers)
	s.Equal(DefaultPort, cfg.Port)
}

func (s *ConfigSuite) TestOverrides() {
	s.T().Setenv("STORAGE_TYPE", "redis")
	s.T().Setenv("REDIS_URL", "redis://localhost:6379/2")
	s.T().Setenv("DICTIONARY_PATHS", "en=/srv/en.txt, fr=/srv/fr.txt")
	s.T().Setenv("TURN_TIMEOUT", "24h")
	s.T().Setenv("SWEEP_INTERVAL", "15s")
	s.T().Setenv("SWEEP_WORKERS", "16")
	s.T().Setenv("PORT", "9090")

	cfg, err := ConfigFromEnv()
	s.Require().NoError(err)

	s.Equal(StorageTypeRedis, cfg.StorageType)
	s.Require().NotNil(cfg.RedisConfig)
	s.Equal("redis://localhost:6379/2", cfg.RedisConfig.URL)
	s.Equal(map[string]string{"en": "/srv/en.txt", "fr": "/srv/fr.txt"}, cfg.DictionaryPaths)
	s.Equal(24*time.Hour, cfg.TurnTimeout)
	s.Equal(15*time.Second, cfg.SweepInterval)
	s.Equal(16, cfg.Sweep.Workers)
	s.Equal(9090, cfg.Port)
}

func (s *ConfigSuite) TestRedisRequiresURL() {
	s.T().Setenv("STORAGE_TYPE", "redis")

	_, err := ConfigFromEnv()
	s.ErrorContains(err, "REDIS_URL")
}

func (s *ConfigSuite) TestRejectsMalformedValues() {
	cases := map[string]string{
		"TURN_TIMEOUT":     "soon",
		"SWEEP_INTERVAL":   "-1s",
		"SWEEP_WORKERS":    "zero",
		"PORT":             "0",
		"DICTIONARY_PATHS": "en",
	}
	for key, value := range cases {
		s.Run(key, func() {
			s.T().Setenv(key, value)
			_, err := ConfigFromEnv()
			s.ErrorContains(err, key)
		})
	}
}

func (s *ConfigSuite) TestNewRejectsUnknownStorage() {
	_, err := New(Config{StorageType: "postgres"})
	s.Error(err)

	_, err = New(Config{StorageType: StorageTypeRedis})
	s.ErrorContains(err, "RedisConfig")
}
