package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabrielcapilla/musify/internal/domain"
	"github.com/gabrielcapilla/musify/internal/logger"
	"github.com/gabrielcapilla/musify/internal/ports"

	"github.com/spf13/viper"
)

type ViperConfigService struct {
	v   *viper.Viper
	dir string
}

// NewViperConfigService reads config.yml from dir. An empty dir means the
// musify directory under the user config directory.
func NewViperConfigService(dir string) ports.ConfigService {
	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Could not find user config directory, using current directory")
			dir = "."
		} else {
			dir = filepath.Join(configDir, "musify")
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Log.Error().Err(err).Str("dir", dir).Msg("Could not create musify config directory")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("musify")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("dbPath", filepath.Join(dir, "musify.db"))
	v.SetDefault("songCollection", domain.SongCollection)
	v.SetDefault("mpvSocket", "/tmp/musify-mpv.sock")
	v.SetDefault("userAgent", "musify")
	v.SetDefault("logLevel", "info")
	v.SetDefault("metricsAddr", "")
	v.SetDefault("historyLimit", 50)

	return &ViperConfigService{v: v, dir: dir}
}

func (s *ViperConfigService) Load() (domain.Config, error) {
	var cfg domain.Config

	if err := s.v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			logger.Log.Info().Str("dir", s.dir).Msg("Config file not found, creating with default values.")
			if err := s.v.SafeWriteConfig(); err != nil {
				return cfg, err
			}
		} else {
			return cfg, err
		}
	}

	if err := s.v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
