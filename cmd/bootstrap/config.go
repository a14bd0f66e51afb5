package bootstrap

import (
	"log/slog"

	"teetime/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(config.LoadConfig),
	fx.Invoke(logEffectiveConfig),
)

// logEffectiveConfig records the settings that change runtime behavior.
// Credentials are never logged.
func logEffectiveConfig(cfg config.Config, logger *slog.Logger) {
	logger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"db_host", cfg.DB.Host,
		"db_name", cfg.DB.DBName,
		"weather_cache", cfg.Redis.Enabled(),
		"weather_cache_ttl", cfg.Redis.WeatherCacheTTL.String(),
		"jwt_duration", cfg.JWT.Duration,
		"log_level", cfg.Log.Level,
	)
}
