package main

import (
	"github.com/urfave/cli/v2"

	"github.com/Lvzhenqian/library/configs"
	"github.com/Lvzhenqian/library/errors"
	"github.com/Lvzhenqian/library/log"
	"github.com/Lvzhenqian/library/result"
)

// Config is the file layout read by --config and reloaded by watch.
type Config struct {
	Result struct {
		AccessPolicy string `toml:"access_policy"`
	} `toml:"result"`
	Log struct {
		Level string `toml:"level"`
		File  string `toml:"file"`
	} `toml:"log"`
}

const loggerKey = "logger"

// setup builds the logger and applies the access policy. Explicit flags win
// over the config file.
func setup(c *cli.Context) error {
	var cfg Config
	if path := c.String(configFlag.Name); path != "" {
		loaded, err := configs.TOMLFile[Config]{Path: path}.ReadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if c.IsSet(logLevelFlag.Name) || cfg.Log.Level == "" {
		cfg.Log.Level = c.String(logLevelFlag.Name)
	}
	if c.IsSet(logFileFlag.Name) {
		cfg.Log.File = c.String(logFileFlag.Name)
	}
	if c.IsSet(policyFlag.Name) || cfg.Result.AccessPolicy == "" {
		cfg.Result.AccessPolicy = c.String(policyFlag.Name)
	}

	logger, err := log.NewLogger(&log.ZeroLoggerConfig{
		MaxSize:    10,
		MaxAge:     7,
		MaxBackups: 3,
		Filename:   cfg.Log.File,
		LogLevel:   cfg.Log.Level,
	})
	if err != nil {
		return errors.Wrapf(err, "log level %q", cfg.Log.Level)
	}
	if err := applyConfig(logger, cfg); err != nil {
		return err
	}
	c.App.Metadata = map[string]interface{}{loggerKey: logger}
	return nil
}

func applyConfig(logger *log.ZeroLogger, cfg Config) error {
	policy, err := result.ParsePolicy(cfg.Result.AccessPolicy)
	if err != nil {
		return err
	}
	if cfg.Log.Level != "" {
		if err := logger.SetLevel(cfg.Log.Level); err != nil {
			return errors.Wrapf(err, "log level %q", cfg.Log.Level)
		}
	}
	result.SetAccessPolicy(policy)
	result.SetDiagnosticLogger(logger.Multi())
	logger.Debugf("access policy %s, log level %s", policy, logger.GetLevel())
	return nil
}

func loggerFrom(c *cli.Context) *log.ZeroLogger {
	return c.App.Metadata[loggerKey].(*log.ZeroLogger)
}
