package properties

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogger initializes the global zap logger from LOG_LEVEL and LOG_FORMAT.
func InitLogger() error {
	var zapCfg zap.Config
	if LogFormat() == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(LogLevel())
	if err != nil {
		return eris.Wrap(err, "properties: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "properties: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
