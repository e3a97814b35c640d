package config

import (
	"git.home.luguber.info/inful/apisite/internal/foundation/normalization"
	"git.home.luguber.info/inful/apisite/internal/render"
	"git.home.luguber.info/inful/apisite/internal/routes"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer("log level", map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, LogLevelInfo)

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer("log format", map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

var renderModeNormalizer = normalization.NewNormalizer("render mode", map[string]render.Mode{
	"sequence":   render.ModeSequence,
	"structured": render.ModeSequence,
	"string":     render.ModeString,
	"flat":       render.ModeString,
}, render.ModeSequence)

var kindStyleNormalizer = normalization.NewNormalizer("kind style", map[string]routes.KindStyle{
	"verbatim": routes.KindStyleVerbatim,
	"slug":     routes.KindStyleSlug,
}, routes.KindStyleVerbatim)

// ParseLogLevel maps raw to a LogLevel, reporting unknown values.
func ParseLogLevel(raw string) (LogLevel, error) {
	return logLevelNormalizer.NormalizeWithError(raw)
}

// ParseLogFormat maps raw to a LogFormat, reporting unknown values.
func ParseLogFormat(raw string) (LogFormat, error) {
	return logFormatNormalizer.NormalizeWithError(raw)
}
