package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
)

// Level is a named log severity, distinct from [slog.Level] so CLI flag
// values round-trip through a small closed set of strings.
type Level string

// Supported log levels, ordered least to most severe.
const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format represents the log output format.
type Format string

const (
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = "json"
	// FormatLogfmt outputs logs in logfmt format.
	FormatLogfmt Format = "logfmt"
	// FormatText outputs logs as human-readable text.
	FormatText Format = "text"
)

var (
	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLogFormat indicates an unrecognized log format string.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// ParseLevel parses a log level string into a [Level], case-insensitively.
// "warning" is accepted as an alias of "warn".
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case string(LevelError):
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case string(LevelInfo):
		return LevelInfo, nil
	case string(LevelDebug):
		return LevelDebug, nil
	}

	return "", ErrUnknownLogLevel
}

// ParseFormat parses a log format string into a [Format], case-insensitively.
func ParseFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	if slices.Contains(AllFormats(), f) {
		return f, nil
	}

	return "", ErrUnknownLogFormat
}

// GetLevel is an alias of [ParseLevel] returning the [slog.Level] form,
// for callers that only need slog's type.
func GetLevel(level string) (slog.Level, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return 0, err
	}

	return lvl.slogLevel(), nil
}

// GetFormat is an alias of [ParseFormat].
func GetFormat(format string) (Format, error) {
	return ParseFormat(format)
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	case LevelDebug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// AllLevels returns every supported [Level], least to most severe.
func AllLevels() []Level {
	return []Level{LevelDebug, LevelInfo, LevelWarn, LevelError}
}

// AllFormats returns every supported [Format].
func AllFormats() []Format {
	return []Format{FormatJSON, FormatLogfmt, FormatText}
}

// GetAllLevelStrings returns every supported level as a string, for flag
// help text and shell completion.
func GetAllLevelStrings() []string {
	levels := AllLevels()
	out := make([]string, len(levels))

	for i, l := range levels {
		out[i] = string(l)
	}

	return out
}

// GetAllFormatStrings returns every supported format as a string, for flag
// help text and shell completion.
func GetAllFormatStrings() []string {
	formats := AllFormats()
	out := make([]string, len(formats))

	for i, f := range formats {
		out[i] = string(f)
	}

	return out
}

// Handler is the [slog.Handler] type [NewHandler] and [Config.NewHandler]
// build.
type Handler = slog.Handler

// NewHandler creates a [Handler] writing to w at the given level and
// format.
func NewHandler(w io.Writer, level Level, format Format) Handler {
	opts := &slog.HandlerOptions{AddSource: true, Level: level.slogLevel()}

	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts)
	case FormatLogfmt, FormatText:
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewTextHandler(w, opts)
	}
}

// NewHandlerFromStrings parses levelStr and formatStr and delegates to
// [NewHandler].
func NewHandlerFromStrings(w io.Writer, levelStr, formatStr string) (Handler, error) {
	level, err := ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	format, err := ParseFormat(formatStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return NewHandler(w, level, format), nil
}

// CreateHandlerWithStrings creates a [slog.Handler] by strings. Kept
// alongside [NewHandlerFromStrings] for callers that want the bare
// [slog.Handler] type spelled out.
func CreateHandlerWithStrings(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	return NewHandlerFromStrings(w, logLevel, logFormat)
}

// CreateHandler creates a [slog.Handler] with the specified level and format.
func CreateHandler(w io.Writer, logLvl slog.Level, logFmt Format) slog.Handler {
	level := LevelInfo

	for _, l := range AllLevels() {
		if l.slogLevel() == logLvl {
			level = l

			break
		}
	}

	return NewHandler(w, level, logFmt)
}
