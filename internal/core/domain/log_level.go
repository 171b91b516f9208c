package domain

// LogLevel is the logger threshold. Values line up with slog.Level.
type LogLevel int

// Log levels understood by ports.Logger.
const (
	LogLevelDebug LogLevel = -4
	LogLevelInfo  LogLevel = 0
	LogLevelWarn  LogLevel = 4
	LogLevelError LogLevel = 8
)

func (l LogLevel) String() string {
	switch {
	case l <= LogLevelDebug:
		return "DEBUG"
	case l >= LogLevelError:
		return "ERROR"
	case l >= LogLevelWarn:
		return "WARN"
	default:
		return "INFO"
	}
}
