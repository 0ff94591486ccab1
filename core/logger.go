package core

// Logger is any service that can log messages locally and/or report them
// to an external monitoring system.
//
// expected args fmt: error, map[string]interface{}, user.User
type Logger interface {
	// Enable turns external reporting on or off; local logging always happens.
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}
