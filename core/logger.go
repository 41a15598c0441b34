package core

// Logger is any structured logger the apps can report to.
// expected args fmt: error | map[string]interface{} | LogUser
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// LogUser tags a log entry with the learner it concerns.
type LogUser string
