// internal/encoder/callbacks.go
package encoder

// Logger is an optional logging interface the driver reports through.
// Any logging framework can be adapted behind it.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}
