package rabbitmq_common

// Logger - минимальный логгер пакета, ключи и значения передаются парами.
// Приложение подключает свой логгер через мост.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(err error, msg string, keysAndValues ...interface{})
}

type discardLogger struct{}

func (discardLogger) Debug(string, ...interface{})        {}
func (discardLogger) Info(string, ...interface{})         {}
func (discardLogger) Warn(string, ...interface{})         {}
func (discardLogger) Error(error, string, ...interface{}) {}

// NewNoopLogger используется, когда логгер не передан в конфиг.
func NewNoopLogger() Logger {
	return discardLogger{}
}
