package constants

type ContextKey string

const (
	LoggerKey    ContextKey = "logger"
	ParamsKey    ContextKey = "params"
	RequestID    ContextKey = "request_id"
	RequestStart ContextKey = "request_start"
)
