package utils

const (
	// LoggerInitializationFailedMessageFormat is used when the zap logger cannot be built.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command failures.
	ApplicationExecutionFailedMessage = "projtree execution failed"
	// LoggerSyncFailedMessageFormat is used when flushing the logger fails.
	LoggerSyncFailedMessageFormat = "logger sync failed: %v"
)
