package utils

const (
	// ConfigFileName is the name of the per-project configuration file.
	ConfigFileName = "dumpo.toml"
	// DebugFileName is the file written into the root by --debug.
	DebugFileName = ".dumpo.debug.md"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"

	// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command errors.
	ApplicationExecutionFailedMessage = "dumpo failed"
)
