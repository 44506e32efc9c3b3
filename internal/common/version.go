package common

// Version information (set via -ldflags during build)
var (
	Version   = "dev"
	GitCommit = "unknown"
)
