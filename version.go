package foodhub

// Version information for the FoodHub client SDK
const (
	// Version is the current SDK version
	Version = "development"

	// BuildDate is set during build time
	BuildDate = "development"

	// GitCommit is set during build time
	GitCommit = "unknown"
)
