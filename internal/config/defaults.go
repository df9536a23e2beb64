package config

const (
	defaultOutput      = "cc"
	defaultDestination = "./converted"
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
)
