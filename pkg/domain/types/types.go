package types

// Version is the application version, overwritten at build time via ldflags
var Version = "v0.1.0"

// AppName is used for the config directory and the default cache prefix
const AppName = "drugbank"
