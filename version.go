package atmodeller

// Version is the library version, overridable at link time.
var Version = "0.1.0-dev"
