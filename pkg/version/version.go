package version

// Version is set at build time with -ldflags "-X github.com/nicobailon/twinpane/pkg/version.Version=...".
var Version = "dev"
