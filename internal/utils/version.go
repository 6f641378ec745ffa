package utils

import "runtime/debug"

const unknownVersion = "unknown"

// Version is injected at build time with -ldflags "-X github.com/temirov/dumpo/internal/utils.Version=v1.2.3".
var Version = ""

// GetApplicationVersion returns the linked version, then the module version
// recorded in the build info, then "unknown".
func GetApplicationVersion() string {
	if Version != "" {
		return Version
	}
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}
	return unknownVersion
}
