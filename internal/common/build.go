package common

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/priorlabs/tabpfn-cli/internal/common.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// GetModuleBuildInfo returns the version and commit of the running binary,
// preferring ldflags over the module build info. A commit built from a
// dirty tree is suffixed with "-dirty".
func GetModuleBuildInfo() (string, string, bool) {

	if Version != "dev" {
		return Version, GitCommit, true
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", "", false
	}

	version := info.Main.Version
	if version == "(devel)" || len(version) == 0 {
		version = Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	if dirty && len(revision) > 0 {
		revision += "-dirty"
	}

	return version, revision, true
}

// GetUserAgent is sent with every request to the inference service.
func GetUserAgent() string {
	version, _, _ := GetModuleBuildInfo()
	if len(version) == 0 {
		version = "unknown"
	}
	return fmt.Sprintf("tabpfn-cli/%s", version)
}
