package common

import (
	"fmt"
)

func GetVersion() string {
	version, gitCommit, ok := GetModuleBuildInfo()
	if !ok {
		return "unknown"
	}
	if len(gitCommit) > 8 {
		gitCommit = gitCommit[:8]
	}
	if len(gitCommit) == 0 {
		return version
	}
	return fmt.Sprintf("%s (git: %s)", version, gitCommit)
}
