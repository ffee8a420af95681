package common

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

const (
	// Directory under the user's home holding registration checkpoints.
	StateDirName = ".tabpfn"
	// Directory under the OS cache dir holding the access token.
	CacheDirName = "tabpfn"
)

// HomeDir resolves the current user's home directory, preferring $HOME.
func HomeDir() string {
	if home, err := os.UserHomeDir(); err == nil && len(home) > 0 {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return "."
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" {
		return HomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(HomeDir(), path[2:])
	}
	return path
}

func DefaultStateDir() string {
	return filepath.Join(HomeDir(), StateDirName)
}

func DefaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil && len(dir) > 0 {
		return filepath.Join(dir, CacheDirName)
	}
	return filepath.Join(HomeDir(), StateDirName, "cache")
}
