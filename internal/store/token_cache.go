package store

import (
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// TokenFileName is the name of the cached access token inside the cache dir.
const TokenFileName = "config"

// TokenCache keeps the last issued access token on disk. A cached token is
// never proof of validity; it must be re-checked with the service.
type TokenCache struct {
	path string
}

func NewTokenCache(cacheDir string) *TokenCache {
	return &TokenCache{
		path: filepath.Join(cacheDir, TokenFileName),
	}
}

func (c *TokenCache) Path() string {
	return c.path
}

func (c *TokenCache) Store(token string) Outcome {
	if err := writeFile(c.path, []byte(token), 0o600); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"path": c.path,
		}).Debugln("Failed to cache access token")
		return degraded(err)
	}
	return ok()
}

func (c *TokenCache) Read() (string, bool) {
	b, err := readFile(c.path)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"path": c.path,
		}).Debugln("Failed to read cached access token")
		return "", false
	}

	token := strings.TrimSpace(string(b))
	if len(token) == 0 {
		return "", false
	}
	return token, true
}

func (c *TokenCache) Clear() Outcome {
	if err := removeFile(c.path); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"path": c.path,
		}).Debugln("Failed to remove cached access token")
		return degraded(err)
	}
	return ok()
}
