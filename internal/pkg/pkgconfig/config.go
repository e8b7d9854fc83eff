package pkgconfig

import (
	"io"
	"time"
)

// Config is the read-only view of application configuration.
type Config interface {
	io.Closer

	GetInt(key string) int64
	GetBool(key string) bool
	GetFloat(key string) float64
	GetString(key string) string
	GetDuration(key string) time.Duration
	GetBinary(key string) []byte
	GetArray(key string) []string
	GetMap(key string) map[string]string
}
