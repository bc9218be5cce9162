// Package configuration implements reading of Unix-type KEY=VALUE
// configuration files into the [AppConfiguration].
package configuration

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

// Handler is the principal implementation of the configuration functions.
type Handler struct {
	genericHandler genericConfigProvider
}

// NewHandler returns a pointer to a new configuration [Handler].
func NewHandler(genericHandler genericConfigProvider) *Handler {
	return &Handler{
		genericHandler: genericHandler,
	}
}

// ReadGeneric reads generic configuration files into a map (map[key]value).
func (c *Handler) ReadGeneric(filenames ...string) (map[string]string, error) {
	return c.genericHandler.Read(filenames...)
}

// MapKeyToString returns the value of a key, or an empty string if it does
// not exist.
func (c *Handler) MapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return value
	}

	return ""
}

// MapKeyToInt returns the value of a key as integer, or -1 if it does not
// exist or is not an integer.
func (c *Handler) MapKeyToInt(envMap map[string]string, key string) int {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return -1
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}

	return intValue
}

// MapKeyToBytes returns the value of a key as a size in bytes. Human sizes
// such as "4 GiB" or "512MB" are accepted. The boolean is false if the key
// does not exist or cannot be parsed.
func (c *Handler) MapKeyToBytes(envMap map[string]string, key string) (uint64, bool) {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return 0, false
	}
	size, err := humanize.ParseBytes(value)
	if err != nil {
		return 0, false
	}

	return size, true
}
