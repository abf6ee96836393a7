package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnv parses key with parse; unset or unparsable values fall back to defaultVal.
func getEnv[T any](key string, defaultVal T, parse func(string) (T, error)) T {
	raw, ok := lookupEnv(key)
	if !ok {
		return defaultVal
	}
	value, err := parse(raw)
	if err != nil {
		return defaultVal
	}
	return value
}

func getEnvAsString(key string, defaultVal string) string {
	return getEnv(key, defaultVal, func(s string) (string, error) { return s, nil })
}

func getEnvAsInt(key string, defaultVal int) int {
	return getEnv(key, defaultVal, strconv.Atoi)
}

func getEnvAsBool(key string, defaultVal bool) bool {
	return getEnv(key, defaultVal, strconv.ParseBool)
}

// getEnvAsTimeDuration accepts Go durations ("15s", "2m") or a bare number of seconds.
func getEnvAsTimeDuration(key string, defaultVal time.Duration) time.Duration {
	return getEnv(key, defaultVal, func(s string) (time.Duration, error) {
		if d, err := time.ParseDuration(s); err == nil {
			return d, nil
		}
		secs, err := strconv.Atoi(s)
		return time.Duration(secs) * time.Second, err
	})
}

// getEnvAsSlice splits a comma separated list, dropping blanks.
func getEnvAsSlice(key string, defaultVal []string) []string {
	return getEnv(key, defaultVal, func(s string) ([]string, error) {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	})
}

func lookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}
