package config

import (
	"slices"
	"strconv"
	"strings"
)

// LevelNames are the accepted log level names, quietest first.
var LevelNames = []string{"quiet", "panic", "fatal", "error", "warning", "info", "verbose", "debug", "trace"}

// ValidLevel accepts a level name, "warn", or a numeric level, with or
// without repeat+ and level+ flag prefixes.
func ValidLevel(s string) bool {
	s = StripLevelFlags(s)
	if s == "warn" || slices.Contains(LevelNames, s) {
		return true
	}
	_, err := strconv.Atoi(s)
	return err == nil
}

// StripLevelFlags returns the bare level of a -loglevel argument.
func StripLevelFlags(s string) string {
	for {
		var ok bool
		if s, ok = strings.CutPrefix(s, "repeat+"); ok {
			continue
		}
		if s, ok = strings.CutPrefix(s, "level+"); ok {
			continue
		}
		return s
	}
}
