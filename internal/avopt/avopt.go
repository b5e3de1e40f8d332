// Package avopt parses the key=value option strings accepted by output
// writers and the report environment variable.
package avopt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrSyntax     = errors.New("invalid option string")
	ErrNotFound   = errors.New("option not found")
	ErrInvalidArg = errors.New("invalid argument")
	ErrOutOfRange = errors.New("value out of range")
)

const whitespace = " \n\t\r"

// Token reads up to the first unescaped delimiter. Leading and trailing
// whitespace is dropped, single quotes protect their content and a
// backslash escapes the next byte.
func Token(s, delims string) (string, string) {
	s = strings.TrimLeft(s, whitespace)
	var b strings.Builder
	end := 0
	i := 0
	for i < len(s) && strings.IndexByte(delims, s[i]) < 0 {
		switch s[i] {
		case '\\':
			i++
			if i < len(s) {
				b.WriteByte(s[i])
				i++
			}
			end = b.Len()
		case '\'':
			i++
			for i < len(s) && s[i] != '\'' {
				b.WriteByte(s[i])
				i++
			}
			if i < len(s) {
				i++
			}
			end = b.Len()
		default:
			b.WriteByte(s[i])
			if strings.IndexByte(whitespace, s[i]) < 0 {
				end = b.Len()
			}
			i++
		}
	}
	return b.String()[:end], s[i:]
}

type Pair struct {
	Key   string
	Value string
}

// ParseDict splits s into key/value pairs. Every pair must carry a
// key/value separator.
func ParseDict(s, kvSep, pairSep string) ([]Pair, error) {
	var pairs []Pair
	for s != "" {
		var key, val string
		key, s = Token(s, kvSep)
		if s == "" || strings.IndexByte(kvSep, s[0]) < 0 {
			return nil, fmt.Errorf("%w: missing value for key '%s'", ErrSyntax, key)
		}
		val, s = Token(s[1:], pairSep)
		pairs = append(pairs, Pair{key, val})
		if s != "" {
			s = s[1:]
		}
	}
	return pairs, nil
}

// ParseBool accepts the usual spellings of a boolean switch.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "true", "y", "yes", "enable", "enabled", "on":
		return true, nil
	case "0", "false", "n", "no", "disable", "disabled", "off":
		return false, nil
	}
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return false, fmt.Errorf("%w: '%s' is not a boolean", ErrInvalidArg, s)
	}
	if n != 0 && n != 1 {
		return false, fmt.Errorf("%w: %d not in [0,1]", ErrOutOfRange, n)
	}
	return n == 1, nil
}

// Option binds a named setting, with an optional short alias, to a setter.
type Option struct {
	Name  string
	Alias string
	Set   func(string) error
}

func Bool(p *bool) func(string) error {
	return func(s string) error {
		v, err := ParseBool(s)
		if err != nil {
			return err
		}
		*p = v
		return nil
	}
}

func String(p *string) func(string) error {
	return func(s string) error {
		*p = s
		return nil
	}
}

func Int(p *int, lo, hi int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%w: '%s' is not an integer", ErrInvalidArg, s)
		}
		if v < lo || v > hi {
			return fmt.Errorf("%w: %d not in [%d,%d]", ErrOutOfRange, v, lo, hi)
		}
		*p = v
		return nil
	}
}

// Apply sets every pair on the first option whose name or alias matches.
func Apply(opts []Option, pairs []Pair) error {
	for _, kv := range pairs {
		found := false
		for _, o := range opts {
			if kv.Key == o.Name || (o.Alias != "" && kv.Key == o.Alias) {
				if err := o.Set(kv.Value); err != nil {
					return fmt.Errorf("failed to set option '%s' with value '%s': %w", kv.Key, kv.Value, err)
				}
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: '%s'", ErrNotFound, kv.Key)
		}
	}
	return nil
}
