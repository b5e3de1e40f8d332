package probe

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/autobrr/go-avprobe/internal/media"
)

var ErrInvalidInterval = errors.New("invalid read interval")

// Interval is one -read_intervals entry. Start and End are in
// microseconds, except that End counts packets when DurationFrames is set.
type Interval struct {
	ID             int
	Start          int64
	End            int64
	HasStart       bool
	HasEnd         bool
	StartIsOffset  bool
	EndIsOffset    bool
	DurationFrames bool
}

// ParseIntervals parses a comma separated list of intervals:
//
//	[START|+START_OFFSET][%[END|+END_OFFSET|+#NB_PACKETS]]
func ParseIntervals(spec string) ([]Interval, error) {
	parts := strings.Split(spec, ",")
	out := make([]Interval, 0, len(parts))
	for i, p := range parts {
		iv, err := parseInterval(p)
		if err != nil {
			return nil, fmt.Errorf("%w: '%s': %w", ErrInvalidInterval, p, err)
		}
		iv.ID = i
		out = append(out, iv)
	}
	return out, nil
}

func parseInterval(spec string) (Interval, error) {
	var iv Interval
	if spec == "" {
		return iv, errors.New("empty interval specification")
	}
	start, end, hasSep := strings.Cut(spec, "%")

	if start != "" {
		iv.HasStart = true
		start, iv.StartIsOffset = strings.CutPrefix(start, "+")
		ts, err := ParseDuration(start)
		if err != nil {
			return iv, fmt.Errorf("invalid interval start specification '%s'", start)
		}
		iv.Start = ts
	}

	if !hasSep || end == "" {
		return iv, nil
	}
	iv.HasEnd = true
	end, iv.EndIsOffset = strings.CutPrefix(end, "+")
	if n, ok := strings.CutPrefix(end, "#"); ok && iv.EndIsOffset {
		iv.DurationFrames = true
		var frames int64
		if n != "" {
			v, err := strconv.ParseInt(n, 10, 64)
			if err != nil || v < 0 {
				return iv, fmt.Errorf("invalid or negative value '%s' for duration number of frames", n)
			}
			frames = v
		}
		iv.End = frames
		return iv, nil
	}
	ts, err := ParseDuration(end)
	if err != nil {
		return iv, fmt.Errorf("invalid interval end/duration specification '%s'", end)
	}
	iv.End = ts
	return iv, nil
}

// String describes the interval the way read failures are logged.
func (iv Interval) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "id:%d", iv.ID)
	b.WriteString(" start:")
	if iv.HasStart {
		if iv.StartIsOffset {
			b.WriteByte('+')
		}
		b.WriteString(tsString(iv.Start))
	} else {
		b.WriteString("N/A")
	}
	b.WriteString(" end:")
	if iv.HasEnd {
		if iv.EndIsOffset {
			b.WriteByte('+')
		}
		if iv.DurationFrames {
			fmt.Fprintf(&b, "#%d", iv.End)
		} else {
			b.WriteString(tsString(iv.End))
		}
	} else {
		b.WriteString("N/A")
	}
	return b.String()
}

func tsString(us int64) string {
	if us == media.NoPTS {
		return "NOPTS"
	}
	return strconv.FormatFloat(float64(us)/media.TimeBase, 'g', 6, 64)
}

// ParseDuration parses a time duration into microseconds. Accepted forms
// are [-][HH:]MM:SS[.m...] and [-]S+[.m...][s|ms|us].
func ParseDuration(s string) (int64, error) {
	p := s
	neg := false
	if strings.HasPrefix(p, "-") {
		neg = true
		p = p[1:]
	}

	var secs int64
	if h, m, sec, rest, ok := parseClock(p, true); ok {
		secs, p = h*3600+m*60+sec, rest
	} else if _, m, sec, rest, ok := parseClock(p, false); ok {
		secs, p = m*60+sec, rest
	} else {
		n, rest := leadingDigits(p, 0)
		if n == "" {
			return 0, fmt.Errorf("invalid duration '%s'", s)
		}
		v, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration '%s': %w", s, err)
		}
		secs, p = v, rest
	}

	var micros int64
	if frac, ok := strings.CutPrefix(p, "."); ok {
		mul := int64(100000)
		i := 0
		for ; i < len(frac) && isDigit(frac[i]); i++ {
			if mul > 0 {
				micros += mul * int64(frac[i]-'0')
				mul /= 10
			}
		}
		p = frac[i:]
	}

	suffix := int64(1000000)
	switch {
	case strings.HasPrefix(p, "ms"):
		suffix = 1000
		micros /= 1000
		p = p[2:]
	case strings.HasPrefix(p, "us"):
		suffix = 1
		micros = 0
		p = p[2:]
	case strings.HasPrefix(p, "s"):
		p = p[1:]
	}
	if p != "" {
		return 0, fmt.Errorf("invalid duration '%s'", s)
	}
	if secs > math.MaxInt64/suffix {
		return 0, fmt.Errorf("duration '%s' out of range", s)
	}
	t := secs*suffix + micros
	if neg {
		t = -t
	}
	return t, nil
}

// parseClock reads HH:MM:SS when withHours is set, MM:SS otherwise.
// Minutes and seconds take one or two digits in 0..59.
func parseClock(s string, withHours bool) (h, m, sec int64, rest string, ok bool) {
	if withHours {
		var d string
		if d, s = leadingDigits(s, 0); d == "" || !strings.HasPrefix(s, ":") {
			return 0, 0, 0, "", false
		}
		var err error
		if h, err = strconv.ParseInt(d, 10, 64); err != nil {
			return 0, 0, 0, "", false
		}
		s = s[1:]
	}
	var d string
	if d, s = leadingDigits(s, 2); d == "" || !strings.HasPrefix(s, ":") {
		return 0, 0, 0, "", false
	}
	m, _ = strconv.ParseInt(d, 10, 64)
	if d, s = leadingDigits(s[1:], 2); d == "" {
		return 0, 0, 0, "", false
	}
	sec, _ = strconv.ParseInt(d, 10, 64)
	if m > 59 || sec > 59 {
		return 0, 0, 0, "", false
	}
	return h, m, sec, s, true
}

// leadingDigits splits off up to max leading digits, any number when max
// is zero.
func leadingDigits(s string, max int) (string, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) && (max == 0 || i < max) {
		i++
	}
	return s[:i], s[i:]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
