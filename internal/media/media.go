// Package media holds the demuxer facing data model: streams, packets,
// frames, side data and the timestamp arithmetic shared by the probe and
// transcode paths.
package media

import (
	"errors"
	"fmt"
	"math"
	"math/big"
)

var (
	// ErrEOF marks the end of a stream. It is a control signal.
	ErrEOF = errors.New("end of file")
	// ErrAgain asks the caller to feed more input before retrying.
	ErrAgain = errors.New("resource temporarily unavailable")
	// ErrExit is returned when an interrupt callback asked to stop.
	ErrExit           = errors.New("immediate exit requested")
	ErrInvalidData    = errors.New("invalid data found when processing input")
	ErrStreamNotFound = errors.New("stream not found")
)

// NoPTS marks an unset timestamp.
const NoPTS int64 = math.MinInt64

// TimeBase is the microsecond base used for container level durations.
const TimeBase = 1000000

var TimeBaseQ = Rational{1, TimeBase}

type Rational struct {
	Num int
	Den int
}

func (r Rational) Float() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

func (r Rational) IsZero() bool { return r.Num == 0 }

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

func (r Rational) Inv() Rational { return Rational{r.Den, r.Num} }

// Reduce returns r in lowest terms with a positive denominator.
func (r Rational) Reduce() Rational {
	if r.Den == 0 {
		return r
	}
	a, b := r.Num, r.Den
	if b < 0 {
		a, b = -a, -b
	}
	g := gcd(abs(a), b)
	if g == 0 {
		return Rational{0, 1}
	}
	return Rational{a / g, b / g}
}

// Rescale converts ts from one time base to another rounding to nearest,
// halves away from zero. NoPTS passes through.
func Rescale(ts int64, from, to Rational) int64 {
	if ts == NoPTS {
		return NoPTS
	}
	if from.Den == 0 || to.Num == 0 {
		return NoPTS
	}
	num := new(big.Int).Mul(big.NewInt(ts), big.NewInt(int64(from.Num)*int64(to.Den)))
	den := big.NewInt(int64(from.Den) * int64(to.Num))
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	half := new(big.Int).Rsh(den, 1)
	if num.Sign() >= 0 {
		num.Add(num, half)
	} else {
		num.Sub(num, half)
	}
	q := new(big.Int).Quo(num, den)
	if !q.IsInt64() {
		return NoPTS
	}
	return q.Int64()
}

// Compare orders two timestamps in different time bases. It returns -1, 0
// or 1.
func Compare(a int64, ta Rational, b int64, tb Rational) int {
	l := new(big.Int).Mul(big.NewInt(a), big.NewInt(int64(ta.Num)*int64(tb.Den)))
	r := new(big.Int).Mul(big.NewInt(b), big.NewInt(int64(tb.Num)*int64(ta.Den)))
	return l.Cmp(r)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

type Type int

const (
	TypeUnknown Type = iota - 1
	TypeVideo
	TypeAudio
	TypeData
	TypeSubtitle
	TypeAttachment
)

func (t Type) String() string {
	switch t {
	case TypeVideo:
		return "video"
	case TypeAudio:
		return "audio"
	case TypeData:
		return "data"
	case TypeSubtitle:
		return "subtitle"
	case TypeAttachment:
		return "attachment"
	default:
		return "unknown"
	}
}

// Dict is an ordered string map used for tags.
type Dict struct {
	entries []Entry
}

type Entry struct {
	Key   string
	Value string
}

// Set replaces an existing key in place or appends a new one. An empty
// value removes the key.
func (d *Dict) Set(key, value string) {
	for i := range d.entries {
		if d.entries[i].Key == key {
			if value == "" {
				d.entries = append(d.entries[:i], d.entries[i+1:]...)
				return
			}
			d.entries[i].Value = value
			return
		}
	}
	if value != "" {
		d.entries = append(d.entries, Entry{key, value})
	}
}

func (d *Dict) Get(key string) (string, bool) {
	if d == nil {
		return "", false
	}
	for _, e := range d.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

func (d *Dict) Entries() []Entry {
	if d == nil {
		return nil
	}
	return d.entries
}

func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}
