package writer

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"hash/adler32"
	"hash/crc32"
	"math"
	"strings"
)

type Unit string

const (
	UnitSecond    Unit = "s"
	UnitHertz     Unit = "Hz"
	UnitByte      Unit = "byte"
	UnitBitPerSec Unit = "bit/s"
)

// Value is a number with a unit. Seconds use F, every other unit uses I.
type Value struct {
	I    int64
	F    float64
	Unit Unit
}

var prefixes = []struct {
	bin    float64
	dec    float64
	binStr string
	decStr string
}{
	{1.0, 1.0, "", ""},
	{1.024e3, 1e3, "Ki", "K"},
	{1.048576e6, 1e6, "Mi", "M"},
	{1.073741824e9, 1e9, "Gi", "G"},
	{1.099511627776e12, 1e12, "Ti", "T"},
	{1.125899906842624e15, 1e15, "Pi", "P"},
}

// ValueString renders v according to the unit, prefix and sexagesimal
// settings.
func (o *Options) ValueString(v Value) string {
	var vald float64
	var vali int64
	showFloat := false
	if v.Unit == UnitSecond {
		vald = v.F
		showFloat = true
	} else {
		vali = v.I
		vald = float64(v.I)
	}

	if v.Unit == UnitSecond && o.Sexagesimal {
		secs := vald
		mins := int(secs) / 60
		secs -= float64(mins * 60)
		hours := mins / 60
		mins %= 60
		return fmt.Sprintf("%d:%02d:%09.6f", hours, mins, secs)
	}

	prefix := ""
	if o.Prefix && vald > 1 {
		var idx int
		if v.Unit == UnitByte && o.BinaryPrefix {
			idx = clampIndex(int64(math.Log2(vald)) / 10)
			vald /= prefixes[idx].bin
			prefix = prefixes[idx].binStr
		} else {
			idx = clampIndex(int64(math.Log10(vald)) / 3)
			vald /= prefixes[idx].dec
			prefix = prefixes[idx].decStr
		}
		vali = int64(vald)
	}

	var b strings.Builder
	if showFloat || (o.Prefix && vald != float64(int64(vald))) {
		fmt.Fprintf(&b, "%f", vald)
	} else {
		fmt.Fprintf(&b, "%d", vali)
	}
	if prefix != "" || o.Unit {
		b.WriteByte(' ')
	}
	b.WriteString(prefix)
	if o.Unit {
		b.WriteString(string(v.Unit))
	}
	return b.String()
}

func clampIndex(i int64) int {
	if i < 0 {
		return 0
	}
	if i >= int64(len(prefixes)) {
		return len(prefixes) - 1
	}
	return int(i)
}

var hashes = []struct {
	name string
	new  func() hash.Hash
}{
	{"MD5", md5.New},
	{"SHA160", sha1.New},
	{"SHA224", sha256.New224},
	{"SHA256", sha256.New},
	{"SHA512/224", sha512.New512_224},
	{"SHA512/256", sha512.New512_256},
	{"SHA384", sha512.New384},
	{"SHA512", sha512.New},
	{"CRC32", func() hash.Hash { return crc32.NewIEEE() }},
	{"adler32", func() hash.Hash { return adler32.New() }},
}

// HashNames lists the digests accepted by NewHash.
func HashNames() []string {
	names := make([]string, len(hashes))
	for i, h := range hashes {
		names[i] = h.name
	}
	return names
}

// NewHash returns the digest for name, matched case insensitively, and its
// canonical spelling.
func NewHash(name string) (hash.Hash, string, error) {
	for _, h := range hashes {
		if strings.EqualFold(h.name, name) {
			return h.new(), h.name, nil
		}
	}
	return nil, "", fmt.Errorf("%w '%s'", ErrUnknownHash, name)
}
