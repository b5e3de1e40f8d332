package pixdesc

import "strings"

type (
	ColorRange     int
	ColorPrimaries int
	ColorTransfer  int
	ColorSpace     int
	ChromaLocation int
)

const (
	ColorRangeUnspecified ColorRange = 0
	ColorRangeMPEG        ColorRange = 1
	ColorRangeJPEG        ColorRange = 2

	ColorPrimariesBT709       ColorPrimaries = 1
	ColorPrimariesUnspecified ColorPrimaries = 2
	ColorPrimariesBT2020      ColorPrimaries = 9

	ColorTransferBT709       ColorTransfer = 1
	ColorTransferUnspecified ColorTransfer = 2
	ColorTransferSMPTE2084   ColorTransfer = 16
	ColorTransferARIBB67     ColorTransfer = 18

	ColorSpaceRGB         ColorSpace = 0
	ColorSpaceBT709       ColorSpace = 1
	ColorSpaceUnspecified ColorSpace = 2
	ColorSpaceBT2020NCL   ColorSpace = 9

	ChromaLocUnspecified ChromaLocation = 0
	ChromaLocLeft        ChromaLocation = 1
)

var colorRangeNames = []string{
	0: "unknown",
	1: "tv",
	2: "pc",
}

var colorPrimariesNames = []string{
	0:  "reserved",
	1:  "bt709",
	2:  "unknown",
	3:  "reserved",
	4:  "bt470m",
	5:  "bt470bg",
	6:  "smpte170m",
	7:  "smpte240m",
	8:  "film",
	9:  "bt2020",
	10: "smpte428",
	11: "smpte431",
	12: "smpte432",
	22: "jedec-p22",
}

var colorTransferNames = []string{
	"reserved",
	"bt709",
	"unknown",
	"reserved",
	"bt470m",
	"bt470bg",
	"smpte170m",
	"smpte240m",
	"linear",
	"log100",
	"log316",
	"iec61966-2-4",
	"bt1361e",
	"iec61966-2-1",
	"bt2020-10",
	"bt2020-12",
	"smpte2084",
	"smpte428",
	"arib-std-b67",
}

var colorSpaceNames = []string{
	"gbr",
	"bt709",
	"unknown",
	"reserved",
	"fcc",
	"bt470bg",
	"smpte170m",
	"smpte240m",
	"ycgco",
	"bt2020nc",
	"bt2020c",
	"smpte2085",
	"chroma-derived-nc",
	"chroma-derived-c",
	"ictcp",
}

var chromaLocationNames = []string{
	"unspecified",
	"left",
	"center",
	"topleft",
	"top",
	"bottomleft",
	"bottom",
}

func nameAt(table []string, i int) (string, bool) {
	if i < 0 || i >= len(table) || table[i] == "" {
		return "", false
	}
	return table[i], true
}

// fromName returns the first entry that prefixes name.
func fromName(table []string, name string) (int, bool) {
	for i, n := range table {
		if n != "" && strings.HasPrefix(name, n) {
			return i, true
		}
	}
	return -1, false
}

func (r ColorRange) Name() (string, bool)     { return nameAt(colorRangeNames, int(r)) }
func (p ColorPrimaries) Name() (string, bool) { return nameAt(colorPrimariesNames, int(p)) }
func (t ColorTransfer) Name() (string, bool)  { return nameAt(colorTransferNames, int(t)) }
func (s ColorSpace) Name() (string, bool)     { return nameAt(colorSpaceNames, int(s)) }
func (l ChromaLocation) Name() (string, bool) { return nameAt(chromaLocationNames, int(l)) }

func ColorRangeFromName(name string) (ColorRange, bool) {
	i, ok := fromName(colorRangeNames, name)
	return ColorRange(i), ok
}

func ColorPrimariesFromName(name string) (ColorPrimaries, bool) {
	i, ok := fromName(colorPrimariesNames, name)
	return ColorPrimaries(i), ok
}

func ColorTransferFromName(name string) (ColorTransfer, bool) {
	i, ok := fromName(colorTransferNames, name)
	return ColorTransfer(i), ok
}

func ColorSpaceFromName(name string) (ColorSpace, bool) {
	i, ok := fromName(colorSpaceNames, name)
	return ColorSpace(i), ok
}

func ChromaLocationFromName(name string) (ChromaLocation, bool) {
	i, ok := fromName(chromaLocationNames, name)
	return ChromaLocation(i), ok
}
