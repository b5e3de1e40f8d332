package pixdesc

import (
	"encoding/binary"
	"fmt"
)

// PaletteSize is the byte size of the palette plane of a FlagPAL format:
// 256 entries of 4 bytes each.
const PaletteSize = 256 * 4

// ReadImageLine unpacks w samples of component c starting at pixel (x, y).
// With readPal set, every sample of a palette format is replaced by the
// matching byte of the palette stored in data[1].
func ReadImageLine(dst []uint32, data [4][]byte, linesize [4]int, d *Descriptor, x, y, c, w int, readPal bool) {
	comp := d.Comp[c]
	plane := comp.Plane
	depth := comp.Depth
	mask := uint32(1)<<uint(depth) - 1
	step := comp.Step
	row := data[plane][y*linesize[plane]:]

	if d.Has(FlagBitstream) {
		skip := x*step + comp.Offset
		p := skip >> 3
		shift := 8 - depth - (skip & 7)
		for i := 0; i < w; i++ {
			val := uint32(row[p]>>uint(shift)) & mask
			if readPal {
				val = uint32(data[1][4*val+uint32(c)])
			}
			shift -= step
			p -= shift >> 3
			shift &= 7
			dst[i] = val
		}
		return
	}

	shift := comp.Shift
	p := x*step + comp.Offset
	is8bit := shift+depth <= 8
	is16bit := shift+depth <= 16
	be := d.Has(FlagBE)
	if is8bit && be {
		p++
	}
	for i := 0; i < w; i++ {
		var val uint32
		switch {
		case is8bit:
			val = uint32(row[p])
		case is16bit && be:
			val = uint32(binary.BigEndian.Uint16(row[p:]))
		case is16bit:
			val = uint32(binary.LittleEndian.Uint16(row[p:]))
		case be:
			val = binary.BigEndian.Uint32(row[p:])
		default:
			val = binary.LittleEndian.Uint32(row[p:])
		}
		val = (val >> uint(shift)) & mask
		if readPal {
			val = uint32(data[1][4*val+uint32(c)])
		}
		p += step
		dst[i] = val
	}
}

// WriteImageLine packs w samples of component c at pixel (x, y). Bits are
// OR'ed into the destination, so the target region must start zeroed.
func WriteImageLine(src []uint32, data [4][]byte, linesize [4]int, d *Descriptor, x, y, c, w int) {
	comp := d.Comp[c]
	plane := comp.Plane
	depth := comp.Depth
	step := comp.Step
	row := data[plane][y*linesize[plane]:]

	if d.Has(FlagBitstream) {
		skip := x*step + comp.Offset
		p := skip >> 3
		shift := 8 - depth - (skip & 7)
		for i := 0; i < w; i++ {
			row[p] |= byte(src[i] << uint(shift))
			shift -= step
			p -= shift >> 3
			shift &= 7
		}
		return
	}

	shift := comp.Shift
	p := x*step + comp.Offset
	be := d.Has(FlagBE)
	if shift+depth <= 8 {
		if be {
			p++
		}
		for i := 0; i < w; i++ {
			row[p] |= byte(src[i] << uint(shift))
			p += step
		}
		return
	}
	for i := 0; i < w; i++ {
		switch {
		case shift+depth <= 16 && be:
			v := binary.BigEndian.Uint16(row[p:]) | uint16(src[i]<<uint(shift))
			binary.BigEndian.PutUint16(row[p:], v)
		case shift+depth <= 16:
			v := binary.LittleEndian.Uint16(row[p:]) | uint16(src[i]<<uint(shift))
			binary.LittleEndian.PutUint16(row[p:], v)
		case be:
			v := binary.BigEndian.Uint32(row[p:]) | src[i]<<uint(shift)
			binary.BigEndian.PutUint32(row[p:], v)
		default:
			v := binary.LittleEndian.Uint32(row[p:]) | src[i]<<uint(shift)
			binary.LittleEndian.PutUint32(row[p:], v)
		}
		p += step
	}
}

// Validate checks the layout rules every registry entry must satisfy and
// round-trips two samples of each component through a scratch buffer.
func (d *Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalid)
	}
	if d.Log2ChromaW > 3 || d.Log2ChromaH > 3 {
		return fmt.Errorf("%w: %s: chroma shift out of range", ErrInvalid, d.Name)
	}
	if d.NbComponents > 4 {
		return fmt.Errorf("%w: %s: %d components", ErrInvalid, d.Name, d.NbComponents)
	}
	if (d.NbComponents == 4 || d.NbComponents == 2) != d.Has(FlagAlpha) {
		return fmt.Errorf("%w: %s: alpha flag does not match component count", ErrInvalid, d.Name)
	}

	var fill [4][17]byte
	var data [4][]byte
	for i := range fill {
		data[i] = fill[i][:]
	}
	var linesize [4]int
	tmp := make([]uint32, 2)

	for j, c := range d.Comp {
		if j >= d.NbComponents {
			if c != (Component{}) {
				return fmt.Errorf("%w: %s: unused component %d is set", ErrInvalid, d.Name, j)
			}
			continue
		}
		if d.Has(FlagBitstream) {
			if c.Step < c.Depth {
				return fmt.Errorf("%w: %s: component %d step %d < depth %d bits", ErrInvalid, d.Name, j, c.Step, c.Depth)
			}
		} else if 8*c.Step < c.Depth {
			return fmt.Errorf("%w: %s: component %d step %d bytes < depth %d", ErrInvalid, d.Name, j, c.Step, c.Depth)
		}
		if c.StepMinus1 != c.Step-1 || c.DepthMinus1 != c.Depth-1 || c.OffsetPlus1 != c.Offset+1 {
			return fmt.Errorf("%w: %s: component %d legacy fields disagree", ErrInvalid, d.Name, j)
		}
		if d.Has(FlagBayer) {
			continue
		}
		ReadImageLine(tmp, data, linesize, d, 0, 0, j, 2, false)
		if tmp[0] != 0 || tmp[1] != 0 {
			return fmt.Errorf("%w: %s: component %d overlaps another component", ErrInvalid, d.Name, j)
		}
		tmp[0] = 1<<uint(c.Depth) - 1
		tmp[1] = tmp[0]
		WriteImageLine(tmp, data, linesize, d, 0, 0, j, 2)
	}
	return nil
}
