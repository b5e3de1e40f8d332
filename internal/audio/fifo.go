package audio

import (
	"fmt"
	"math"
)

// maxAlloc caps a single plane allocation.
var maxAlloc = math.MaxInt32

// FIFO stages converted samples between a producer and a consumer that
// work in different chunk sizes. Each plane is a ring over capacity
// samples. Capacity only grows.
type FIFO struct {
	format     SampleFormat
	channels   int
	sampleSize int
	buf        [][]byte
	capacity   int
	fill       int
	rpos       int
	wpos       int
}

func NewFIFO(f SampleFormat, channels, nbSamples int) (*FIFO, error) {
	if f.BytesPerSample() == 0 || channels <= 0 {
		return nil, ErrInvalid
	}
	planes := 1
	sampleSize := f.BytesPerSample() * channels
	if f.IsPlanar() {
		planes = channels
		sampleSize = f.BytesPerSample()
	}
	q := &FIFO{
		format:     f,
		channels:   channels,
		sampleSize: sampleSize,
		buf:        make([][]byte, planes),
	}
	if nbSamples < 1 {
		nbSamples = 1
	}
	if err := q.Realloc(nbSamples); err != nil {
		return nil, err
	}
	return q, nil
}

func (q *FIFO) Format() SampleFormat { return q.format }
func (q *FIFO) Channels() int        { return q.channels }
func (q *FIFO) Planes() int          { return len(q.buf) }

// Size returns the number of buffered samples.
func (q *FIFO) Size() int { return q.fill }

// Space returns how many samples can be written without growing.
func (q *FIFO) Space() int { return q.capacity - q.fill }

func (q *FIFO) Cap() int { return q.capacity }

// Realloc grows the buffer to hold nbSamples. Smaller sizes are ignored.
func (q *FIFO) Realloc(nbSamples int) error {
	if nbSamples <= q.capacity {
		return nil
	}
	if nbSamples > maxAlloc/q.sampleSize {
		return fmt.Errorf("%w: %d samples", ErrNoMem, nbSamples)
	}
	size := nbSamples * q.sampleSize
	for i := range q.buf {
		nb := make([]byte, size)
		q.copyOut(nb, i, q.rpos, q.fill)
		q.buf[i] = nb
	}
	q.capacity = nbSamples
	q.rpos = 0
	q.wpos = q.fill % q.capacity
	return nil
}

// Write appends nbSamples from data, one slice per plane.
func (q *FIFO) Write(data [][]byte, nbSamples int) (int, error) {
	if nbSamples < 0 || len(data) < len(q.buf) {
		return 0, ErrInvalid
	}
	need := nbSamples * q.sampleSize
	for i := range q.buf {
		if len(data[i]) < need {
			return 0, fmt.Errorf("%w: plane %d holds %d bytes, need %d", ErrInvalid, i, len(data[i]), need)
		}
	}
	if q.Space() < nbSamples {
		if q.fill > math.MaxInt-nbSamples {
			return 0, ErrNoMem
		}
		if err := q.Realloc(q.fill + nbSamples); err != nil {
			return 0, err
		}
	}
	for i := range q.buf {
		q.copyIn(i, q.wpos, data[i][:need])
	}
	q.wpos = (q.wpos + nbSamples) % q.capacity
	q.fill += nbSamples
	return nbSamples, nil
}

// Peek copies nbSamples into data without consuming them.
func (q *FIFO) Peek(data [][]byte, nbSamples int) (int, error) {
	if err := q.checkRead(data, nbSamples); err != nil {
		return 0, err
	}
	for i := range q.buf {
		q.copyOut(data[i], i, q.rpos, nbSamples)
	}
	return nbSamples, nil
}

// Read removes exactly nbSamples. It fails with ErrShortRead when fewer
// are buffered.
func (q *FIFO) Read(data [][]byte, nbSamples int) (int, error) {
	if _, err := q.Peek(data, nbSamples); err != nil {
		return 0, err
	}
	q.advance(nbSamples)
	return nbSamples, nil
}

func (q *FIFO) Drain(nbSamples int) error {
	if nbSamples < 0 {
		return ErrInvalid
	}
	if nbSamples > q.fill {
		return fmt.Errorf("%w: drain %d of %d", ErrShortRead, nbSamples, q.fill)
	}
	q.advance(nbSamples)
	return nil
}

func (q *FIFO) Reset() {
	q.fill, q.rpos, q.wpos = 0, 0, 0
}

func (q *FIFO) advance(n int) {
	q.rpos = (q.rpos + n) % q.capacity
	q.fill -= n
}

func (q *FIFO) checkRead(data [][]byte, nbSamples int) error {
	if nbSamples < 0 || len(data) < len(q.buf) {
		return ErrInvalid
	}
	if nbSamples > q.fill {
		return fmt.Errorf("%w: want %d, have %d", ErrShortRead, nbSamples, q.fill)
	}
	need := nbSamples * q.sampleSize
	for i := range q.buf {
		if len(data[i]) < need {
			return fmt.Errorf("%w: plane %d holds %d bytes, need %d", ErrInvalid, i, len(data[i]), need)
		}
	}
	return nil
}

func (q *FIFO) copyIn(plane, pos int, src []byte) {
	off := pos * q.sampleSize
	n := copy(q.buf[plane][off:], src)
	copy(q.buf[plane], src[n:])
}

func (q *FIFO) copyOut(dst []byte, plane, pos, nbSamples int) {
	if nbSamples == 0 || q.capacity == 0 {
		return
	}
	off := pos * q.sampleSize
	size := nbSamples * q.sampleSize
	n := copy(dst[:size], q.buf[plane][off:])
	copy(dst[n:size], q.buf[plane])
}
