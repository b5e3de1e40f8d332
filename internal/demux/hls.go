package demux

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bluenviron/gohlslib/v2/pkg/playlist"

	"github.com/autobrr/go-avprobe/internal/media"
)

const hlsPollInterval = 100 * time.Millisecond

var hlsExtensions = []string{"m3u8", "m3u"}

var hlsFormat = &Format{
	Name:       "hls",
	LongName:   "Apple HTTP Live Streaming",
	Extensions: hlsExtensions,
	Probe:      probeHLS,
	Open: func(r io.ReadSeeker, filename string, opts Options) Demuxer {
		return &hlsDemuxer{r: r, filename: filename, opts: opts, sleep: time.Sleep, now: time.Now}
	},
}

func probeHLS(buf []byte, filename string) int {
	buf = bytes.TrimPrefix(buf, []byte("\xef\xbb\xbf"))
	if !bytes.HasPrefix(buf, []byte("#EXTM3U")) {
		return 0
	}
	for _, tag := range []string{"#EXT-X-STREAM-INF:", "#EXT-X-TARGETDURATION:", "#EXT-X-MEDIA-SEQUENCE:"} {
		if bytes.Contains(buf, []byte(tag)) {
			return ScoreMax
		}
	}
	if matchExtension(filename, hlsExtensions) {
		return ScoreExtension
	}
	return 0
}

// hlsDemuxer reads a local media playlist, or the highest bandwidth
// variant of a multivariant one, as one transport stream made of its
// segments. Live playlists are reloaded until they end.
type hlsDemuxer struct {
	r        io.ReadSeeker
	filename string
	opts     Options
	sleep    func(time.Duration)
	now      func() time.Time

	mediaPath string
	playlist  *playlist.Media
	bandwidth int
	lastLoad  time.Time
	grew      bool

	ts  *tsDemuxer
	seg *segmentReader
}

func (d *hlsDemuxer) ReadHeader(fc *media.FormatContext) error {
	buf, err := io.ReadAll(d.r)
	if err != nil {
		return err
	}
	pl, err := playlist.Unmarshal(buf)
	if err != nil {
		return fmt.Errorf("%w: %v", media.ErrInvalidData, err)
	}
	d.mediaPath = d.filename
	switch pl := pl.(type) {
	case *playlist.Media:
		d.playlist = pl
	case *playlist.Multivariant:
		var best *playlist.MultivariantVariant
		for _, v := range pl.Variants {
			if best == nil || v.Bandwidth > best.Bandwidth {
				best = v
			}
		}
		if best == nil {
			return fmt.Errorf("%w: playlist has no variants", media.ErrInvalidData)
		}
		d.bandwidth = best.Bandwidth
		if d.mediaPath, err = d.resolve(best.URI); err != nil {
			return err
		}
		if err := d.load(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unsupported playlist", media.ErrInvalidData)
	}
	d.lastLoad = d.now()

	d.ts = newTSDemuxer(func() (io.Reader, error) {
		if d.seg != nil {
			d.seg.Close()
		}
		d.seg = &segmentReader{d: d, seq: d.playlist.MediaSequence}
		return d.seg, nil
	}, nil)
	d.ts.hidePrograms = true
	if err := d.ts.ReadHeader(fc); err != nil {
		return err
	}

	prog := &media.Program{PMTPid: -1, PCRPid: -1, StartTime: media.NoPTS, EndTime: media.NoPTS}
	prog.Tags.Set("variant_bitrate", strconv.Itoa(d.bandwidth))
	for _, st := range fc.Streams {
		st.Tags.Set("variant_bitrate", strconv.Itoa(d.bandwidth))
		prog.Streams = append(prog.Streams, st.Index)
	}
	fc.Programs = append(fc.Programs, prog)

	if d.playlist.Endlist {
		var total time.Duration
		for _, s := range d.playlist.Segments {
			total += s.Duration
		}
		fc.Duration = total.Microseconds()
	}
	return nil
}

// resolve maps a playlist URI to a local path relative to the playlist
// that references it.
func (d *hlsDemuxer) resolve(uri string) (string, error) {
	if strings.Contains(uri, "://") {
		return "", fmt.Errorf("%w: remote segment %s", media.ErrInvalidData, uri)
	}
	if filepath.IsAbs(uri) {
		return uri, nil
	}
	return filepath.Join(filepath.Dir(d.mediaPath), filepath.FromSlash(uri)), nil
}

func (d *hlsDemuxer) load() error {
	buf, err := os.ReadFile(d.mediaPath)
	if err != nil {
		return err
	}
	pl, err := playlist.Unmarshal(buf)
	if err != nil {
		return fmt.Errorf("%w: %v", media.ErrInvalidData, err)
	}
	m, ok := pl.(*playlist.Media)
	if !ok {
		return fmt.Errorf("%w: %s is not a media playlist", media.ErrInvalidData, d.mediaPath)
	}
	d.grew = d.playlist == nil || m.MediaSequence+len(m.Segments) > d.playlist.MediaSequence+len(d.playlist.Segments)
	d.playlist = m
	return nil
}

// reload waits for the reload interval, polling the interrupt callback,
// and reads the playlist again.
func (d *hlsDemuxer) reload() error {
	interval := time.Duration(d.playlist.TargetDuration) * time.Second
	if n := len(d.playlist.Segments); n > 0 && d.grew {
		interval = d.playlist.Segments[n-1].Duration
	} else if !d.grew {
		interval /= 2
	}
	for d.now().Sub(d.lastLoad) < interval {
		if d.opts.interrupted() {
			return media.ErrExit
		}
		d.sleep(hlsPollInterval)
	}
	if d.opts.interrupted() {
		return media.ErrExit
	}
	d.lastLoad = d.now()
	return d.load()
}

func (d *hlsDemuxer) ReadPacket(pkt *media.Packet) error {
	return d.ts.ReadPacket(pkt)
}

func (d *hlsDemuxer) Seek(ts int64) error {
	if !d.playlist.Endlist {
		return ErrSeek
	}
	return d.ts.Seek(ts)
}

func (d *hlsDemuxer) Close() error {
	if d.ts != nil {
		d.ts.Close()
	}
	if d.seg != nil {
		return d.seg.Close()
	}
	return nil
}

// segmentReader concatenates the playlist segments, reloading live
// playlists when it runs out of them.
type segmentReader struct {
	d   *hlsDemuxer
	seq int
	cur *os.File
	err error
}

func (s *segmentReader) Read(p []byte) (int, error) {
	for {
		if s.err != nil {
			return 0, s.err
		}
		if s.cur == nil {
			if err := s.openNext(); err != nil {
				s.err = err
				return 0, err
			}
		}
		n, err := s.cur.Read(p)
		if err == io.EOF {
			s.cur.Close()
			s.cur = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (s *segmentReader) openNext() error {
	for {
		pl := s.d.playlist
		idx := s.seq - pl.MediaSequence
		if idx < 0 {
			// the live window moved past us
			s.seq, idx = pl.MediaSequence, 0
		}
		if idx < len(pl.Segments) {
			path, err := s.d.resolve(pl.Segments[idx].URI)
			if err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			s.cur = f
			s.seq++
			return nil
		}
		if pl.Endlist {
			return io.EOF
		}
		if err := s.d.reload(); err != nil {
			return err
		}
	}
}

// Err returns the error that stopped reading, other than the end of the
// playlist.
func (s *segmentReader) Err() error {
	if s.err == io.EOF {
		return nil
	}
	return s.err
}

func (s *segmentReader) Close() error {
	if s.cur != nil {
		err := s.cur.Close()
		s.cur = nil
		return err
	}
	return nil
}
