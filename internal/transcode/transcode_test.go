package transcode

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobrr/go-avprobe/internal/audio"
	"github.com/autobrr/go-avprobe/internal/codec"
	"github.com/autobrr/go-avprobe/internal/demux"
	"github.com/autobrr/go-avprobe/internal/media"
	"github.com/autobrr/go-avprobe/internal/mediatest"
)

type recordSink struct {
	packets []*media.Packet
	trailer bool
	late    bool
}

func (s *recordSink) WritePacket(pkt *media.Packet) error {
	if s.trailer {
		s.late = true
	}
	s.packets = append(s.packets, pkt)
	return nil
}

func (s *recordSink) WriteTrailer() error {
	s.trailer = true
	return nil
}

func monoS16(rate int) audio.Params {
	return audio.Params{Format: audio.SampleFmtS16, Rate: rate, Layout: audio.DefaultLayout(1)}
}

func rampFrame(start, n int) *media.Frame {
	f := media.NewFrame()
	f.MediaType = media.TypeAudio
	f.SampleFmt = audio.SampleFmtS16
	f.SampleRate = 48000
	f.Layout = audio.DefaultLayout(1)
	f.NbSamples = n
	data := make([]byte, 2*n)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(int16(start+i)))
	}
	f.Data = [][]byte{data}
	return f
}

func TestSessionReframes(t *testing.T) {
	enc, err := codec.NewPCMEncoder("pcm_s16le", 1, 960)
	require.NoError(t, err)
	sink := &recordSink{}
	sess, err := NewSession(monoS16(48000), monoS16(48000), enc, sink, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, sess.Push(rampFrame(i*1024, 1024)))
	}
	stats := sess.Stats()
	assert.Equal(t, 3, stats.FramesIn)
	assert.Equal(t, 3, stats.FramesEncoded)
	assert.Equal(t, int64(2880), stats.SamplesOut)
	assert.Equal(t, 192, sess.Buffered())
	assert.Equal(t, int64(2880), sess.PTS())
	assert.False(t, sink.trailer)

	require.NoError(t, sess.Finish())
	assert.True(t, sink.trailer)
	assert.Equal(t, 0, sess.Buffered())
	require.Len(t, sink.packets, 4)

	var pts int64
	var all []byte
	for i, pkt := range sink.packets {
		assert.Equal(t, pts, pkt.PTS, "packet %d", i)
		pts += pkt.Duration
		all = append(all, pkt.Data...)
	}
	assert.Equal(t, int64(192), sink.packets[3].Duration)
	assert.Equal(t, int64(3072), pts)

	require.Len(t, all, 2*3072)
	for i := 0; i < 3072; i++ {
		got := int16(binary.LittleEndian.Uint16(all[2*i:]))
		if got != int16(i) {
			t.Fatalf("sample %d = %d", i, got)
		}
	}

	assert.ErrorIs(t, sess.Push(rampFrame(0, 10)), media.ErrEOF)
	assert.NoError(t, sess.Finish())
}

// delayEncoder wraps a PCM encoder and holds its packets back for delay
// frames. After the flush it releases the rest one per receive call.
type delayEncoder struct {
	*codec.PCMEncoder
	delay    int
	held     []*media.Packet
	flushing bool
	receives int
}

func (e *delayEncoder) SendFrame(f *media.Frame) error {
	if err := e.PCMEncoder.SendFrame(f); err != nil {
		return err
	}
	if f == nil {
		e.flushing = true
		return nil
	}
	pkt := media.NewPacket()
	if err := e.PCMEncoder.ReceivePacket(pkt); err != nil {
		return err
	}
	e.held = append(e.held, pkt)
	return nil
}

func (e *delayEncoder) ReceivePacket(pkt *media.Packet) error {
	if e.flushing {
		e.receives++
	}
	if len(e.held) > e.delay || (e.flushing && len(e.held) > 0) {
		*pkt = *e.held[0]
		e.held = e.held[1:]
		return nil
	}
	if e.flushing {
		return media.ErrEOF
	}
	return media.ErrAgain
}

func TestSessionDrainsDelayedEncoder(t *testing.T) {
	pcm, err := codec.NewPCMEncoder("pcm_s16le", 1, 960)
	require.NoError(t, err)
	enc := &delayEncoder{PCMEncoder: pcm, delay: 2}
	sink := &recordSink{}
	sess, err := NewSession(monoS16(48000), monoS16(48000), enc, sink, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, sess.Push(rampFrame(i*1024, 1024)))
	}
	// three frames went in, two are still held by the encoder
	assert.Len(t, sink.packets, 1)

	require.NoError(t, sess.Finish())
	require.Len(t, sink.packets, 4)
	assert.False(t, sink.late, "packet written after the trailer")
	assert.True(t, sink.trailer)
	// two held packets, then the EOF answer
	assert.Equal(t, 3, enc.receives)
	assert.Equal(t, 4, sess.Stats().Packets)

	var pts int64
	for i, pkt := range sink.packets {
		assert.Equal(t, pts, pkt.PTS, "packet %d", i)
		pts += pkt.Duration
	}
	assert.Equal(t, int64(3072), pts)
}

type stalledEncoder struct {
	*codec.PCMEncoder
}

func (stalledEncoder) ReceivePacket(*media.Packet) error { return media.ErrAgain }

func TestSessionFlushStalled(t *testing.T) {
	pcm, err := codec.NewPCMEncoder("pcm_s16le", 1, 960)
	require.NoError(t, err)
	sink := &recordSink{}
	sess, err := NewSession(monoS16(48000), monoS16(48000), stalledEncoder{pcm}, sink, nil)
	require.NoError(t, err)
	require.NoError(t, sess.Push(rampFrame(0, 100)))
	assert.ErrorIs(t, sess.Finish(), ErrFlushStalled)
	assert.False(t, sink.trailer)
}

func TestSessionExactMultipleHasNoPartial(t *testing.T) {
	enc, err := codec.NewPCMEncoder("pcm_s16le", 1, 512)
	require.NoError(t, err)
	sink := &recordSink{}
	sess, err := NewSession(monoS16(48000), monoS16(48000), enc, sink, nil)
	require.NoError(t, err)

	require.NoError(t, sess.Push(rampFrame(0, 1024)))
	require.NoError(t, sess.Finish())
	assert.Len(t, sink.packets, 2)
}

func TestSessionConvertsFormat(t *testing.T) {
	enc, err := codec.NewPCMEncoder("pcm_f32le", 1, 100)
	require.NoError(t, err)
	sink := &recordSink{}
	out := audio.Params{Format: audio.SampleFmtFLT, Rate: 48000, Layout: audio.DefaultLayout(1)}
	sess, err := NewSession(monoS16(48000), out, enc, sink, nil)
	require.NoError(t, err)

	f := rampFrame(0, 100)
	half := int16(-1 << 14)
	binary.LittleEndian.PutUint16(f.Data[0][2:], uint16(half))
	require.NoError(t, sess.Push(f))
	require.NoError(t, sess.Finish())
	require.Len(t, sink.packets, 1)
	require.Len(t, sink.packets[0].Data, 400)
	assert.Equal(t, uint32(0xbf000000), binary.LittleEndian.Uint32(sink.packets[0].Data[4:]))
}

func TestSessionRejectsMismatch(t *testing.T) {
	enc, err := codec.NewPCMEncoder("pcm_s16le", 1, 960)
	require.NoError(t, err)

	_, err = NewSession(monoS16(44100), monoS16(48000), enc, &recordSink{}, nil)
	assert.ErrorIs(t, err, audio.ErrRateMismatch)

	flt := audio.Params{Format: audio.SampleFmtFLT, Rate: 48000, Layout: audio.DefaultLayout(1)}
	_, err = NewSession(monoS16(48000), flt, enc, &recordSink{}, nil)
	assert.ErrorIs(t, err, audio.ErrInvalid)
}

func writeWAV(t *testing.T, dir, name string, samples int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, mediatest.WAV(8000, 2, samples, "tone"), 0o644))
	return path
}

func readPayload(t *testing.T, path string) (*media.CodecParameters, []byte) {
	t.Helper()
	in, err := demux.Open(context.Background(), path, demux.Options{})
	require.NoError(t, err)
	defer in.Close()
	require.Len(t, in.Format.Streams, 1)

	var data []byte
	pkt := media.NewPacket()
	for {
		err := in.ReadPacket(pkt)
		if errors.Is(err, media.ErrEOF) {
			break
		}
		require.NoError(t, err)
		data = append(data, pkt.Data...)
	}
	return in.Format.Streams[0].Codecpar, data
}

func TestRunWAV(t *testing.T) {
	dir := t.TempDir()
	input := writeWAV(t, dir, "in.wav", 1000)
	output := filepath.Join(dir, "out.wav")

	res, err := Run(context.Background(), input, output, Options{
		FrameSize: 256,
		SampleFmt: audio.SampleFmtNone,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), res.Stats.SamplesOut)
	assert.Equal(t, 4, res.Stats.FramesEncoded)
	assert.Equal(t, 4, res.Stats.Packets)

	par, got := readPayload(t, output)
	assert.Equal(t, "pcm_s16le", par.CodecName)
	assert.Equal(t, 8000, par.SampleRate)
	assert.Equal(t, 2, par.Layout.NbChannels)

	_, want := readPayload(t, input)
	assert.Equal(t, want, got)
}

func TestRunAll(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0o755))
	inputs := []string{
		writeWAV(t, dir, "a.wav", 300),
		writeWAV(t, dir, "b.wav", 700),
	}

	results, err := RunAll(context.Background(), inputs, Options{
		OutputDir: outDir,
		FrameSize: 128,
		SampleFmt: audio.SampleFmtS32,
		Jobs:      2,
	}, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, filepath.Join(outDir, "a.wav"), results[0].Output)
	assert.Equal(t, int64(300), results[0].Stats.SamplesOut)
	assert.Equal(t, int64(700), results[1].Stats.SamplesOut)

	par, data := readPayload(t, results[1].Output)
	assert.Equal(t, "pcm_s32le", par.CodecName)
	assert.Len(t, data, 700*2*4)
}

func TestRunFailures(t *testing.T) {
	dir := t.TempDir()
	_, err := RunAll(context.Background(), []string{filepath.Join(dir, "missing.wav")}, Options{Jobs: 1, FrameSize: 64, SampleFmt: audio.SampleFmtNone}, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)

	ts := filepath.Join(dir, "clip.ts")
	require.NoError(t, os.WriteFile(ts, mediatest.VideoAudioTS(320, 240, 48000, 2), 0o644))
	_, err = Run(context.Background(), ts, filepath.Join(dir, "clip.wav"), Options{FrameSize: 64, SampleFmt: audio.SampleFmtNone}, nil)
	assert.ErrorIs(t, err, ErrNoAudio)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, writeWAV(t, dir, "c.wav", 100), filepath.Join(dir, "c-out.wav"), Options{FrameSize: 64, SampleFmt: audio.SampleFmtNone}, nil)
	assert.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "song.wav"), OutputPath(filepath.Join("music", "song.flac"), "out"))
	assert.Equal(t, filepath.Join("music", "song.wav"), OutputPath(filepath.Join("music", "song.ts"), ""))
	assert.Equal(t, filepath.Join("music", "song-transcoded.wav"), OutputPath(filepath.Join("music", "song.wav"), ""))
	assert.Equal(t, filepath.Join("music", "song-transcoded.wav"), OutputPath(filepath.Join("music", "song.wav"), "music"))
}

func TestRunAllKeepsInputInPlace(t *testing.T) {
	dir := t.TempDir()
	input := writeWAV(t, dir, "song.wav", 5000)
	before, err := os.ReadFile(input)
	require.NoError(t, err)

	results, err := RunAll(context.Background(), []string{input}, Options{
		OutputDir: dir,
		FrameSize: 1024,
		SampleFmt: audio.SampleFmtNone,
		Jobs:      1,
	}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join(dir, "song-transcoded.wav"), results[0].Output)
	assert.Equal(t, int64(5000), results[0].Stats.SamplesOut)

	after, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRunRefusesSameFile(t *testing.T) {
	dir := t.TempDir()
	input := writeWAV(t, dir, "song.wav", 100)
	_, err := Run(context.Background(), input, input, Options{FrameSize: 64, SampleFmt: audio.SampleFmtNone}, nil)
	assert.ErrorIs(t, err, ErrSameFile)

	data, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, mediatest.WAV(8000, 2, 100, "tone"), data)
}

func TestRunAllRejectsSharedOutput(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"a", "b", "out"} {
		require.NoError(t, os.Mkdir(filepath.Join(dir, sub), 0o755))
	}
	inputs := []string{
		writeWAV(t, filepath.Join(dir, "a"), "x.wav", 100),
		writeWAV(t, filepath.Join(dir, "b"), "x.wav", 100),
	}
	_, err := RunAll(context.Background(), inputs, Options{
		OutputDir: filepath.Join(dir, "out"),
		FrameSize: 64,
		SampleFmt: audio.SampleFmtNone,
		Jobs:      2,
	}, nil)
	assert.ErrorIs(t, err, ErrOutputConflict)

	entries, err := os.ReadDir(filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunFailureLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeWAV(t, dir, "in.wav", 100)
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0o755))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, input, filepath.Join(outDir, "in.wav"), Options{FrameSize: 64, SampleFmt: audio.SampleFmtNone}, nil)
	require.Error(t, err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
