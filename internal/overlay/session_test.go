package overlay

import (
	"context"
	"errors"
	"image/color"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/protractor/internal/maskcache"
	"github.com/iburimskiy/protractor/internal/protractor"
)

type recordingMasker struct {
	mu    sync.Mutex
	masks []*protractor.Silhouette
	err   error
}

func (m *recordingMasker) SetMask(sil *protractor.Silhouette) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.masks = append(m.masks, sil)
	return nil
}

func (m *recordingMasker) sizes() []protractor.RenderSize {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]protractor.RenderSize, len(m.masks))
	for i, sil := range m.masks {
		out[i] = sil.Size
	}
	return out
}

var smallScale = protractor.ScaleOptions{MinSize: 51, MaxSize: 301, Sensitivity: 10}

func newSession(t *testing.T, m Masker, opts ...maskcache.Option) *Session {
	t.Helper()
	cache, err := maskcache.New(maskcache.DefaultCapacity, opts...)
	require.NoError(t, err)
	s, err := New(protractor.Config{
		Span:  protractor.Half,
		Style: protractor.Detailed,
		Size:  protractor.Square(101),
	}, Options{Scale: smallScale, Cache: cache}, m)
	require.NoError(t, err)
	return s
}

func TestApplyPipeline(t *testing.T) {
	m := &recordingMasker{}
	s := newSession(t, m)
	ctx := context.Background()

	f, err := s.Apply(ctx, s.Current())
	require.NoError(t, err)
	assert.Equal(t, protractor.Square(101), f.Config.Size)
	assert.Equal(t, f.Config.Size, f.Silhouette.Size)
	assert.Equal(t, f.Silhouette.Bounds(), f.Image.Bounds())
	assert.Zero(t, f.Image.RGBAAt(0, 0).A, "corners are outside the silhouette")
	assert.Zero(t, f.Image.RGBAAt(50, 100).A, "below the chord is outside the half silhouette")
	assert.NotEmpty(t, f.Scene.Labels)

	f, err = s.Apply(ctx, s.ToggleSpan())
	require.NoError(t, err)
	assert.Equal(t, protractor.Full, f.Silhouette.Span)
	assert.NotZero(t, f.Image.RGBAAt(50, 100).A)

	assert.EqualValues(t, 2, s.Stats().Builds, "toggling the span reuses the precomputed mask")

	latest, err := s.Latest()
	require.NoError(t, err)
	assert.Same(t, f, latest)
	assert.Len(t, m.sizes(), 2)
}

func TestOutOfOrderCompletion(t *testing.T) {
	release := make(chan struct{})
	slow := protractor.Square(131)
	m := &recordingMasker{}
	s := newSession(t, m, maskcache.WithGenerator(func(span protractor.Span, size protractor.RenderSize) (*protractor.Silhouette, error) {
		if size == slow {
			<-release
		}
		return protractor.GenerateSilhouette(span, size)
	}))
	ctx := context.Background()

	first, ok := s.Zoom(3)
	require.True(t, ok)
	require.Equal(t, slow, first.Config.Size)
	second, ok := s.Zoom(3)
	require.True(t, ok)
	require.Equal(t, protractor.Square(161), second.Config.Size)

	done := make(chan *Frame)
	go func() {
		f, err := s.Apply(ctx, first)
		assert.NoError(t, err)
		done <- f
	}()

	f, err := s.Apply(ctx, second)
	require.NoError(t, err)
	require.NotNil(t, f)

	close(release)
	assert.Nil(t, <-done, "the earlier transition finished late and was dropped")

	f, err = s.Latest()
	require.NoError(t, err)
	assert.Equal(t, second.Seq, f.Seq)
	assert.Equal(t, protractor.Square(161), f.Config.Size)
	assert.Equal(t, []protractor.RenderSize{protractor.Square(161)}, m.sizes(), "the stale frame never reaches the window")
}

func TestSubmitBurstCoalesces(t *testing.T) {
	var builds, running, peak atomic.Int64
	cache, err := maskcache.New(maskcache.DefaultCapacity, maskcache.WithGenerator(func(span protractor.Span, size protractor.RenderSize) (*protractor.Silhouette, error) {
		builds.Add(1)
		n := running.Add(1)
		defer running.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		return protractor.GenerateSilhouette(span, size)
	}))
	require.NoError(t, err)

	m := &recordingMasker{}
	s, err := New(protractor.Config{
		Span:  protractor.Half,
		Style: protractor.Minimal,
		Size:  protractor.Square(101),
	}, Options{
		Scale: protractor.ScaleOptions{MinSize: 51, MaxSize: 1001, Sensitivity: 2},
		Cache: cache,
	}, m)
	require.NoError(t, err)

	ctx := context.Background()
	var last protractor.Transition
	for i := 0; i < 40; i++ {
		tr, ok := s.Zoom(1)
		require.True(t, ok)
		s.Submit(ctx, tr)
		last = tr
	}
	s.Wait()

	f, err := s.Latest()
	require.NoError(t, err)
	assert.Equal(t, last.Seq, f.Seq)
	assert.Equal(t, protractor.Square(181), f.Config.Size)

	assert.Less(t, builds.Load(), int64(10), "superseded sizes are not rasterized")
	assert.LessOrEqual(t, peak.Load(), int64(2), "one transition renders at a time")
	sizes := m.sizes()
	require.NotEmpty(t, sizes)
	assert.Equal(t, protractor.Square(181), sizes[len(sizes)-1])
}

func TestRenderFailure(t *testing.T) {
	boom := errors.New("boom")
	m := &recordingMasker{}
	s := newSession(t, m, maskcache.WithGenerator(func(protractor.Span, protractor.RenderSize) (*protractor.Silhouette, error) {
		return nil, boom
	}))

	_, err := s.Apply(context.Background(), s.Current())
	require.ErrorIs(t, err, boom)

	f, err := s.Latest()
	assert.Nil(t, f)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, m.sizes())
}

func TestMaskerFailure(t *testing.T) {
	boom := errors.New("window gone")
	s := newSession(t, &recordingMasker{err: boom})

	_, err := s.Apply(context.Background(), s.Current())
	require.ErrorIs(t, err, boom)
	f, err := s.Latest()
	assert.Nil(t, f)
	assert.ErrorIs(t, err, boom)
}

func TestSetAccent(t *testing.T) {
	s := newSession(t, &recordingMasker{})
	green := color.RGBA{G: 0xff, A: 0xff}

	tr := s.SetAccent(green)
	assert.Equal(t, protractor.StyleChange, tr.Kind)
	assert.False(t, tr.SwapSilhouette)

	f, err := s.Apply(context.Background(), tr)
	require.NoError(t, err)
	for _, l := range f.Scene.Labels {
		if l.HasSecondary {
			assert.Equal(t, green, l.SecondaryColor)
		}
	}
}

func TestNewRejectsNilMasker(t *testing.T) {
	_, err := New(protractor.Config{Span: protractor.Half, Size: protractor.Square(101)}, Options{Scale: smallScale}, nil)
	assert.Error(t, err)
}
