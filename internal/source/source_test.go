package source

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gabrielcapilla/musify/internal/domain"
	"github.com/gabrielcapilla/musify/internal/metrics"
	"github.com/gabrielcapilla/musify/internal/ports"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTimeout = 2 * time.Second
	testTick    = 5 * time.Millisecond
)

type fakeFetcher struct {
	mu      sync.Mutex
	results [][]domain.Song
	calls   int
	block   chan struct{}
}

func (f *fakeFetcher) FetchAll(context.Context) []domain.Song {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	if i >= len(f.results) {
		return []domain.Song{}
	}
	return f.results[i]
}

func song(id string) domain.Song {
	return domain.Song{
		MediaID:  id,
		Title:    "Title " + id,
		Subtitle: "Artist " + id,
		ImageURL: "http://img/" + id + ".jpg",
		SongURL:  "http://audio/" + id + ".mp3",
	}
}

type uriSource string

func (u uriSource) URI() string { return string(u) }

type recordingFactory struct{ uris []string }

func (f *recordingFactory) CreateMediaSource(uri string) ports.MediaSource {
	f.uris = append(f.uris, uri)
	return uriSource(uri)
}

func mediaIDs(songs []Metadata) []string {
	ids := make([]string, len(songs))
	for i, s := range songs {
		ids[i] = s.MediaID
	}
	return ids
}

func TestMusicSource_LoadThreeSongs(t *testing.T) {
	fetcher := &fakeFetcher{results: [][]domain.Song{{song("a"), song("b"), song("c")}}}
	m := metrics.New()
	src := New(fetcher, m)
	require.Equal(t, StateCreated, src.State())

	src.Load(context.Background())

	require.Equal(t, StateInitialized, src.State())
	require.Equal(t, []string{"a", "b", "c"}, mediaIDs(src.Songs()))

	items := src.MediaItems()
	require.Len(t, items, 3)
	for i, id := range []string{"a", "b", "c"} {
		assert.Equal(t, id, items[i].MediaID)
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(m.SongsLoaded))
}

func TestMusicSource_MetadataMapping(t *testing.T) {
	fetcher := &fakeFetcher{results: [][]domain.Song{{song("a")}}}
	src := New(fetcher, nil)
	src.Load(context.Background())

	require.Equal(t, []Metadata{{
		Artist:             "Artist a",
		MediaID:            "a",
		Title:              "Title a",
		DisplayTitle:       "Title a",
		DisplayIconURI:     "http://img/a.jpg",
		MediaURI:           "http://audio/a.mp3",
		AlbumArtURI:        "http://img/a.jpg",
		DisplaySubtitle:    "Artist a",
		DisplayDescription: "Artist a",
	}}, src.Songs())

	require.Equal(t, []domain.MediaItem{{
		MediaURI: "http://audio/a.mp3",
		Title:    "Title a",
		Subtitle: "Artist a",
		MediaID:  "a",
		IconURI:  "http://img/a.jpg",
	}}, src.MediaItems())
}

func TestMusicSource_EmptyFetchStillInitializes(t *testing.T) {
	src := New(&fakeFetcher{}, nil)
	src.Load(context.Background())

	require.Equal(t, StateInitialized, src.State())
	require.Empty(t, src.Songs())
	require.Empty(t, src.MediaItems())
}

func TestMusicSource_ReloadReplacesSongs(t *testing.T) {
	fetcher := &fakeFetcher{results: [][]domain.Song{
		{song("a"), song("b"), song("c")},
		{song("d")},
	}}
	src := New(fetcher, nil)

	src.Load(context.Background())
	src.Load(context.Background())

	require.Equal(t, []string{"d"}, mediaIDs(src.Songs()))
}

func TestMusicSource_WhenReadyBeforeAndAfterLoad(t *testing.T) {
	src := New(&fakeFetcher{results: [][]domain.Song{{song("a")}}}, nil)

	var early []bool
	answered := src.WhenReady(func(ok bool) { early = append(early, ok) })
	require.False(t, answered)
	require.Empty(t, early, "a queued listener must not fire before load")

	src.Load(context.Background())
	require.Equal(t, []bool{true}, early)

	var late []bool
	answered = src.WhenReady(func(ok bool) { late = append(late, ok) })
	require.True(t, answered)
	require.Equal(t, []bool{true}, late, "a late listener fires within the call")

	src.Load(context.Background())
	require.Equal(t, []bool{true}, early, "listeners fire at most once")
	require.Equal(t, []bool{true}, late)
}

func TestMusicSource_ListenersFireInOrder(t *testing.T) {
	src := New(&fakeFetcher{}, nil)

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		require.False(t, src.WhenReady(func(ok bool) {
			require.True(t, ok)
			order = append(order, i)
		}))
	}
	src.setState(StateInitializing)
	require.Empty(t, order)

	src.Load(context.Background())
	require.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestMusicSource_WhenReadyWhileInitializing(t *testing.T) {
	fetcher := &fakeFetcher{results: [][]domain.Song{{song("a")}}, block: make(chan struct{})}
	src := New(fetcher, nil)

	done := make(chan struct{})
	go func() {
		src.Load(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool { return src.State() == StateInitializing }, testTimeout, testTick)

	got := make(chan bool, 1)
	require.False(t, src.WhenReady(func(ok bool) { got <- ok }))

	close(fetcher.block)
	<-done
	require.True(t, <-got)
}

func TestMusicSource_ErrorStateNotifiesFalse(t *testing.T) {
	src := New(&fakeFetcher{}, nil)

	var results []bool
	src.WhenReady(func(ok bool) { results = append(results, ok) })
	src.setState(StateError)

	require.Equal(t, []bool{false}, results)
	require.True(t, src.WhenReady(func(ok bool) { results = append(results, ok) }))
	require.Equal(t, []bool{false, false}, results)
}

func TestMusicSource_ListenerMayCallBack(t *testing.T) {
	src := New(&fakeFetcher{results: [][]domain.Song{{song("a")}}}, nil)

	var nested []bool
	src.WhenReady(func(bool) {
		src.WhenReady(func(ok bool) { nested = append(nested, ok) })
		require.Len(t, src.Songs(), 1)
	})
	src.Load(context.Background())

	require.Equal(t, []bool{true}, nested)
}

func TestMusicSource_ConcurrentWhenReadyLosesNothing(t *testing.T) {
	src := New(&fakeFetcher{results: [][]domain.Song{{song("a")}}}, nil)

	const waiters = 200
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		calls int
	)
	start := make(chan struct{})
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			src.WhenReady(func(ok bool) {
				mu.Lock()
				defer mu.Unlock()
				if ok {
					calls++
				}
			})
		}()
	}

	loaded := make(chan struct{})
	go func() {
		<-start
		src.Load(context.Background())
		close(loaded)
	}()

	close(start)
	wg.Wait()
	<-loaded

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, waiters, calls)
}

func TestMusicSource_ConcatenatingSource(t *testing.T) {
	src := New(&fakeFetcher{results: [][]domain.Song{{song("a"), song("b"), song("c")}}}, nil)
	src.Load(context.Background())

	factory := &recordingFactory{}
	concat := src.ConcatenatingSource(factory)

	want := []string{"http://audio/a.mp3", "http://audio/b.mp3", "http://audio/c.mp3"}
	require.Equal(t, want, factory.uris)
	require.Equal(t, 3, concat.Len())
	for i, s := range concat.Sources() {
		assert.Equal(t, want[i], s.URI())
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "created", StateCreated.String())
	assert.Equal(t, "initializing", StateInitializing.String())
	assert.Equal(t, "initialized", StateInitialized.String())
	assert.Equal(t, "error", StateError.String())
	assert.False(t, StateInitializing.Terminal())
	assert.True(t, StateError.Terminal())
}
