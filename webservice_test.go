package accuradio

import (
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	nethttptest "net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/audiosrc/accuradio/net/myhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalogServer serves the fixture catalog over real HTTP and records the
// requests it receives. The home page is served gzipped, like the real site.
func catalogServer(t *testing.T, requests *[]string) *nethttptest.Server {
	t.Helper()
	return nethttptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests = append(*requests, r.URL.String())
		switch r.URL.Path {
		case "/":
			page, err := os.ReadFile(filepath.Join("testdata", "home-single.html"))
			if err != nil {
				t.Errorf("reading home fixture: %v", err)
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Encoding", "gzip")
			gz := gzip.NewWriter(w)
			_, _ = gz.Write(page)
			_ = gz.Close()
		case "/c/m/json/genre/":
			http.ServeFile(w, r, filepath.Join("testdata", "genre-"+r.URL.Query().Get("param")+".json"))
		case "/sweeper/json/fetch/":
			http.ServeFile(w, r, filepath.Join("testdata", "sweeper-"+r.URL.Query().Get("ucoid")+".json"))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestWebServiceCalls(t *testing.T) {
	var requests []string
	srv := catalogServer(t, &requests)
	defer srv.Close()

	client := myhttp.NewClient(myhttp.WithHTTPClient(srv.Client()))
	s := New(WithBaseURL(srv.URL), WithGetter(client))

	it := s.Channels(context.Background())
	require.True(t, it.Next())
	c := it.Channel()
	assert.Equal(t, "1", c.ID())
	assert.Equal(t, "A", c.Name())

	uri, err := c.MediaURI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://www.accuradio.com/static/spots/sweeper9901.mp3", uri)

	assert.False(t, it.Next())
	require.NoError(t, it.Err())

	assert.Equal(t, []string{
		"/",
		"/c/m/json/genre/?param=p",
		"/sweeper/json/fetch/?ucoid=1",
	}, requests)
}

func TestWebServiceStatus(t *testing.T) {
	srv := nethttptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	s := New(WithBaseURL(srv.URL), WithGetter(myhttp.NewClient()))

	it := s.Channels(context.Background())
	assert.False(t, it.Next())

	var statusErr *myhttp.StatusError
	require.ErrorAs(t, it.Err(), &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestWebServiceCancelledContext(t *testing.T) {
	var requests []string
	srv := catalogServer(t, &requests)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(WithBaseURL(srv.URL), WithGetter(myhttp.NewClient()))
	it := s.Channels(ctx)
	assert.False(t, it.Next())
	assert.True(t, errors.Is(it.Err(), context.Canceled))
}
