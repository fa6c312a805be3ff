// Package accuradio exposes the AccuRadio web radio catalog as an audio
// service. The site embeds its whole catalog as a preloaded JSON state in the
// home page, so the service scrapes that state, walks the brands it lists and
// fetches the channel listing of each brand from the genre endpoint.
package accuradio

import (
	"context"
	"fmt"
	"io"

	"github.com/audiosrc/accuradio/audio"
	"github.com/audiosrc/accuradio/net/myhttp"
	"github.com/audiosrc/accuradio/parsers/jsondata"
	"github.com/audiosrc/accuradio/parsers/pagestate"
	"github.com/sirupsen/logrus"
)

// Name of the service in the audio registry.
const Name = "accuradio"

// accuradioURL is the home page carrying the preloaded state.
const accuradioURL = "https://www.accuradio.com"

// StartMarker opens the preloaded state embedded in the home page.
const StartMarker = "__PRELOADED_STATE__ ="

type getter interface {
	Get(ctx context.Context, u string) (io.ReadCloser, error)
}

// Service implements the audio service contract for AccuRadio.
type Service struct {
	getter  getter
	baseURL string
	log     logrus.FieldLogger
}

var _ audio.Service = (*Service)(nil)

// init registers the AccuRadio service
func init() {
	audio.Register(New())
}

// New creates an AccuRadio service and configures it with a set of config
// functions.
func New(conf ...func(s *Service)) *Service {
	l := logrus.New()
	l.SetOutput(io.Discard)
	s := &Service{
		getter:  myhttp.DefaultClient,
		baseURL: accuradioURL,
		log:     l,
	}
	for _, f := range conf {
		f(s)
	}
	return s
}

// WithGetter replaces the default HTTP getter. Used in tests.
func WithGetter(g getter) func(s *Service) {
	return func(s *Service) {
		if g != nil {
			s.getter = g
		}
	}
}

// WithBaseURL points the service at another host. Used in tests.
func WithBaseURL(u string) func(s *Service) {
	return func(s *Service) {
		if u != "" {
			s.baseURL = u
		}
	}
}

// WithLogger routes the service diagnostics to l.
func WithLogger(l logrus.FieldLogger) func(s *Service) {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// Name returns the name of the service.
func (s *Service) Name() string { return Name }

// Channels returns an iterator over every channel of the catalog. The home
// page is fetched on the first pull and each brand's listing is fetched when
// the iteration reaches it, so abandoning the iterator early skips the
// remaining requests.
func (s *Service) Channels(ctx context.Context) audio.ChannelIterator {
	return &channelIterator{ctx: ctx, s: s, brands: s.brands(ctx)}
}

// ChannelByID scans the catalog for the channel carrying the given
// identifier. The scan re-fetches the catalog, nothing is indexed or cached.
func (s *Service) ChannelByID(ctx context.Context, id string) (audio.Channel, error) {
	it := s.Channels(ctx)
	for it.Next() {
		c := it.Channel()
		if c.ID() == id {
			return c, nil
		}
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return nil, audio.ErrChannelNotFound
}

// data fetches the home page and decodes the preloaded state embedded in it.
func (s *Service) data(ctx context.Context) (jsondata.Value, error) {
	s.log.WithField("url", s.baseURL).Debug("fetching home page")
	r, err := s.getter.Get(ctx, s.baseURL)
	if err != nil {
		return jsondata.Value{}, err
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		return jsondata.Value{}, err
	}
	return pagestate.Decode(string(b), StartMarker)
}

// genreChannels fetches the channel listing of one brand.
func (s *Service) genreChannels(ctx context.Context, b brand) ([]jsondata.Value, error) {
	u := fmt.Sprintf("%s/c/m/json/genre/?param=%s", s.baseURL, b.param)
	s.log.WithFields(logrus.Fields{"url": u, "brand": b.name}).Debug("fetching brand channels")
	r, err := s.getter.Get(ctx, u)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	v, err := jsondata.DecodeReader(r)
	if err != nil {
		return nil, err
	}
	return v.Get("channels").Array(), nil
}

// channelIterator composes over the brand sequence: when the channels of the
// current brand are consumed it advances to the next brand and fetches its
// listing.
type channelIterator struct {
	ctx      context.Context
	s        *Service
	brands   *brandIterator
	channels []jsondata.Value
	chanIdx  int
	cur      *Channel
	err      error
}

func (it *channelIterator) Next() bool {
	if it.err != nil {
		return false
	}
	for {
		if it.chanIdx < len(it.channels) {
			it.cur = &Channel{s: it.s, data: it.channels[it.chanIdx]}
			it.chanIdx++
			return true
		}
		if !it.brands.Next() {
			it.err = it.brands.Err()
			return false
		}
		channels, err := it.s.genreChannels(it.ctx, it.brands.Brand())
		if err != nil {
			it.err = err
			return false
		}
		it.channels = channels
		it.chanIdx = 0
	}
}

func (it *channelIterator) Channel() audio.Channel {
	if it.cur == nil {
		return nil
	}
	return it.cur
}

func (it *channelIterator) Err() error { return it.err }
