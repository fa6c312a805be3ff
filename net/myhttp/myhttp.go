// Package myhttp provides the HTTP client shared by the catalog adapters.
// It carries a common cookie jar and user agent string across requests.
package myhttp

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"

	"github.com/sirupsen/logrus"
)

// DefaultClient is the client used when an adapter is not given its own.
var DefaultClient = NewClient()

// UserAgent default
const UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Ubuntu Chromium/66.0.3359.181 Chrome/66.0.3359.181 Safari/537.36"

// Client is the classic http client with a cookie jar and a given user agent string
type Client struct {
	*http.Client
	userAgent string
	log       logrus.FieldLogger
	Jar       *cookiejar.Jar
}

// WithHTTPClient is configuration function to replace the underlying
// http.Client, bringing the host's timeout and transport policy
func WithHTTPClient(hc *http.Client) func(c *Client) {
	return func(c *Client) {
		if hc != nil {
			c.Client = hc
		}
	}
}

// WithCookieJar is configuration function to provide a cookie jar to the client
func WithCookieJar(cj *cookiejar.Jar) func(c *Client) {
	return func(c *Client) {
		c.Jar = cj
		c.Client.Jar = cj
	}
}

// WithUserAgent is configuration function to give a user agent string to the client
func WithUserAgent(ua string) func(c *Client) {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger is configuration function to route the client diagnostics to l
func WithLogger(l logrus.FieldLogger) func(c *Client) {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient create an HTTP Client and configure it with a set of config functions
func NewClient(conf ...func(c *Client)) *Client {
	l := logrus.New()
	l.SetOutput(io.Discard)
	c := &Client{
		Client:    &http.Client{},
		userAgent: UserAgent,
		log:       l,
	}

	for _, f := range conf {
		f(c)
	}
	return c
}

// StatusError reports a response that came back with a non 200 status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("can't get %q: %s", e.URL, e.Status)
}

// Get establish a GET request and return a reader with the response body.
// Gzipped responses are transparently decompressed. The caller owns the
// returned reader and must close it.
func (c *Client) Get(ctx context.Context, u string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		err = fmt.Errorf("can't create request: %w", err)
		c.log.WithField("url", u).Error(err)
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.Do(req)
	if err != nil {
		err = fmt.Errorf("can't get url: %w", err)
		c.log.WithField("url", u).Error(err)
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		err := &StatusError{URL: u, StatusCode: resp.StatusCode, Status: resp.Status}
		c.log.WithField("url", u).Error(err)
		return nil, err
	}

	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("can't read gzipped body: %w", err)
		}
		return &gzipBody{Reader: gz, body: resp.Body}, nil
	}
	return resp.Body, nil
}

// gzipBody closes the decompressor and the underlying response body together.
type gzipBody struct {
	*gzip.Reader
	body io.Closer
}

func (g *gzipBody) Close() error {
	err := g.Reader.Close()
	if cerr := g.body.Close(); err == nil {
		err = cerr
	}
	return err
}
