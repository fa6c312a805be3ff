// Package audio defines the contract between the application and the audio
// catalog services. A service exposes the channels of a web radio site and
// resolves their media streams on demand.
package audio

import (
	"context"
	"errors"
)

// ErrChannelNotFound is returned when a service is asked for a channel
// identifier it does not carry.
var ErrChannelNotFound = errors.New("channel not found")

// Channel is a playable entry of a service's catalog. Projections are cheap
// accessors over data fetched beforehand, MediaURI alone may reach the
// network.
type Channel interface {
	// ID returns the service wide identifier of the channel.
	ID() string
	// Name returns the display name of the channel.
	Name() string
	// Description returns the description of the channel, empty when the
	// service has none.
	Description() string
	// Logo returns the URL of the channel artwork, empty when the service
	// has none.
	Logo() string
	// MediaURI resolves the URI of the channel's stream. The result is not
	// durable and should be resolved again for each playback.
	MediaURI(ctx context.Context) (string, error)
}

// ChannelIterator walks a service catalog one channel at a time. The caller
// advances with Next, reads the current entry with Channel and checks Err
// once Next returns false. Abandoning the iterator early is allowed.
type ChannelIterator interface {
	// Next advances to the following channel. It returns false when the
	// catalog is exhausted or an error occurred.
	Next() bool
	// Channel returns the current channel. It is only valid after a
	// successful Next.
	Channel() Channel
	// Err returns the error that interrupted the iteration, if any.
	Err() error
}

// Service exposes the catalog of one audio site.
type Service interface {
	// Name returns the name of the service.
	Name() string
	// Channels returns an iterator over every channel of the catalog.
	Channels(ctx context.Context) ChannelIterator
	// ChannelByID returns the channel carrying the given identifier, or
	// ErrChannelNotFound.
	ChannelByID(ctx context.Context, id string) (Channel, error)
}

// services holds the registered services. Registration happens in package
// init functions, before any concurrent access.
var services = map[string]Service{}

// Register is called by a service's init to make it available to the
// application.
func Register(s Service) {
	services[s.Name()] = s
}

// Services returns the registered services.
func Services() map[string]Service {
	return services
}

// Lookup returns the registered service with the given name.
func Lookup(name string) (Service, bool) {
	s, ok := services[name]
	return s, ok
}
