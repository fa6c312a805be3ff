package accuradio

import (
	"context"
	"fmt"

	"github.com/audiosrc/accuradio/audio"
	"github.com/audiosrc/accuradio/parsers/jsondata"
)

// Channel is one playable AccuRadio station. It keeps the raw listing entry
// and projects the fields out of it on access.
type Channel struct {
	s    *Service
	data jsondata.Value
}

var _ audio.Channel = (*Channel)(nil)

// ID returns the identifier of the channel.
func (c *Channel) ID() string {
	return c.data.Get("_id").Get("$oid").String()
}

// Name returns the name of the channel.
func (c *Channel) Name() string {
	return c.data.Get("name").String()
}

// Description returns the description of the channel.
func (c *Channel) Description() string {
	return c.data.Get("description").String()
}

// Logo returns the empty string, the upstream catalog carries no artwork.
func (c *Channel) Logo() string {
	return ""
}

// MediaURI asks the sweeper endpoint for the channel's stream. The endpoint
// serves the station ad creative, which is the only direct media URI the site
// exposes. The answer is short lived and resolved again on every call.
func (c *Channel) MediaURI(ctx context.Context) (string, error) {
	u := fmt.Sprintf("%s/sweeper/json/fetch/?ucoid=%s", c.s.baseURL, c.ID())
	c.s.log.WithField("url", u).Debug("fetching media uri")
	r, err := c.s.getter.Get(ctx, u)
	if err != nil {
		return "", err
	}
	defer r.Close()
	v, err := jsondata.DecodeReader(r)
	if err != nil {
		return "", err
	}
	return v.Get("creative").Get("audio").String(), nil
}
