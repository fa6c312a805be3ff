package accuradio

import (
	"context"
	"fmt"
	"sort"

	"github.com/audiosrc/accuradio/parsers/jsondata"
)

// brandFields is the exact field set a brand entry of the preloaded state
// carries. A different set means the upstream catalog shape changed and the
// iteration stops rather than guessing.
var brandFields = []string{"channels", "_id", "canonical_url", "param", "name"}

// brand is one catalog grouping of the preloaded state.
type brand struct {
	channels     int
	id           jsondata.Value
	canonicalURL string
	param        string
	name         string
}

// newBrand builds a brand from one entry of the preloaded state, matching
// fields by name.
func newBrand(v jsondata.Value) (brand, error) {
	obj, ok := v.Object()
	if !ok {
		return brand{}, fmt.Errorf("malformed brand entry: not an object")
	}
	if len(obj) != len(brandFields) {
		return brand{}, fmt.Errorf("malformed brand entry: fields %v", fieldNames(obj))
	}
	for _, f := range brandFields {
		if _, present := obj[f]; !present {
			return brand{}, fmt.Errorf("malformed brand entry: missing field %q, got %v", f, fieldNames(obj))
		}
	}
	return brand{
		channels:     v.Get("channels").Int(),
		id:           v.Get("_id"),
		canonicalURL: v.Get("canonical_url").String(),
		param:        v.Get("param").String(),
		name:         v.Get("name").String(),
	}, nil
}

// oid returns the canonical object id of the brand, empty when the identifier
// does not carry one.
func (b brand) oid() string {
	return b.id.Get("$oid").String()
}

func fieldNames(obj map[string]any) []string {
	names := make([]string, 0, len(obj))
	for k := range obj {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// brands returns an iterator over the brand entries of the preloaded state.
// The home page is fetched on the first pull.
func (s *Service) brands(ctx context.Context) *brandIterator {
	return &brandIterator{ctx: ctx, s: s}
}

// brandIterator constructs brands one at a time, when the iteration reaches
// them, so a malformed entry only surfaces once the entries before it have
// been consumed.
type brandIterator struct {
	ctx     context.Context
	s       *Service
	started bool
	entries []jsondata.Value
	idx     int
	cur     brand
	err     error
}

func (it *brandIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if !it.started {
		it.started = true
		data, err := it.s.data(it.ctx)
		if err != nil {
			it.err = err
			return false
		}
		it.entries = data.Get("content").Get("genres").Get("brands").Array()
	}
	if it.idx >= len(it.entries) {
		return false
	}
	b, err := newBrand(it.entries[it.idx])
	it.idx++
	if err != nil {
		it.err = err
		return false
	}
	it.cur = b
	return true
}

func (it *brandIterator) Brand() brand { return it.cur }

func (it *brandIterator) Err() error { return it.err }
