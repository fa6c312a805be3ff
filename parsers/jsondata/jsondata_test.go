package jsondata

import (
	"strings"
	"testing"
)

const document = `{
	"content": {
		"genres": {
			"brands": [
				{"name": "first", "channels": 12},
				{"name": "second", "channels": 3}
			]
		},
		"empty": null
	},
	"title": "catalog"
}`

func decode(t *testing.T, s string) Value {
	t.Helper()
	v, err := Decode([]byte(s))
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}
	return v
}

func TestGetChain(t *testing.T) {
	v := decode(t, document)

	tests := []struct {
		name string
		path []string
		want string
	}{
		{"top level", []string{"title"}, "catalog"},
		{"missing top level", []string{"nothing"}, ""},
		{"missing nested", []string{"content", "nothing", "deeper"}, ""},
		{"lookup on null", []string{"content", "empty", "deeper"}, ""},
		{"lookup on string", []string{"title", "deeper"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v
			for _, key := range tt.path {
				got = got.Get(key)
			}
			if got.String() != tt.want {
				t.Errorf("Get chain = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestArray(t *testing.T) {
	v := decode(t, document)

	brands := v.Get("content").Get("genres").Get("brands").Array()
	if len(brands) != 2 {
		t.Fatalf("Array() returned %d elements, want 2", len(brands))
	}
	if got := brands[0].Get("name").String(); got != "first" {
		t.Errorf("first brand name = %q, want %q", got, "first")
	}
	if got := brands[1].Get("channels").Int(); got != 3 {
		t.Errorf("second brand channels = %d, want 3", got)
	}

	if a := v.Get("title").Array(); a != nil {
		t.Errorf("Array() on a string = %v, want nil", a)
	}
	if a := (Value{}).Array(); a != nil {
		t.Errorf("Array() on absent = %v, want nil", a)
	}
}

func TestScalars(t *testing.T) {
	v := decode(t, `{"n": 42, "s": "text", "f": 19.7}`)

	if got := v.Get("n").Int(); got != 42 {
		t.Errorf("Int() = %d, want 42", got)
	}
	if got := v.Get("f").Int(); got != 19 {
		t.Errorf("Int() on float = %d, want 19", got)
	}
	if got := v.Get("s").Int(); got != 0 {
		t.Errorf("Int() on string = %d, want 0", got)
	}
	if got := v.Get("n").String(); got != "" {
		t.Errorf("String() on number = %q, want empty", got)
	}
	if v.Get("missing").Exists() {
		t.Error("Exists() on missing field, want false")
	}
	if !v.Get("n").Exists() {
		t.Error("Exists() on present field, want true")
	}
}

func TestObject(t *testing.T) {
	v := decode(t, `{"_id": {"$oid": "abc"}}`)

	obj, ok := v.Object()
	if !ok {
		t.Fatal("Object() on a document, want ok")
	}
	if _, found := obj["_id"]; !found {
		t.Error("Object() lost the _id key")
	}
	if _, ok := v.Get("_id").Get("$oid").Object(); ok {
		t.Error("Object() on a string, want !ok")
	}
}

func TestDecodeError(t *testing.T) {
	if _, err := Decode([]byte(`{"broken":`)); err == nil {
		t.Error("Decode() on truncated JSON, want error")
	}
	if _, err := DecodeReader(strings.NewReader("not json at all")); err == nil {
		t.Error("DecodeReader() on garbage, want error")
	}
}

func TestDecodeReader(t *testing.T) {
	v, err := DecodeReader(strings.NewReader(`{"channels": [{"name": "A"}]}`))
	if err != nil {
		t.Fatalf("DecodeReader() unexpected error: %v", err)
	}
	channels := v.Get("channels").Array()
	if len(channels) != 1 || channels[0].Get("name").String() != "A" {
		t.Errorf("unexpected channels content: %v", v.Interface())
	}
}
