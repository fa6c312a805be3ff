// Package pagestate extracts the preloaded JSON state that server-rendered
// pages embed in a script tag. The blob sits between a site-specific start
// marker and the closing brace of the script element, and once sliced out it
// is plain JSON.
package pagestate

import (
	"fmt"
	"io"
	"strings"

	"github.com/audiosrc/accuradio/parsers/jsondata"
	"github.com/sirupsen/logrus"
)

// EndMarker closes the embedded state in the pages handled here. The final
// brace of the JSON document doubles as the first byte of the marker, so
// extraction puts it back.
const EndMarker = "}</script>"

var logger logrus.FieldLogger = newNopLogger()

func newNopLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// SetLogger routes the package diagnostics to l. A nil l is ignored.
func SetLogger(l logrus.FieldLogger) {
	if l != nil {
		logger = l
	}
}

// MarkerNotFoundError reports that a marker delimiting the embedded state is
// absent from the page.
type MarkerNotFoundError struct {
	Marker string
	Text   string
}

func (e *MarkerNotFoundError) Error() string {
	return fmt.Sprintf("could not find marker %q in text: %s", e.Marker, e.Text)
}

// InvalidDataError reports that the text between the markers is not valid
// JSON. Data carries the offending slice.
type InvalidDataError struct {
	Data string
	Err  error
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("invalid embedded state: %s", e.Data)
}

func (e *InvalidDataError) Unwrap() error { return e.Err }

// Extract returns the embedded state located between the first occurrence of
// startMarker and the following EndMarker, with the closing brace restored.
// When either marker is missing it returns a *MarkerNotFoundError naming the
// one that was not found.
func Extract(text string, startMarker string) (string, error) {
	start := strings.Index(text, startMarker)
	if start < 0 {
		return "", &MarkerNotFoundError{Marker: startMarker, Text: text}
	}
	start += len(startMarker)
	end := strings.Index(text[start:], EndMarker)
	if end < 0 {
		return "", &MarkerNotFoundError{Marker: EndMarker, Text: text}
	}
	return text[start:start+end] + "}", nil
}

// Decode extracts the embedded state and parses it. Marker failures surface
// as *MarkerNotFoundError, parse failures as *InvalidDataError carrying the
// extracted slice.
func Decode(text string, startMarker string) (jsondata.Value, error) {
	data, err := Extract(text, startMarker)
	if err != nil {
		return jsondata.Value{}, err
	}
	v, err := jsondata.Decode([]byte(data))
	if err != nil {
		logger.WithError(err).Error("unable to parse embedded state as json")
		return jsondata.Value{}, &InvalidDataError{Data: data, Err: err}
	}
	return v, nil
}
