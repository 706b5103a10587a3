// Package topology defines the event stream that grows a layout: a
// sequence of (id, parent) pairs in arrival order, plus JSON
// serialization for feeding recorded streams into the engine from
// files. The engine itself never fetches topology; this package is the
// boundary format for whatever does.
package topology

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/webforce/webforce/pkg/errors"
)

// Event is one topology event: a node appearing, optionally connected
// to a previously seen parent. An empty Parent marks a root candidate.
type Event struct {
	ID     string `json:"id"`
	Parent string `json:"parent,omitempty"`
}

// ReadEvents decodes a JSON event array from r. Every event must carry
// a non-empty id; ids must not repeat within the stream. A parent that
// never appears as an id is allowed — the engine treats such nodes as
// unconnected root candidates.
func ReadEvents(r io.Reader) ([]Event, error) {
	var events []Event
	if err := json.NewDecoder(r).Decode(&events); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTopology, err, "decode events")
	}

	seen := make(map[string]bool, len(events))
	for i, ev := range events {
		if err := errors.ValidateNodeID(ev.ID); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTopology, err, "event %d", i)
		}
		if seen[ev.ID] {
			return nil, errors.New(errors.ErrCodeInvalidTopology, "duplicate id %q at event %d", ev.ID, i)
		}
		seen[ev.ID] = true
	}
	return events, nil
}

// ReadEventsFile reads a JSON event file.
func ReadEventsFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadEvents(f)
}

// WriteEvents writes events as pretty-printed JSON.
func WriteEvents(events []Event, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(events); err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	return nil
}
