package store

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"FlowerGarden/internal/state"
)

// SchemaVersion is the version written into every saved blob.
const SchemaVersion = 1

// TimestampFormat is the ISO-8601 layout used for planted times.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

const pngDataURIPrefix = "data:image/png;base64,"

// ErrMalformed is returned when a blob cannot be decoded.
var ErrMalformed = errors.New("malformed garden data")

type document struct {
	Version int      `json:"version"`
	Flowers []record `json:"flowers"`
}

type record struct {
	ID        recordID `json:"id"`
	Image     string   `json:"image"`
	Timestamp string   `json:"timestamp"`
	Planter   string   `json:"planter,omitempty"`
	Color     string   `json:"color,omitempty"`
}

// recordID accepts both string ids and the numeric millisecond ids written by
// older gardens.
type recordID string

func (id *recordID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = recordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("flower id: %w", err)
	}
	*id = recordID(n.String())
	return nil
}

// Encode serialises g into the versioned blob format.
func Encode(g state.Garden) ([]byte, error) {
	doc := document{Version: SchemaVersion, Flowers: make([]record, 0, g.Len())}
	for _, f := range g.Flowers() {
		doc.Flowers = append(doc.Flowers, record{
			ID:        recordID(f.ID),
			Image:     EncodeDataURI(f.Image),
			Timestamp: f.CreatedAt.UTC().Format(TimestampFormat),
			Planter:   f.Planter,
			Color:     f.Color,
		})
	}
	return json.Marshal(doc)
}

// Decode parses a blob. Both the versioned document and a bare array of
// records are accepted. Records that cannot be decoded, and records reusing
// an id already seen earlier in the blob, are skipped and reported in the
// returned count.
func Decode(data []byte) (state.Garden, int, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return state.Garden{}, 0, fmt.Errorf("%w: empty blob", ErrMalformed)
	}

	var records []record
	if data[0] == '[' {
		if err := json.Unmarshal(data, &records); err != nil {
			return state.Garden{}, 0, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	} else {
		var doc document
		if err := json.Unmarshal(data, &doc); err != nil {
			return state.Garden{}, 0, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if doc.Version < 1 || doc.Version > SchemaVersion {
			return state.Garden{}, 0, fmt.Errorf("%w: unsupported version %d", ErrMalformed, doc.Version)
		}
		records = doc.Flowers
	}

	flowers := make([]state.Flower, 0, len(records))
	seen := make(map[string]bool, len(records))
	skipped := 0
	for _, r := range records {
		f, err := r.flower()
		if err != nil || seen[f.ID] {
			skipped++
			continue
		}
		seen[f.ID] = true
		flowers = append(flowers, f)
	}
	return state.NewGarden(flowers), skipped, nil
}

func (r record) flower() (state.Flower, error) {
	if r.ID == "" {
		return state.Flower{}, errors.New("missing id")
	}
	img, err := DecodeDataURI(r.Image)
	if err != nil {
		return state.Flower{}, err
	}
	ts, err := parseTimestamp(r.Timestamp)
	if err != nil {
		return state.Flower{}, err
	}
	return state.Flower{
		ID:        string(r.ID),
		Image:     img,
		CreatedAt: ts,
		Color:     r.Color,
		Planter:   r.Planter,
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return ts.UTC(), nil
	}
	// Numeric epoch milliseconds.
	ms, nerr := strconv.ParseInt(s, 10, 64)
	if nerr != nil {
		return time.Time{}, fmt.Errorf("timestamp %q: %w", s, err)
	}
	return time.UnixMilli(ms).UTC(), nil
}

// EncodeDataURI wraps PNG bytes in a base64 data URI.
func EncodeDataURI(png []byte) string {
	return pngDataURIPrefix + base64.StdEncoding.EncodeToString(png)
}

// DecodeDataURI extracts the payload of a base64 data URI of any image type.
func DecodeDataURI(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, errors.New("image is not a data URI")
	}
	meta, payload, ok := strings.Cut(uri[len("data:"):], ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, errors.New("image data URI is not base64")
	}
	return base64.StdEncoding.DecodeString(payload)
}
