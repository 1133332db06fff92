package engine

import (
	"fmt"
	"net/url"
	"strings"
)

// EngineID is the value of the root segment of every unique id.
const EngineID = "khaos"

const (
	segmentEngine        = "engine"
	segmentSpecification = "specification"
	segmentFeature       = "feature"
	segmentScenario      = "scenario"
)

// Segment is one (type, value) pair of a UniqueID.
type Segment struct {
	Type  string
	Value string
}

// segmentEscaper percent-encodes the characters that delimit segments.
var segmentEscaper = strings.NewReplacer(
	"%", "%25",
	"[", "%5B",
	"]", "%5D",
	":", "%3A",
	"/", "%2F",
)

// String formats the segment as [type:value]. Delimiters inside the type
// or value are percent-encoded.
func (s Segment) String() string {
	return "[" + segmentEscaper.Replace(s.Type) + ":" + segmentEscaper.Replace(s.Value) + "]"
}

// UniqueID identifies a node of the descriptor tree. It is immutable;
// Append returns a new id.
type UniqueID struct {
	segments []Segment
}

// RootID returns the id of the engine descriptor.
func RootID() UniqueID {
	return UniqueID{segments: []Segment{{Type: segmentEngine, Value: EngineID}}}
}

// Append returns the id of a child node.
func (id UniqueID) Append(segmentType, value string) UniqueID {
	segments := make([]Segment, len(id.segments), len(id.segments)+1)
	copy(segments, id.segments)
	return UniqueID{segments: append(segments, Segment{Type: segmentType, Value: value})}
}

// Segments returns a copy of the segments from the root down.
func (id UniqueID) Segments() []Segment {
	out := make([]Segment, len(id.segments))
	copy(out, id.segments)
	return out
}

// Last returns the final segment.
func (id UniqueID) Last() Segment {
	if len(id.segments) == 0 {
		return Segment{}
	}
	return id.segments[len(id.segments)-1]
}

// Equal reports whether both ids have the same segments.
func (id UniqueID) Equal(other UniqueID) bool {
	if len(id.segments) != len(other.segments) {
		return false
	}
	for i := range id.segments {
		if id.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is id or one of its ancestors.
func (id UniqueID) HasPrefix(prefix UniqueID) bool {
	if len(prefix.segments) > len(id.segments) {
		return false
	}
	for i := range prefix.segments {
		if id.segments[i] != prefix.segments[i] {
			return false
		}
	}
	return true
}

// String formats the id as [engine:khaos]/[specification:x]/...
func (id UniqueID) String() string {
	parts := make([]string, len(id.segments))
	for i, s := range id.segments {
		parts[i] = s.String()
	}
	return strings.Join(parts, "/")
}

// MarshalText implements encoding.TextMarshaler
func (id UniqueID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// ParseUniqueID parses the String form of an id.
func ParseUniqueID(s string) (UniqueID, error) {
	if s == "" {
		return UniqueID{}, fmt.Errorf("invalid unique id %q: empty", s)
	}

	var id UniqueID
	for _, part := range strings.Split(s, "/") {
		if len(part) < 2 || part[0] != '[' || part[len(part)-1] != ']' {
			return UniqueID{}, fmt.Errorf("invalid unique id %q: segment %q must be enclosed in []", s, part)
		}
		typ, value, ok := strings.Cut(part[1:len(part)-1], ":")
		if !ok || typ == "" {
			return UniqueID{}, fmt.Errorf("invalid unique id %q: segment %q has no type", s, part)
		}
		seg, err := decodeSegment(typ, value)
		if err != nil {
			return UniqueID{}, fmt.Errorf("invalid unique id %q: %w", s, err)
		}
		id.segments = append(id.segments, seg)
	}

	if id.segments[0].Type != segmentEngine {
		return UniqueID{}, fmt.Errorf("invalid unique id %q: must start with an engine segment", s)
	}
	return id, nil
}

func decodeSegment(typ, value string) (Segment, error) {
	t, err := url.PathUnescape(typ)
	if err != nil {
		return Segment{}, fmt.Errorf("segment type %q: %w", typ, err)
	}
	v, err := url.PathUnescape(value)
	if err != nil {
		return Segment{}, fmt.Errorf("segment value %q: %w", value, err)
	}
	return Segment{Type: t, Value: v}, nil
}
