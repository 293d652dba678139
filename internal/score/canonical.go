package score

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces deterministic snapshot JSON for hashing and
// golden comparison. Identical values always produce identical bytes.
//
// Differences from standard json.Marshal:
//  1. Object keys are sorted
//  2. No HTML escaping (< > & are NOT escaped)
//  3. Strings are NFC normalized
//  4. Floats use shortest round-trip formatting (strconv 'g', -1)
//  5. null is forbidden (returns an error)
//
// Unlike strict RFC 8785, floats are first-class: musical time, pitch and
// amplitude are fractional, so the snapshot format must carry them. The
// shortest round-trip form is deterministic for any given float64.
func MarshalCanonical(v any) ([]byte, error) {
	return marshalCanonical(v)
}

func marshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is forbidden in snapshot JSON")
	case string:
		return marshalCanonicalString(val)
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case int:
		return strconv.AppendInt(nil, int64(val), 10), nil
	case int64:
		return strconv.AppendInt(nil, val, 10), nil
	case float64:
		return marshalCanonicalFloat(val)
	case float32:
		return marshalCanonicalFloat(float64(val))
	case []any:
		return marshalCanonicalArray(val)
	case map[string]any:
		return marshalCanonicalObject(val)
	default:
		return nil, fmt.Errorf("unsupported type for snapshot JSON: %T", v)
	}
}

// marshalCanonicalFloat formats a float using the shortest representation
// that round-trips, which is unique for a given bit pattern. Integral
// values render without a decimal point ("60", not "60.0").
func marshalCanonicalFloat(f float64) ([]byte, error) {
	if f != f || f > maxFinite || f < -maxFinite {
		return nil, fmt.Errorf("non-finite float is forbidden in snapshot JSON: %v", f)
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

const maxFinite = 1.7976931348623157e308

// marshalCanonicalString produces a JSON string with NFC normalization
// and HTML escaping disabled (<, >, & are kept literal).
func marshalCanonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder adds a trailing newline, remove it
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}
	return result, nil
}

func marshalCanonicalArray(arr []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		elemBytes, err := marshalCanonical(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(elemBytes)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalCanonicalObject(obj map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := marshalCanonicalString(k)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := marshalCanonical(obj[k])
		if err != nil {
			return nil, fmt.Errorf("value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Snapshot converts an event to the map form used by MarshalCanonical.
// Meta is included only when non-empty.
func (e Event) Snapshot() map[string]any {
	m := map[string]any{
		"start":   e.Start,
		"dur":     e.Dur,
		"pitch":   e.Pitch,
		"amp":     e.Amp,
		"channel": e.Channel,
	}
	if len(e.Meta) > 0 {
		meta := make(map[string]any, len(e.Meta))
		for k, v := range e.Meta {
			meta[k] = v
		}
		m["meta"] = meta
	}
	return m
}

// SnapshotEvents converts a slice of events to snapshot form, preserving
// order.
func SnapshotEvents(events []Event) []any {
	out := make([]any, len(events))
	for i, ev := range events {
		out[i] = ev.Snapshot()
	}
	return out
}
