package internal

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
)

// SimpleKey derives a cache key for the simple strategy: a canonical
// deterministic serialization of the full props bag prefixed with the
// component identity. Map keys are serialized in sorted order, so two
// structurally-equal bags always produce the same key regardless of
// insertion order.
//
// Returns a KEY_DERIVATION error if the bag contains a cyclic structure or a
// value that cannot be serialized (functions, channels).
func SimpleKey(identity string, props PropsBag) (string, error) {
	var sb strings.Builder
	sb.WriteString(identity)
	sb.WriteString("|simple|")
	s := &serializer{seen: make(map[uintptr]bool)}
	if err := s.writeValue(&sb, "", props); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// CanonicalValue returns the canonical serialized form of a single leaf
// value, as used in key composition. Fails on non-serializable values.
func CanonicalValue(path string, v any) (string, error) {
	var sb strings.Builder
	s := &serializer{seen: make(map[uintptr]bool)}
	if err := s.writeValue(&sb, path, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type serializer struct {
	seen map[uintptr]bool
}

func (s *serializer) writeValue(sb *strings.Builder, path string, v any) error {
	switch t := v.(type) {
	case nil:
		sb.WriteString("null")
	case string:
		sb.WriteString(strconv.Quote(t))
	case bool:
		sb.WriteString(strconv.FormatBool(t))
	case int:
		sb.WriteString(strconv.Itoa(t))
	case int64:
		sb.WriteString(strconv.FormatInt(t, 10))
	case float64:
		sb.WriteString(strconv.FormatFloat(t, 'f', -1, 64))
	case float32:
		sb.WriteString(strconv.FormatFloat(float64(t), 'f', -1, 32))
	case map[string]any:
		return s.writeMap(sb, path, t)
	case []any:
		return s.writeSlice(sb, path, t)
	default:
		switch reflect.ValueOf(v).Kind() {
		case reflect.Func, reflect.Chan, reflect.UnsafePointer:
			return NewKeyDerivationError(path, "props contain a non-serializable value", nil)
		}
		// Typed values fall through to encoding/json, which serializes
		// struct fields in declaration order and reports cycles.
		data, err := json.Marshal(v)
		if err != nil {
			return NewKeyDerivationError(path, "props contain a non-serializable value", err)
		}
		sb.Write(data)
	}
	return nil
}

func (s *serializer) writeMap(sb *strings.Builder, path string, m map[string]any) error {
	if len(m) > 0 {
		ptr := reflect.ValueOf(m).Pointer()
		if s.seen[ptr] {
			return NewKeyDerivationError(path, "cyclic structure in props", nil)
		}
		s.seen[ptr] = true
		defer delete(s.seen, ptr)
	}
	sb.WriteByte('{')
	for i, k := range sortedKeys(m) {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Quote(k))
		sb.WriteByte(':')
		p := k
		if path != "" {
			p = path + "." + k
		}
		if err := s.writeValue(sb, p, m[k]); err != nil {
			return err
		}
	}
	sb.WriteByte('}')
	return nil
}

func (s *serializer) writeSlice(sb *strings.Builder, path string, sl []any) error {
	if len(sl) > 0 {
		ptr := reflect.ValueOf(sl).Pointer()
		if s.seen[ptr] {
			return NewKeyDerivationError(path, "cyclic structure in props", nil)
		}
		s.seen[ptr] = true
		defer delete(s.seen, ptr)
	}
	sb.WriteByte('[')
	for i, el := range sl {
		if i > 0 {
			sb.WriteByte(',')
		}
		if err := s.writeValue(sb, path+"["+strconv.Itoa(i)+"]", el); err != nil {
			return err
		}
	}
	sb.WriteByte(']')
	return nil
}
