package models

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-json"
)

// decode copies a generic tree into a typed model. Keys are matched against
// the json tags so the on-disk names and the API names stay the same.
func decode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Squash:  true,
		Result:  out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// decodeExtra decodes like decode and returns the top-level keys of input
// that out has no field for, or nil when every key was used.
func decodeExtra(input map[string]any, out any) (map[string]any, error) {
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:  "json",
		Squash:   true,
		Result:   out,
		Metadata: &md,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(input); err != nil {
		return nil, err
	}

	var extra map[string]any
	for _, k := range md.Unused {
		v, ok := input[k]
		if !ok {
			continue
		}
		if extra == nil {
			extra = make(map[string]any, len(md.Unused))
		}
		extra[k] = v
	}
	return extra, nil
}

// marshalWithExtra encodes v and appends the extra attributes that v does
// not already carry.
func marshalWithExtra(v any, extra map[string]any) ([]byte, error) {
	out, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return out, err
	}

	var known map[string]json.RawMessage
	if err := json.Unmarshal(out, &known); err != nil {
		return nil, err
	}
	add := make(map[string]any, len(extra))
	for k, val := range extra {
		if _, ok := known[k]; !ok {
			add[k] = val
		}
	}
	if len(add) == 0 {
		return out, nil
	}
	tail, err := json.Marshal(add)
	if err != nil {
		return nil, err
	}
	if len(known) == 0 {
		return tail, nil
	}

	buf := make([]byte, 0, len(out)+len(tail))
	buf = append(buf, out[:len(out)-1]...)
	buf = append(buf, ',')
	return append(buf, tail[1:]...), nil
}

// withoutKeys returns a shallow copy of m without the given keys.
func withoutKeys(m map[string]any, keys ...string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

func asMapping(v any, what string) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a mapping, got %T", what, v)
	}
	return m, nil
}
