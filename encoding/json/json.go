// Copyright 2020 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package json converts between JSON bytes and the resolver's value.Value
// tree. Decode walks encoding/json's token stream and Encode walks the
// Value tree directly, neither going through map[string]any, since Go map
// iteration order is
// randomized and the resolver's ordered Map.Keys must preserve the source
// document's insertion order (spec.md §8: "Key ordering in results equals
// insertion order of surviving keys in the template").
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fpml-lang/fpml-go/internal/core/value"
)

// Decode parses b as JSON and converts it to a Value, preserving object key
// order via encoding/json's token stream (Decoder.Token) instead of
// decoding into map[string]any.
func Decode(b []byte) (value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (value.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("json: unexpected delimiter %q", t)
		}
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return value.Int(n), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return value.Float(f), nil
	case string:
		return value.String(t), nil
	case bool:
		return value.Bool(t), nil
	case nil:
		return value.Null{}, nil
	default:
		return nil, fmt.Errorf("json: unexpected token %T", tok)
	}
}

func decodeObject(dec *json.Decoder) (value.Value, error) {
	m := value.NewMap()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("json: object key is %T, not string", keyTok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
	}
	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeArray(dec *json.Decoder) (value.Value, error) {
	var out value.List
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	// Consume the closing ']'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if out == nil {
		out = value.List{}
	}
	return out, nil
}

// Encode renders v as indented JSON, walking the Value tree directly (not
// through value.ToGo and encoding/json.Marshal) so a *Map's keys come out
// in Map.Keys order rather than encoding/json's own alphabetical
// map[string]any key sort.
func Encode(v value.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v, ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v value.Value, indent string) error {
	switch x := v.(type) {
	case nil, value.Null:
		buf.WriteString("null")
	case value.Bool:
		buf.WriteString(strconv.FormatBool(bool(x)))
	case value.Int:
		buf.WriteString(strconv.FormatInt(int64(x), 10))
	case value.Float:
		buf.WriteString(strconv.FormatFloat(float64(x), 'g', -1, 64))
	case value.String:
		b, err := json.Marshal(string(x))
		if err != nil {
			return err
		}
		buf.Write(b)
	case value.List:
		return encodeList(buf, x, indent)
	case *value.Map:
		return encodeMap(buf, x, indent)
	default:
		if value.IsUndefined(v) {
			// Undefined never survives into an Encode call on a
			// well-formed resolver output, but render it as null rather
			// than panic if it does (e.g. encoding an intermediate value
			// directly for debugging).
			buf.WriteString("null")
			return nil
		}
		return fmt.Errorf("json: unsupported value type %T", v)
	}
	return nil
}

func encodeList(buf *bytes.Buffer, list value.List, indent string) error {
	if len(list) == 0 {
		buf.WriteString("[]")
		return nil
	}
	inner := indent + "  "
	buf.WriteString("[\n")
	for i, e := range list {
		buf.WriteString(inner)
		if err := encodeValue(buf, e, inner); err != nil {
			return err
		}
		if i < len(list)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(indent)
	buf.WriteByte(']')
	return nil
}

func encodeMap(buf *bytes.Buffer, m *value.Map, indent string) error {
	if m.Len() == 0 {
		buf.WriteString("{}")
		return nil
	}
	inner := indent + "  "
	buf.WriteString("{\n")
	for i, k := range m.Keys {
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return err
		}
		buf.WriteString(inner)
		buf.Write(keyJSON)
		buf.WriteString(": ")
		fv, _ := m.Get(k)
		if err := encodeValue(buf, fv, inner); err != nil {
			return err
		}
		if i < len(m.Keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(indent)
	buf.WriteByte('}')
	return nil
}
