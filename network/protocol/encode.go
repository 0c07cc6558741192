/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package protocol

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

func (p *NetworkProtocol) unmarshall(val []byte) error {
	*p = parseString(string(val))
	return nil
}

// MarshalJSON encodes p as its lowercase string form.
func (p NetworkProtocol) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts a quoted protocol name; an unrecognized name decodes
// to NetworkEmpty rather than erroring.
func (p *NetworkProtocol) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return p.unmarshall(b)
	}
	return p.unmarshall([]byte(s))
}

// MarshalYAML encodes p as its lowercase string form.
func (p NetworkProtocol) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// UnmarshalYAML accepts a scalar protocol name.
func (p *NetworkProtocol) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		return nil
	}
	return p.unmarshall([]byte(value.Value))
}

// MarshalTOML encodes p as its lowercase string form.
func (p NetworkProtocol) MarshalTOML() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalTOML accepts a string or []byte value; anything else is rejected.
func (p *NetworkProtocol) UnmarshalTOML(i interface{}) error {
	if b, ok := i.([]byte); ok {
		return p.unmarshall(b)
	}
	if s, ok := i.(string); ok {
		return p.unmarshall([]byte(s))
	}
	return fmt.Errorf("network protocol: value not in valid format")
}

// MarshalText encodes p as its lowercase string form.
func (p NetworkProtocol) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText accepts a (possibly quoted) protocol name.
func (p *NetworkProtocol) UnmarshalText(b []byte) error {
	return p.unmarshall(b)
}

// MarshalCBOR encodes p as its lowercase string form, written as raw bytes
// rather than a length-prefixed CBOR text item: socket/config callers pass
// these bytes straight through to Parse, and this keeps that roundtrip
// byte-for-byte with MarshalText.
func (p NetworkProtocol) MarshalCBOR() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalCBOR accepts a (possibly quoted) protocol name.
func (p *NetworkProtocol) UnmarshalCBOR(b []byte) error {
	return p.unmarshall(b)
}
