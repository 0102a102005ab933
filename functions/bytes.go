package functions

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf16"
)

// supportedCharset normalizes a charset name and reports whether this
// implementation supports it. Go's standard library has first-class
// support for UTF-8; UTF-16 (both endiannesses) and ISO-8859-1/Latin-1
// are implemented directly below since they're the other charsets a
// RecordPath deployment commonly needs for toString/toBytes.
func supportedCharset(charset string) (string, bool) {
	switch strings.ToUpper(strings.ReplaceAll(charset, "_", "-")) {
	case "UTF-8", "UTF8":
		return "UTF-8", true
	case "UTF-16", "UTF16", "UTF-16BE":
		return "UTF-16BE", true
	case "UTF-16LE":
		return "UTF-16LE", true
	case "ISO-8859-1", "LATIN1", "LATIN-1":
		return "ISO-8859-1", true
	case "US-ASCII", "ASCII":
		return "US-ASCII", true
	}
	return "", false
}

// ToStringFn implements toString(bytes, charset) (spec §4.7): decode bytes
// using charset.
func ToStringFn(b []byte, charset string) (string, error) {
	cs, ok := supportedCharset(charset)
	if !ok {
		return "", fmt.Errorf("unknown charset %q", charset)
	}
	switch cs {
	case "UTF-8", "US-ASCII":
		return string(b), nil
	case "ISO-8859-1":
		runes := make([]rune, len(b))
		for i, c := range b {
			runes[i] = rune(c)
		}
		return string(runes), nil
	case "UTF-16BE", "UTF-16LE":
		if len(b)%2 != 0 {
			return "", fmt.Errorf("toString: odd byte length for %s", cs)
		}
		units := make([]uint16, len(b)/2)
		for i := range units {
			if cs == "UTF-16BE" {
				units[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
			} else {
				units[i] = uint16(b[2*i+1])<<8 | uint16(b[2*i])
			}
		}
		return string(utf16.Decode(units)), nil
	}
	return "", fmt.Errorf("unknown charset %q", charset)
}

// ToBytes implements toBytes(s, charset) (spec §4.7): encode s using
// charset.
func ToBytes(s, charset string) ([]byte, error) {
	cs, ok := supportedCharset(charset)
	if !ok {
		return nil, fmt.Errorf("unknown charset %q", charset)
	}
	switch cs {
	case "UTF-8":
		return []byte(s), nil
	case "US-ASCII":
		out := make([]byte, 0, len(s))
		for _, r := range s {
			if r > 127 {
				return nil, fmt.Errorf("toBytes: character %q not representable in US-ASCII", r)
			}
			out = append(out, byte(r))
		}
		return out, nil
	case "ISO-8859-1":
		out := make([]byte, 0, len(s))
		for _, r := range s {
			if r > 255 {
				return nil, fmt.Errorf("toBytes: character %q not representable in ISO-8859-1", r)
			}
			out = append(out, byte(r))
		}
		return out, nil
	case "UTF-16BE", "UTF-16LE":
		units := utf16.Encode([]rune(s))
		out := make([]byte, 0, len(units)*2)
		for _, u := range units {
			if cs == "UTF-16BE" {
				out = append(out, byte(u>>8), byte(u))
			} else {
				out = append(out, byte(u), byte(u>>8))
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown charset %q", charset)
}

// Base64EncodeString and Base64EncodeBytes implement base64Encode's two
// forms: strings encode to a string, bytes encode to bytes (spec §4.7).
func Base64EncodeString(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func Base64EncodeBytes(b []byte) []byte {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(b)))
	base64.StdEncoding.Encode(out, b)
	return out
}

func Base64DecodeString(s string) (string, error) {
	out, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func Base64DecodeBytes(b []byte) ([]byte, error) {
	out := make([]byte, base64.StdEncoding.DecodedLen(len(b)))
	n, err := base64.StdEncoding.Decode(out, b)
	if err != nil {
		return nil, err
	}
	return out[:n], nil
}
