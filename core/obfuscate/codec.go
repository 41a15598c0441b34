// Package obfuscate hides locked lesson content from casual inspection.
//
// The cipher is a repeating-key XOR framed in base64. Anyone holding the key,
// which ships with the front end, can reverse it: it is obfuscation, not encryption.
package obfuscate

import (
	"encoding/base64"

	"github.com/pkg/errors"
)

// DefaultKey is the key the published front end decodes with.
const DefaultKey = "pinegood888"

var (
	ErrEmptyKey         = errors.New("obfuscate: empty key")
	ErrDoubleEncryption = errors.New("obfuscate: text is already sealed")
)

type Codec struct {
	key []byte
}

func New(key string) (*Codec, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	return &Codec{key: []byte(key)}, nil
}

// XOR applies the cycled key to b. It is its own inverse.
func (c *Codec) XOR(b []byte) []byte {
	if len(b) == 0 {
		return []byte{}
	}
	out := make([]byte, len(b))
	for i := range b {
		out[i] = b[i] ^ c.key[i%len(c.key)]
	}
	return out
}

// Encode returns base64(XOR(utf8(s))). The empty string encodes to "".
func (c *Codec) Encode(s string) string {
	if s == "" {
		return ""
	}
	return base64.StdEncoding.EncodeToString(c.XOR([]byte(s)))
}

// Decode reverses Encode.
func (c *Codec) Decode(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", errors.Wrap(err, "decoding base64")
	}
	return string(c.XOR(b)), nil
}

// Seal turns plain text into ciphertext. Sealed text is refused with ErrDoubleEncryption.
func (c *Codec) Seal(t Text) (Text, error) {
	if t.sealed {
		return t, ErrDoubleEncryption
	}
	if t.plain == "" {
		return t, nil
	}
	return Sealed(c.XOR([]byte(t.plain))), nil
}

// Open returns the plain form of t.
func (c *Codec) Open(t Text) Text {
	if !t.sealed {
		return t
	}
	return Plain(string(c.XOR(t.cipher)))
}
