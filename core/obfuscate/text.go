package obfuscate

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Tag marks a stored string as ciphertext.
const Tag = "ENC:"

// Text is a content field that holds either plain text or sealed bytes.
// The wire form of sealed text is Tag + base64(cipher).
type Text struct {
	plain  string
	cipher []byte
	sealed bool
}

func Plain(s string) Text { return Text{plain: s} }

func Sealed(cipher []byte) Text {
	c := make([]byte, len(cipher))
	copy(c, cipher)
	return Text{cipher: c, sealed: true}
}

// Parse reads the wire form.
func Parse(s string) (Text, error) {
	if !strings.HasPrefix(s, Tag) {
		return Plain(s), nil
	}
	b, err := base64.StdEncoding.DecodeString(s[len(Tag):])
	if err != nil {
		return Text{}, errors.Wrap(err, "decoding sealed text")
	}
	return Text{cipher: b, sealed: true}, nil
}

func (t Text) IsSealed() bool { return t.sealed }

// IsEmpty reports whether there is nothing to show or seal.
func (t Text) IsEmpty() bool {
	if t.sealed {
		return len(t.cipher) == 0
	}
	return t.plain == ""
}

// Plaintext returns the text and true when t is not sealed.
func (t Text) Plaintext() (string, bool) {
	return t.plain, !t.sealed
}

// Ciphertext returns the sealed bytes and true when t is sealed.
func (t Text) Ciphertext() ([]byte, bool) {
	return t.cipher, t.sealed
}

// String returns the wire form.
func (t Text) String() string {
	if t.sealed {
		return Tag + base64.StdEncoding.EncodeToString(t.cipher)
	}
	return t.plain
}

func (t Text) Equal(o Text) bool {
	return t.String() == o.String()
}

func (t Text) MarshalJSON() ([]byte, error) {
	return marshalString(t.String())
}

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// marshalString encodes s without escaping HTML, content fields are HTML fragments.
func marshalString(s string) ([]byte, error) {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return []byte(strings.TrimSuffix(sb.String(), "\n")), nil
}
