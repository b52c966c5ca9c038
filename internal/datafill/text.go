package datafill

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
)

// bytesToText decodes raw payload bytes with the codec's text
// encoding. The second result is false when the decode is lossy, that
// is when re-encoding would not reproduce the original bytes.
func (c *Codec) bytesToText(b []byte) (string, bool) {
	dec, err := c.encoding().NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	back, err := c.encoding().NewEncoder().Bytes(dec)
	if err != nil || !bytes.Equal(back, b) {
		return string(dec), false
	}
	return string(dec), true
}

// textToBytes encodes text back into payload bytes.
func (c *Codec) textToBytes(s string) ([]byte, error) {
	b, err := c.encoding().NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: text not representable in payload encoding: %v", ErrMalformed, err)
	}
	return b, nil
}

// xmlSafe reports whether a string can live as XML element text
// without escaping tricks: valid UTF-8 and no control characters
// besides tab, newline and carriage return.
func xmlSafe(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
		if r == 0x7F {
			return false
		}
	}
	return true
}

// storeText stores payload bytes as element text, falling back to a
// hex dump with a Format marker when the bytes do not decode cleanly.
func (c *Codec) storeText(elem *etree.Element, b []byte) {
	if s, ok := c.bytesToText(b); ok && xmlSafe(s) {
		elem.SetText(s)
		return
	}
	elem.SetText(hex.EncodeToString(b))
	elem.CreateAttr("Format", "hex")
}

// loadText reverses storeText.
func (c *Codec) loadText(elem *etree.Element) ([]byte, error) {
	if elem.SelectAttrValue("Format", "") == "hex" {
		b, err := hex.DecodeString(strings.TrimSpace(elem.Text()))
		if err != nil {
			return nil, fmt.Errorf("%w: bad hex payload: %v", ErrMalformed, err)
		}
		return b, nil
	}
	return c.textToBytes(elem.Text())
}

// parseUintText parses an integer literal the way file exports write
// them, accepting decimal, 0x hex and 0o octal forms.
func parseUintText(text string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(text), 0, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: bad integer %q: %v", ErrMalformed, text, err)
	}
	return v, nil
}

func parseIntText(text string, bits int) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(text), 0, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: bad integer %q: %v", ErrMalformed, text, err)
	}
	return v, nil
}
