package keypager

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

var _encoder = base64.RawURLEncoding

// _tokenSeparator splits payload and signature in signed tokens. It is not
// part of the RawURLEncoding alphabet, so the split is unambiguous.
const _tokenSeparator = "."

// Codec converts cursor payloads into opaque tokens and back.
//
// The zero-key codec produces unsigned tokens: base64 over compact JSON.
// A codec constructed with NewSignedCodec appends an HMAC-SHA256 signature,
// so a token that was tampered with fails to decode instead of silently
// producing a wrong boundary.
//
// Tokens produced by KeysetCursor.String and OffsetCursor.String use the
// package-level unsigned codec; pass a signed codec through Pager.WithCodec
// and build responses via BuildConnection to get signed tokens end to end.
type Codec struct {
	signingKey []byte
}

func NewCodec() *Codec {
	return &Codec{}
}

// NewSignedCodec returns a codec that signs tokens with the given key.
func NewSignedCodec(key []byte) *Codec {
	return &Codec{
		signingKey: key,
	}
}

var _defaultCodec = NewCodec()

func (c *Codec) signed() bool {
	return c != nil && len(c.signingKey) > 0
}

func (c *Codec) sign(payload []byte) []byte {
	mac := hmac.New(sha256.New, c.signingKey)
	mac.Write(payload)

	return mac.Sum(nil)
}

func (c *Codec) encode(payload []byte) string {
	token := _encoder.EncodeToString(payload)
	if c.signed() {
		token += _tokenSeparator + _encoder.EncodeToString(c.sign(payload))
	}

	return token
}

func (c *Codec) decode(token string) ([]byte, error) {
	payloadPart, signaturePart, hasSignature := strings.Cut(token, _tokenSeparator)

	if c.signed() != hasSignature {
		return nil, fmt.Errorf("cursor token signature mismatch")
	}

	payload, err := _encoder.DecodeString(payloadPart)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 encoded cursor: %w", err)
	}

	if hasSignature {
		signature, err := _encoder.DecodeString(signaturePart)
		if err != nil {
			return nil, fmt.Errorf("failed to decode cursor signature: %w", err)
		}

		if !hmac.Equal(signature, c.sign(payload)) {
			return nil, fmt.Errorf("cursor token failed signature verification")
		}
	}

	return payload, nil
}

// EncodeElements encodes keyset cursor elements into an opaque token.
// Empty element lists encode to an empty token, which decodes back to a nil
// cursor (the beginning of the dataset).
func (c *Codec) EncodeElements(elements []CursorElement) string {
	if len(elements) == 0 {
		return ""
	}

	jTok, err := json.Marshal(elements)
	if err != nil {
		panic(fmt.Errorf("cannot marshal cursor value: %w", err))
	}

	var buf bytes.Buffer
	if err = json.Compact(&buf, jTok); err != nil {
		panic(fmt.Errorf("cannot compact cursor value: %w", err))
	}

	return c.encode(buf.Bytes())
}

// DecodeElements decodes an opaque token back into keyset cursor elements.
// Malformed or tampered tokens return an error, never a silent default.
func (c *Codec) DecodeElements(token string) ([]CursorElement, error) {
	if len(token) == 0 {
		return nil, nil
	}

	jsonData, err := c.decode(token)
	if err != nil {
		return nil, err
	}

	var elems []CursorElement
	if err = json.Unmarshal(jsonData, &elems); err != nil {
		return nil, fmt.Errorf("failed to unmarshal json encoded cursor: %w", err)
	}

	return elems, nil
}

// EncodeOffset encodes a numeric offset into an opaque token.
// A zero offset encodes to an empty token.
func (c *Codec) EncodeOffset(offset int) string {
	if offset == 0 {
		return ""
	}

	return c.encode([]byte(strconv.Itoa(offset)))
}

// DecodeOffset decodes an opaque token back into a numeric offset.
func (c *Codec) DecodeOffset(token string) (int, error) {
	if len(token) == 0 {
		return 0, nil
	}

	payload, err := c.decode(token)
	if err != nil {
		return 0, err
	}

	offset, err := strconv.Atoi(string(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to decode cursor offset value: %w", err)
	}

	return offset, nil
}
