package keypager

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Codec_Elements_RoundTrip(t *testing.T) {
	elements := []CursorElement{
		{Column: "completed", Value: true, Operator: OperatorGT},
		{Column: "id", Value: float64(42), Operator: OperatorGT},
	}

	tests := []struct {
		name  string
		codec *Codec
	}{
		{"unsigned", NewCodec()},
		{"signed", NewSignedCodec([]byte("0123456789abcdef"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tt.codec.EncodeElements(elements)
			require.NotEmpty(t, token)

			decoded, err := tt.codec.DecodeElements(token)
			require.NoError(t, err)
			require.Equal(t, elements, decoded)
		})
	}
}

func Test_Codec_Offset_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		codec  *Codec
		offset int
	}{
		{"unsigned", NewCodec(), 15},
		{"signed", NewSignedCodec([]byte("key")), 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tt.codec.EncodeOffset(tt.offset)

			got, err := tt.codec.DecodeOffset(token)
			require.NoError(t, err)
			require.Equal(t, tt.offset, got)
		})
	}
}

func Test_Codec_EmptyToken(t *testing.T) {
	codec := NewSignedCodec([]byte("key"))

	require.Empty(t, codec.EncodeElements(nil))
	require.Empty(t, codec.EncodeOffset(0))

	elems, err := codec.DecodeElements("")
	require.NoError(t, err)
	require.Nil(t, elems)

	offset, err := codec.DecodeOffset("")
	require.NoError(t, err)
	require.Zero(t, offset)
}

func Test_Codec_Decode_Malformed(t *testing.T) {
	signer := NewSignedCodec([]byte("0123456789abcdef"))
	signedToken := signer.EncodeElements([]CursorElement{{Column: "id", Value: 1, Operator: OperatorGT}})

	// Flip a character inside the payload part.
	tamperedToken := func() string {
		payload, signature, _ := strings.Cut(signedToken, _tokenSeparator)
		head := []byte(payload)
		if head[0] == 'A' {
			head[0] = 'B'
		} else {
			head[0] = 'A'
		}
		return string(head) + _tokenSeparator + signature
	}()

	tests := []struct {
		name  string
		codec *Codec
		token string
	}{
		{"invalid base64", NewCodec(), "%%%not-base64%%%"},
		{"valid base64 invalid json", NewCodec(), _encoder.EncodeToString([]byte("not json"))},
		{"tampered payload fails verification", signer, tamperedToken},
		{"signed token on unsigned codec", NewCodec(), signedToken},
		{"unsigned token on signed codec", signer, NewCodec().EncodeElements([]CursorElement{{Column: "id", Value: 1, Operator: OperatorGT}})},
		{"wrong key", NewSignedCodec([]byte("other-key")), signedToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.codec.DecodeElements(tt.token)
			require.Error(t, err)
		})
	}
}

func Test_Codec_DecodeOffset_Malformed(t *testing.T) {
	_, err := NewCodec().DecodeOffset(_encoder.EncodeToString([]byte("not a number")))
	require.Error(t, err)
}
