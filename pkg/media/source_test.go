package media

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var pixel = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0xfe}

func TestDecodeDataURI_PrefixOptional(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(pixel)

	bare, mime, err := DecodeDataURI(encoded)
	require.NoError(t, err)
	require.Empty(t, mime)
	require.Equal(t, pixel, bare)

	for _, prefix := range []string{
		"data:image/jpeg;base64,",
		"data:image/png;charset=utf-8;base64,",
		"DATA:image/jpeg;BASE64,",
		"data:;base64,",
	} {
		withPrefix, _, err := DecodeDataURI(prefix + encoded)
		require.NoError(t, err, prefix)
		require.Equal(t, bare, withPrefix, prefix)
	}
}

func TestDecodeDataURI_Mime(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(pixel)

	_, mime, err := DecodeDataURI("data:image/PNG;base64," + encoded)
	require.NoError(t, err)
	require.Equal(t, "image/png", mime)
}

func TestDecodeDataURI_Lenient(t *testing.T) {
	data := append(pixel, 0xfb, 0xff)

	wrapped := base64.StdEncoding.EncodeToString(data)
	wrapped = wrapped[:8] + "\n" + wrapped[8:] + "\r\n"
	got, _, err := DecodeDataURI("  " + wrapped)
	require.NoError(t, err)
	require.Equal(t, data, got)

	got, _, err = DecodeDataURI(base64.RawStdEncoding.EncodeToString(data))
	require.NoError(t, err)
	require.Equal(t, data, got)

	got, _, err = DecodeDataURI(base64.URLEncoding.EncodeToString(data))
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestDecodeDataURI_Invalid(t *testing.T) {
	for _, input := range []string{
		"",
		"   ",
		"data:image/jpeg;base64,",
		"data:image/jpeg;base64",
		"data:text/plain,hello",
		"not base64 at all!",
		strings.Repeat("*", 12),
	} {
		_, _, err := DecodeDataURI(input)
		require.Error(t, err, "input %q", input)
	}
}

func TestParseSource(t *testing.T) {
	require.Equal(t, RemoteURI, ParseSource("https://example.com/a.jpg").Kind())
	require.Equal(t, RemoteURI, ParseSource(" HTTP://example.com/a.jpg").Kind())
	require.Equal(t, RemoteURI, ParseSource("file:///tmp/a.jpg").Kind())
	require.Equal(t, DataURI, ParseSource("data:image/jpeg;base64,AAAA").Kind())
	require.Equal(t, DataURI, ParseSource("/9j/4AAQSkZJRg==").Kind())

	require.Equal(t, "bytes", FromBytes(pixel).Kind().String())
	require.Equal(t, "unknown", Source{}.Kind().String())
}

func TestSource_ContentType(t *testing.T) {
	require.Equal(t, "image/png", FromDataURI("data:IMAGE/PNG;base64,AAAA").ContentType())
	require.Equal(t, "", FromDataURI("AAAA").ContentType())
	require.Equal(t, "", FromDataURI("data:image/png,AAAA").ContentType())
	require.Equal(t, "", FromURI("https://example.com/a.png").ContentType())
	require.Equal(t, "", FromBytes(pixel).ContentType())
}
