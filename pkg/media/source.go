package media

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"unicode"

	"github.com/farmlink/backend/pkg/errorx"
)

type SourceKind int

const (
	DataURI SourceKind = iota + 1
	Bytes
	RemoteURI
)

func (k SourceKind) String() string {
	switch k {
	case DataURI:
		return "data-uri"
	case Bytes:
		return "bytes"
	case RemoteURI:
		return "remote-uri"
	default:
		return "unknown"
	}
}

// Source is an image waiting to be uploaded. Build it with FromDataURI,
// FromBytes, FromURI or ParseSource; the zero value is unreadable.
type Source struct {
	kind SourceKind
	text string
	data []byte
}

// FromDataURI accepts "data:<mime>;base64,<payload>" or a bare base64 payload.
func FromDataURI(s string) Source {
	return Source{kind: DataURI, text: s}
}

func FromBytes(b []byte) Source {
	return Source{kind: Bytes, data: b}
}

// FromURI is fetched during the upload call, never ahead of it.
func FromURI(uri string) Source {
	return Source{kind: RemoteURI, text: uri}
}

// ParseSource classifies caller input: URLs with a fetchable scheme become
// RemoteURI, anything else is treated as base64.
func ParseSource(s string) Source {
	trimmed := strings.TrimSpace(s)
	lower := strings.ToLower(trimmed)
	for _, scheme := range []string{"http://", "https://", "file://"} {
		if strings.HasPrefix(lower, scheme) {
			return FromURI(trimmed)
		}
	}
	return FromDataURI(s)
}

func (s Source) Kind() SourceKind {
	return s.kind
}

// ContentType is the type declared in a data URI header. It is empty for
// other sources, whose type is only known once they are read.
func (s Source) ContentType() string {
	if s.kind != DataURI {
		return ""
	}
	mime, _, err := splitDataURI(strings.TrimSpace(s.text))
	if err != nil {
		return ""
	}
	return mime
}

type payload struct {
	data []byte
	mime string
}

func (c *Client) resolve(ctx context.Context, src Source) (*payload, error) {
	switch src.kind {
	case DataURI:
		data, mime, err := DecodeDataURI(src.text)
		if err != nil {
			return nil, errorx.Wrap(errorx.SourceUnreadable, err, "Cannot decode image data")
		}
		return &payload{data: data, mime: mime}, nil

	case Bytes:
		if len(src.data) == 0 {
			return nil, errorx.ErrEmptySource
		}
		return &payload{data: src.data}, nil

	case RemoteURI:
		fetched, err := c.fetcher.Fetch(ctx, src.text)
		if err != nil {
			return nil, errorx.Wrap(errorx.SourceUnreadable, err, "Cannot fetch image")
		}
		if len(fetched.Data) == 0 {
			return nil, errorx.ErrEmptySource
		}
		return &payload{data: fetched.Data, mime: fetched.Mime}, nil

	default:
		return nil, errorx.New(errorx.SourceUnreadable, "Unknown image source")
	}
}

var (
	errMalformedDataURI = errors.New("malformed data URI")
	errNotBase64        = errors.New("data URI is not base64 encoded")
	errEmptyPayload     = errors.New("empty payload")
)

// DecodeDataURI strips an optional "data:<mime>;base64," prefix and decodes
// the rest. Whitespace is ignored and padded, unpadded and URL-safe alphabets
// are all accepted. The returned mime is empty when there was no prefix.
func DecodeDataURI(s string) ([]byte, string, error) {
	mime, s, err := splitDataURI(strings.TrimSpace(s))
	if err != nil {
		return nil, "", err
	}

	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return nil, mime, errEmptyPayload
	}

	var firstErr error
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		data, err := enc.DecodeString(s)
		if err == nil {
			return data, mime, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	return nil, mime, firstErr
}

// splitDataURI separates the declared mime from the payload. Input without a
// "data:" prefix is returned unchanged with an empty mime.
func splitDataURI(s string) (string, string, error) {
	if len(s) < 5 || !strings.EqualFold(s[:5], "data:") {
		return "", s, nil
	}

	header, body, ok := strings.Cut(s[5:], ",")
	if !ok {
		return "", "", errMalformedDataURI
	}

	params := strings.Split(header, ";")
	if !strings.EqualFold(params[len(params)-1], "base64") {
		return "", "", errNotBase64
	}
	return strings.ToLower(strings.TrimSpace(params[0])), body, nil
}
