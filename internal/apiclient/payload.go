package apiclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// Upload is a file picked in a form, held in memory until it is sent.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// part is one multipart entry: either a string value or a file.
type part struct {
	key   string
	value string
	file  *Upload
}

// Payload is the multipart body of one create or update call.
//
// Entries keep the order they were added in, so list fields arrive at the
// backend as repeated keys in display order. A Payload is always built
// completely before Encode is called; nothing is streamed.
type Payload struct {
	parts []part
}

// NewPayload returns an empty payload.
func NewPayload() *Payload {
	return &Payload{}
}

// Field appends key=value, even when value is empty.
func (p *Payload) Field(key, value string) *Payload {
	p.parts = append(p.parts, part{key: key, value: value})
	return p
}

// OptionalField appends key=value only when value is non-empty.
func (p *Payload) OptionalField(key, value string) *Payload {
	if value == "" {
		return p
	}
	return p.Field(key, value)
}

// List appends one key=value entry per element, in order. Empty strings are
// sent as-is; the backend is trusted to validate them.
func (p *Payload) List(key string, values []string) *Payload {
	for _, v := range values {
		p.Field(key, v)
	}
	return p
}

// File appends a file entry when u is non-nil.
func (p *Payload) File(key string, u *Upload) *Payload {
	if u == nil {
		return p
	}
	p.parts = append(p.parts, part{key: key, file: u})
	return p
}

// Keys returns every key in insertion order, repeats included.
func (p *Payload) Keys() []string {
	keys := make([]string, len(p.parts))
	for i, pt := range p.parts {
		keys[i] = pt.key
	}
	return keys
}

// Encode renders the payload as multipart/form-data and returns the body
// and its Content-Type header value.
func (p *Payload) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, pt := range p.parts {
		if pt.file == nil {
			if err := w.WriteField(pt.key, pt.value); err != nil {
				return nil, "", fmt.Errorf("apiclient: writing field %s: %w", pt.key, err)
			}
			continue
		}

		contentType := pt.file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(pt.key), escapeQuotes(pt.file.FileName)))
		h.Set("Content-Type", contentType)

		fw, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("apiclient: creating file part %s: %w", pt.key, err)
		}
		if _, err := fw.Write(pt.file.Data); err != nil {
			return nil, "", fmt.Errorf("apiclient: writing file part %s: %w", pt.key, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("apiclient: closing multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
