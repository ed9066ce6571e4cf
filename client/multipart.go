package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
)

// sniffLen is the number of leading bytes filetype needs to match a type
const sniffLen = 261

// Attachment is a binary file uploaded as part of a multipart request
type Attachment struct {
	Filename string
	Content  io.Reader
}

// OpenAttachment opens the file at path as an Attachment. The caller closes
// the returned file once the upload completes.
func OpenAttachment(path string) (*Attachment, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return &Attachment{Filename: filepath.Base(path), Content: f}, f, nil
}

// contentType sniffs the MIME type of the attachment and returns a reader
// that still yields the full content
func (a *Attachment) contentType() (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(a.Content, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", nil, err
	}
	head = head[:n]

	mimeType := "application/octet-stream"
	if kind, _ := filetype.Match(head); kind != filetype.Unknown {
		mimeType = kind.MIME.Value
	}

	return mimeType, io.MultiReader(bytes.NewReader(head), a.Content), nil
}

// multipartForm is a multipart/form-data body under construction
type multipartForm struct {
	buf bytes.Buffer
	w   *multipart.Writer
}

func newMultipartForm() *multipartForm {
	form := &multipartForm{}
	form.w = multipart.NewWriter(&form.buf)
	return form
}

func (f *multipartForm) field(name, value string) error {
	return f.w.WriteField(name, value)
}

func (f *multipartForm) file(name string, a *Attachment) error {
	mimeType, r, err := a.contentType()
	if err != nil {
		return fmt.Errorf("error reading attachment %s: %w", a.Filename, err)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, name, a.Filename))
	h.Set("Content-Type", mimeType)

	part, err := f.w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, r)
	return err
}

func (c *Client) newMultipartRequest(ctx context.Context, method, path string, form *multipartForm) (*http.Request, error) {
	if err := form.w.Close(); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, nil), &form.buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.w.FormDataContentType())
	c.authorize(req)
	return req, nil
}
