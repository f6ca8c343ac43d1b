package payload

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/goliatone/go-predictform/pkg/form"
)

// FilePartName is the multipart field the backend reads the image from.
const FilePartName = "file"

// Body is an encoded request body and the Content-Type header that
// describes it.
type Body struct {
	ContentType string
	Data        []byte
	Filename    string
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Multipart wraps the selected file, unmodified, into a multipart/form-data
// body with a single part named "file".
func Multipart(upload form.Upload) (Body, error) {
	file, ok := upload.File()
	if !ok {
		return Body{}, upload.Check()
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		FilePartName, quoteEscaper.Replace(file.Name)))
	mediaType := file.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	header.Set("Content-Type", mediaType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return Body{}, fmt.Errorf("payload: create part: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return Body{}, fmt.Errorf("payload: write part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return Body{}, fmt.Errorf("payload: close multipart: %w", err)
	}

	return Body{
		ContentType: writer.FormDataContentType(),
		Data:        buf.Bytes(),
		Filename:    file.Name,
	}, nil
}
