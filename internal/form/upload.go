package form

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sakif/portfolio-site/internal/apiclient"
)

// readUpload returns the file posted under field, or nil when none was
// chosen. r must already be parsed.
func readUpload(r *http.Request, field string) (*apiclient.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	f, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("form: reading %s: %w", field, err)
	}
	defer f.Close()

	if header.Filename == "" || header.Size == 0 {
		return nil, nil
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("form: reading %s: %w", field, err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return &apiclient.Upload{
		FileName:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}
