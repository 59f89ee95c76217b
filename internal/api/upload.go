package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/erazemk/omara/internal/imaging"
	"github.com/erazemk/omara/internal/stylist"
)

// maxFormBytes bounds a whole multipart request. Try-on carries up to four
// photos.
const maxFormBytes = 4*imaging.MaxUploadBytes + 1<<20

var errMissingImage = errors.New("image missing")

// parseImageForm limits and parses a multipart request body.
func parseImageForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		return fmt.Errorf("parsing multipart form: %w", err)
	}
	return nil
}

// formImage reads and normalizes the uploaded file in field. It returns
// errMissingImage when the field is absent.
func formImage(r *http.Request, field string) (*stylist.Image, error) {
	file, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, errMissingImage
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", field, err)
	}
	defer file.Close()

	result, err := imaging.Process(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &stylist.Image{Data: result.Data, MIME: result.MIME}, nil
}
