package errx

import (
	"errors"
	"net/http"
)

// ErrMediaDownload marks failures while resolving a gateway media handle to
// bytes. Callers can tell download failures apart from other gateway errors
// with errors.Is.
var ErrMediaDownload = errors.New(MediaErrorMessage)

// WrapMedia wraps a media download failure so it matches ErrMediaDownload.
func WrapMedia(err error) error {
	if err == nil {
		return nil
	}
	return New(errors.Join(ErrMediaDownload, err), http.StatusBadGateway, MediaErrorMessage)
}
