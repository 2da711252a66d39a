package sensors

import (
	"errors"
	"net/http"
)

// ErrEmptyURL signals that the sensor bridge URL was not provided
var ErrEmptyURL = errors.New("empty sensor bridge URL")

// ErrEmptyValuePath signals that a source was registered without a value path
var ErrEmptyValuePath = errors.New("empty value path")

// ErrInvalidPollInterval signals that the bridge poll interval is not strictly positive
var ErrInvalidPollInterval = errors.New("invalid poll interval")

type errStatusNotOK int

func (e errStatusNotOK) Error() string {
	return "non-2xx HTTP status code: " + http.StatusText(int(e))
}

type errPathNotFound string

func (e errPathNotFound) Error() string {
	return "JSON path not found in response: " + string(e)
}
