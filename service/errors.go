package services

import "errors"

var (
	ErrEmptyQuery      = errors.New("Please enter a city name.")
	ErrNoCityFound     = errors.New("No city found matching your query.")
	ErrNoCitySelected  = errors.New("Please search and select a city first.")
	ErrNoCategories    = errors.New("Please select at least one category.")
	ErrNoPlaces        = errors.New("No places found for the given criteria.")
	ErrNoResults       = errors.New("Please search for places first.")
	ErrNoSelection     = errors.New("Please select at least one place.")
	ErrInvalidIndex    = errors.New("No item at that position.")
	ErrArchiveDisabled = errors.New("The place archive is not configured.")
)

// UpstreamError wraps a failed call to the Places API.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return "Failed to " + e.Op + ": " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// FileError wraps a failed export write.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return "Could not write " + e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error { return e.Err }

// ArchiveError wraps a failed place archive lookup.
type ArchiveError struct {
	Err error
}

func (e *ArchiveError) Error() string {
	return "Could not read the place archive: " + e.Err.Error()
}

func (e *ArchiveError) Unwrap() error { return e.Err }
