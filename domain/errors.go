package domain

import (
	"errors"
	"fmt"
)

var (
	ErrResolutionNotFound   = errors.New("insufficient data for this combination, select different options")
	ErrMissingDataFile      = errors.New("data file not found")
	ErrEmptyCandidateSet    = errors.New("not enough reliable data to recommend")
	ErrDegenerateAllocation = errors.New("budget allocation undefined: top scores do not sum to a positive value")
	ErrSessionNotFound      = errors.New("session not found")
)

// MissingDataFileError names the dataset or model file that could not be found.
type MissingDataFileError struct {
	Resource string
}

func (e *MissingDataFileError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Resource)
}

func (e *MissingDataFileError) Unwrap() error {
	return ErrMissingDataFile
}
