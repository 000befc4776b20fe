package source

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnresolvedColumn matches every UnresolvedColumnError.
	ErrUnresolvedColumn = errors.New("source: description column not resolved")
	// ErrEncodingDetection matches every EncodingDetectionError.
	ErrEncodingDetection = errors.New("source: encoding detection failed")
)

// UnresolvedColumnError is returned when a table has no "desc" column and no
// usable column was requested. Candidates lists the normalised headers the
// caller can choose from.
type UnresolvedColumnError struct {
	Requested  string
	Candidates []string
}

func (e *UnresolvedColumnError) Error() string {
	if e.Requested != "" {
		return fmt.Sprintf("source: column %q not found (available: %s)", e.Requested, strings.Join(e.Candidates, ", "))
	}
	return fmt.Sprintf("source: no %q column, choose one of: %s", DefaultColumn, strings.Join(e.Candidates, ", "))
}

// Is lets errors.Is match the ErrUnresolvedColumn sentinel.
func (e *UnresolvedColumnError) Is(target error) bool {
	return target == ErrUnresolvedColumn
}

// EncodingDetectionError reports input bytes that could not be mapped to a
// known character encoding.
type EncodingDetectionError struct {
	Charset string
	Err     error
}

func (e *EncodingDetectionError) Error() string {
	if e.Charset != "" {
		return fmt.Sprintf("source: unsupported encoding %q: %v", e.Charset, e.Err)
	}
	return fmt.Sprintf("source: detect encoding: %v", e.Err)
}

// Is lets errors.Is match the ErrEncodingDetection sentinel.
func (e *EncodingDetectionError) Is(target error) bool {
	return target == ErrEncodingDetection
}

func (e *EncodingDetectionError) Unwrap() error { return e.Err }
