package pipeline

import (
	"context"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-ecimark/pkg/markup"
	"github.com/goliatone/go-ecimark/pkg/source"
)

const (
	codeMalformedRecord  = "MALFORMED_RECORD"
	codeRecordFailed     = "RECORD_FORMAT_FAILED"
	codeColumnUnresolved = "COLUMN_UNRESOLVED"
	codeEncoding         = "ENCODING_DETECTION_FAILED"
	codeSourceFailed     = "SOURCE_READ_FAILED"
	codeSinkFailed       = "SINK_WRITE_FAILED"
	codeRunCanceled      = "RUN_CANCELED"
	codeRunTimeout       = "RUN_TIMEOUT"
)

// ErrInvalidPolicy is returned when a policy name is unknown.
var ErrInvalidPolicy = errors.New("pipeline: unknown malformed-record policy")

// RecordFailure describes a record that failed to format.
type RecordFailure struct {
	Index int
	Err   error
}

func (f RecordFailure) Error() string {
	return fmt.Sprintf("record %d: %v", f.Index, f.Err)
}

func (f RecordFailure) Unwrap() error { return f.Err }

func wrapRecordError(failure RecordFailure) error {
	if errors.Is(failure.Err, markup.ErrMalformedSection) {
		return goerrors.Wrap(failure, goerrors.CategoryValidation, "malformed description record").
			WithTextCode(codeMalformedRecord)
	}
	return goerrors.Wrap(failure, goerrors.CategoryCommand, "description record failed").
		WithTextCode(codeRecordFailed)
}

func wrapSourceError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, source.ErrUnresolvedColumn):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "description column not found").
			WithTextCode(codeColumnUnresolved)
	case errors.Is(err, source.ErrEncodingDetection):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "input encoding not recognised").
			WithTextCode(codeEncoding)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return wrapContextError(err)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "read input failed").
			WithTextCode(codeSourceFailed)
	}
}

func wrapSinkError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "write output failed").
		WithTextCode(codeSinkFailed)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "translation deadline exceeded").
			WithTextCode(codeRunTimeout)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "translation cancelled").
		WithTextCode(codeRunCanceled)
}
