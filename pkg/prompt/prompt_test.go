package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ecimark/pkg/source"
)

type stubDriver struct {
	selectIdx    []int
	confirm      []bool
	err          error
	infoMessages []string
	selects      []SelectConfig
	selectPos    int
	confirmPos   int
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selects = append(s.selects, cfg)
	if s.err != nil {
		return 0, s.err
	}
	idx := s.selectIdx[s.selectPos]
	s.selectPos++
	return idx, nil
}

func (s *stubDriver) Confirm(context.Context, ConfirmConfig) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	v := s.confirm[s.confirmPos]
	s.confirmPos++
	return v, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestPickColumnReturnsSelectedHeader(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{selectIdx: []int{1}}
	got, err := PickColumn(context.Background(), driver, &source.UnresolvedColumnError{
		Requested:  "body",
		Candidates: []string{"sku", "long description"},
	})
	if err != nil {
		t.Fatalf("PickColumn() error = %v", err)
	}
	if got != "long description" {
		t.Fatalf("PickColumn() = %q", got)
	}
	if diff := cmp.Diff([]string{`Column "body" was not found.`}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"sku", "long description"}, driver.selects[0].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestPickColumnWithoutCandidates(t *testing.T) {
	t.Parallel()

	_, err := PickColumn(context.Background(), &stubDriver{}, &source.UnresolvedColumnError{})
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
}

func TestPickColumnPropagatesAbort(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{err: ErrAborted}
	_, err := PickColumn(context.Background(), driver, &source.UnresolvedColumnError{Candidates: []string{"a"}})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestPickColumnRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{selectIdx: []int{-1}}
	if _, err := PickColumn(context.Background(), driver, &source.UnresolvedColumnError{Candidates: []string{"a"}}); err == nil {
		t.Fatal("expected error for unmatched selection")
	}
}

func TestConfirmOverwrite(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{confirm: []bool{false}}
	ok, err := ConfirmOverwrite(context.Background(), driver, "out-FILTERED.csv")
	if err != nil || ok {
		t.Fatalf("ConfirmOverwrite() = %v, %v", ok, err)
	}
}

func TestIndexOf(t *testing.T) {
	t.Parallel()

	if got := indexOf([]string{"a", "b"}, "b"); got != 1 {
		t.Fatalf("indexOf() = %d", got)
	}
	if got := indexOf([]string{"a"}, "z"); got != -1 {
		t.Fatalf("indexOf() = %d", got)
	}
}
