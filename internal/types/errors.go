package types

import (
	"errors"
	"fmt"
)

var (
	ErrDataNotFound  = errors.New("data not found")
	ErrInvalidFormat = errors.New("invalid format")
	ErrNoUsageData   = errors.New("no usage data available")
)

type LoaderError struct {
	Path string
	Err  error
}

func (e LoaderError) Error() string {
	return fmt.Sprintf("failed to load from %s: %v", e.Path, e.Err)
}

func (e LoaderError) Unwrap() error {
	return e.Err
}

type ParseError struct {
	Line int
	Err  error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %v", e.Line, e.Err)
}

func (e ParseError) Unwrap() error {
	return e.Err
}
