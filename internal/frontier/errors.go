package frontier

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientHistory is returned when the price table cannot produce
	// enough daily returns to estimate means and covariances.
	ErrInsufficientHistory = errors.New("insufficient price history")

	// ErrMissingAsset is returned when an asset column has no usable price at all.
	ErrMissingAsset = fmt.Errorf("%w: asset column is empty", ErrInsufficientHistory)

	// ErrEmptySampleSet is returned by Select when there is nothing to select from.
	ErrEmptySampleSet = errors.New("no valid portfolios")
)
