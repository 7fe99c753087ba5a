package query

import "errors"

// ErrValidation is wrapped by every structural validation failure: an
// undeclared variable referenced by a predicate, projection, or
// aggregation. Detected at plan time; planning fails outright.
var ErrValidation = errors.New("query: validation error")

// ErrEmptyPlan is returned when a query has zero pattern edges; a plan
// with zero stages is rejected rather than silently matching nothing.
var ErrEmptyPlan = errors.New("query: empty plan")
