package planner

import "errors"

// ErrEmptyPlan is returned when a pattern has no variables (equivalently,
// no edges); per spec §7 construction rejects a zero-stage plan outright.
var ErrEmptyPlan = errors.New("planner: pattern has no variables to order")

// ErrPlannerInvariant signals a pattern edge was referenced by a delta
// plan before being classified into either the merged or permanent
// relation set for that round; it indicates a bug in PlanContinuous,
// not a user error.
var ErrPlannerInvariant = errors.New("planner: pattern edge not yet classified as merged or permanent")
