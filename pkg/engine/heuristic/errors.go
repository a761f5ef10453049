package heuristic

import "errors"

var (
	// ErrInfeasible. no source/sink pair can carry any more CO2 while the capture target is not met
	ErrInfeasible = errors.New("capture target can not be met")
	// ErrInconsistentGraph. a selected path references an arc that is not part of the candidate graph
	ErrInconsistentGraph = errors.New("inconsistent candidate graph")
)
