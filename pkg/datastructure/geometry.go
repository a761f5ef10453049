package datastructure

import (
	"math"
)

const (
	EPS = 1e-6
)

// equal operator
func Eq(a, b float64) bool {
	return math.Abs(a-b) <= EPS
}

// less than operator
func Lt(a, b float64) bool {
	return a+EPS < b
}

// greater than or equal than operator
func Ge(a, b float64) bool {
	return Le(b, a)
}

func Gt(a, b float64) bool {
	return Lt(b, a)
}

// less than or equal operator
func Le(a, b float64) bool {
	return a <= b+EPS
}

// LinearCostIntersection. x where alpha1*x+beta1 == alpha2*x+beta2.
// returns false if both lines have the same slope.
func LinearCostIntersection(alpha1, beta1, alpha2, beta2 float64) (float64, bool) {
	if Eq(alpha1, alpha2) {
		return 0, false
	}

	return (beta2 - beta1) / (alpha1 - alpha2), true
}
