package quantities

import "errors"

// ErrDimensionMismatch is returned when an operation that requires two
// quantities to share a dimension vector — addition, subtraction, or an
// ordered comparison — is given operands whose dimensions differ.
var ErrDimensionMismatch = errors.New("quantities: dimension mismatch")

// ErrOddExponent is returned by Sqrt when a dimension's exponent is odd
// and therefore has no integral square root.
var ErrOddExponent = errors.New("quantities: dimension has an odd exponent")

// ErrNotAngleOrDimensionless is returned by Sin and Cos when the operand
// is neither an angle nor dimensionless.
var ErrNotAngleOrDimensionless = errors.New("quantities: operand must be an angle or dimensionless")

// ErrNotDimensionless is returned by Exp, Log, and Arcsin when the operand
// carries a non-trivial dimension.
var ErrNotDimensionless = errors.New("quantities: operand must be dimensionless")
