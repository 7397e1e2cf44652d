package allocation

import "errors"

// ErrInvalidInput is returned when campaign inputs fail validation.
// No allocation work happens after a validation failure.
var ErrInvalidInput = errors.New("invalid campaign input")

// ErrDegenerateAllocation is returned when a policy would produce a
// period with zero or negative days. The engine refuses to emit such a
// plan rather than silently reshaping it.
var ErrDegenerateAllocation = errors.New("degenerate allocation")
