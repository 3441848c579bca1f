package villager

import "errors"

// Fulfillment and goal errors. All are handled locally by falling back to
// a safe state or deferring; none abort a villager's tick.
var (
	// ErrInsufficientWealth means the villager could not afford the
	// resource a need requires. Nothing was debited.
	ErrInsufficientWealth = errors.New("insufficient personal wealth")

	// ErrInsufficientSupply means the village pool lacked stock after the
	// villager's wealth was already committed. The debit is final: the
	// failed purchase models money lost to an empty market stall.
	ErrInsufficientSupply = errors.New("insufficient village supply")

	// ErrNoViableGoal means every goal type is already active or
	// completed; re-assignment is silently skipped.
	ErrNoViableGoal = errors.New("no viable goal candidate")
)
