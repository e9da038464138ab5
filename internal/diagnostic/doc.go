// Package diagnostic provides the positioned errors, warnings and notes the
// generator reports while processing a round.
//
// Key capabilities:
//   - Stable codes for every validation rule
//   - Positions rendered compiler-style (file:line:col)
//   - "did you mean" suggestions
//   - A Sink interface so callers can collect or stream diagnostics
package diagnostic
