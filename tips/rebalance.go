/*
Rebalance: manual overrides on an existing split.

A manager pins one employee's share to a new amount; everyone else's share
scales proportionally so the pool still reconciles to the same total. When
the other shares are all zero (nothing to scale), the leftover splits
evenly among them instead.
*/
package tips

import "github.com/shopspring/decimal"

// Rebalance pins employeeID's share to newAmountCents, clamped to
// [0, totalCents], and redistributes the rest proportionally to the prior
// shares. The returned shares preserve participant order and sum to
// totalCents exactly. A single-participant pool always gets the full total.
func Rebalance(shares []Share, totalCents int64, employeeID string, newAmountCents int64) []Share {
	n := len(shares)
	if n == 0 {
		return nil
	}

	pinned := newAmountCents
	if pinned < 0 {
		pinned = 0
	}
	if pinned > totalCents {
		pinned = totalCents
	}

	out := make([]Share, n)
	copy(out, shares)

	pinnedIdx := -1
	for i, s := range out {
		if s.EmployeeID == employeeID {
			pinnedIdx = i
			break
		}
	}
	if pinnedIdx == -1 {
		return out
	}
	if n == 1 {
		out[0].AmountCents = totalCents
		return out
	}
	out[pinnedIdx].AmountCents = pinned

	remaining := totalCents - pinned

	var priorOthers int64
	for i, s := range shares {
		if i != pinnedIdx {
			priorOthers += s.AmountCents
		}
	}

	if priorOthers <= 0 {
		// Nothing to scale proportionally; spread evenly across the others.
		others := make([]string, 0, n-1)
		for i, s := range out {
			if i != pinnedIdx {
				others = append(others, s.EmployeeID)
			}
		}
		even := SplitEven(remaining, others)
		j := 0
		for i := range out {
			if i != pinnedIdx {
				out[i].AmountCents = even[j].AmountCents
				j++
			}
		}
		return out
	}

	// Scale the other shares by remaining/priorOthers, floor each, and give
	// the rounding remainder to the last non-pinned participant.
	remDec := decimal.NewFromInt(remaining)
	priorDec := decimal.NewFromInt(priorOthers)
	lastOther := -1
	for i := range out {
		if i != pinnedIdx {
			lastOther = i
		}
	}

	var allocated int64
	for i := range out {
		if i == pinnedIdx || i == lastOther {
			continue
		}
		cents := remDec.
			Mul(decimal.NewFromInt(shares[i].AmountCents)).
			Div(priorDec).
			Floor().
			IntPart()
		out[i].AmountCents = cents
		allocated += cents
	}
	out[lastOther].AmountCents = remaining - allocated
	return out
}
