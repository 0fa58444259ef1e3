/*
Package tips splits a monetary tip pool across participants.

PURPOSE:
  Implements the even, by-hours, and by-role-weight split strategies plus
  manual rebalancing. The one invariant every strategy guarantees: the
  shares sum to EXACTLY the pool total, for any total >= 0 and any
  non-empty participant list. Rounding remainders always land on the last
  participant.

ZERO-WEIGHT FALLBACK:
  A pool split by hours (or weight) when every participant has zero hours
  falls back to an even split rather than producing all-zero shares. All
  the money must always land somewhere.

SEE ALSO:
  - rebalance.go: Manual share overrides
  - eligibility.go: Who participates at all
*/
package tips

import "github.com/shopspring/decimal"

// =============================================================================
// PARTICIPANTS AND SHARES
// =============================================================================

// Participant is one employee in a tip pool, with the inputs the weighted
// strategies use.
type Participant struct {
	EmployeeID string
	Hours      float64
	Weight     float64
}

// Share is one employee's slice of a pool, in cents.
type Share struct {
	EmployeeID  string
	AmountCents int64
}

// SumShares totals a share list in cents.
func SumShares(shares []Share) int64 {
	var total int64
	for _, s := range shares {
		total += s.AmountCents
	}
	return total
}

// =============================================================================
// EVEN SPLIT
// =============================================================================

// SplitEven gives floor(total/n) to each of the first n-1 participants and
// the remainder to the last, so the shares reconcile exactly even when the
// total is not evenly divisible.
func SplitEven(totalCents int64, employeeIDs []string) []Share {
	n := len(employeeIDs)
	if n == 0 {
		return nil
	}

	base := totalCents / int64(n)
	shares := make([]Share, n)
	var allocated int64
	for i, id := range employeeIDs {
		shares[i] = Share{EmployeeID: id, AmountCents: base}
		allocated += base
	}
	shares[n-1].AmountCents += totalCents - allocated
	return shares
}

// =============================================================================
// WEIGHTED SPLITS
// =============================================================================

// SplitByHours weights each share by participant hours over total hours.
// If every participant has zero hours the pool falls back to an even split.
func SplitByHours(totalCents int64, participants []Participant) []Share {
	return splitWeighted(totalCents, participants, func(p Participant) float64 { return p.Hours })
}

// SplitByWeight weights each share by an arbitrary role weight, with the
// same zero-sum fallback as SplitByHours.
func SplitByWeight(totalCents int64, participants []Participant) []Share {
	return splitWeighted(totalCents, participants, func(p Participant) float64 { return p.Weight })
}

func splitWeighted(totalCents int64, participants []Participant, weightOf func(Participant) float64) []Share {
	n := len(participants)
	if n == 0 {
		return nil
	}

	var totalWeight float64
	for _, p := range participants {
		totalWeight += weightOf(p)
	}
	if totalWeight == 0 {
		// All-zero weights must never produce all-zero shares.
		return SplitEven(totalCents, participantIDs(participants))
	}

	shares := make([]Share, n)
	var allocated int64
	totalDec := decimal.NewFromInt(totalCents)
	weightDec := decimal.NewFromFloat(totalWeight)
	for i, p := range participants {
		shares[i] = Share{EmployeeID: p.EmployeeID}
		if i == n-1 {
			break
		}
		cents := totalDec.
			Mul(decimal.NewFromFloat(weightOf(p))).
			Div(weightDec).
			Floor().
			IntPart()
		shares[i].AmountCents = cents
		allocated += cents
	}
	shares[n-1].AmountCents = totalCents - allocated
	return shares
}

func participantIDs(participants []Participant) []string {
	ids := make([]string, len(participants))
	for i, p := range participants {
		ids[i] = p.EmployeeID
	}
	return ids
}
