/*
Eligibility: which employees participate in a tip pool.

Terminated employees and salaried employees sit out by default; an explicit
TipEligible flag on the employee record overrides nothing here — it only
opts an otherwise-eligible employee out.
*/
package tips

import "github.com/tably/labor-engine/labor"

// FilterTipEligible drops employees who cannot share in a tip pool:
// terminated employees, salaried employees, and anyone explicitly flagged
// tip-ineligible. An unset flag means eligible.
func FilterTipEligible(employees []labor.Employee) []labor.Employee {
	eligible := make([]labor.Employee, 0, len(employees))
	for _, e := range employees {
		if e.Status == labor.StatusTerminated {
			continue
		}
		if e.Compensation == labor.CompSalary {
			continue
		}
		if !e.IsTipEligible() {
			continue
		}
		eligible = append(eligible, e)
	}
	return eligible
}
