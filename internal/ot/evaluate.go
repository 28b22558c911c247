package ot

// Evaluate applies every constraint of the tableau to every candidate,
// storing counts in each candidate's Violations map under the constraint
// name. Each run rebuilds the map, so prior entries are overwritten and
// re-evaluating an unchanged tableau is idempotent. Constraint functions
// never mutate candidates; Evaluate is the sole writer of Violations.
func Evaluate(t *Tableau) {
	constraints := t.constraints
	for _, key := range t.order {
		cand := t.candidates[key]
		cand.Violations = make(map[string]int, len(constraints))
		for _, c := range constraints {
			cand.Violations[c.Name] = c.Score(cand)
		}
	}
}
