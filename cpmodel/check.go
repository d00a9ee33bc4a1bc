package cpmodel

import "fmt"

// Check reports the first constraint of m violated by values, or nil when the
// assignment is a solution. values is indexed like m.Vars.
func (m *Model) Check(values []int64) error {
	if len(values) != len(m.Vars) {
		return fmt.Errorf("cpmodel: %d values for %d variables", len(values), len(m.Vars))
	}
	for i, d := range m.Vars {
		if values[i] < d.Lo || values[i] > d.Hi {
			return fmt.Errorf("cpmodel: %q = %d outside [%d, %d]", d.Name, values[i], d.Lo, d.Hi)
		}
	}
	for i, c := range m.Linear {
		if !enforced(c.Enforce, values) {
			continue
		}
		var s int64
		for _, t := range c.Terms {
			s += t.Coeff * values[t.Var]
		}
		if (c.Lo != NegInf && s < c.Lo) || (c.Hi != PosInf && s > c.Hi) {
			return fmt.Errorf("cpmodel: linear #%d %q: sum %d outside [%s, %s]", i, c.Name, s, bound(c.Lo), bound(c.Hi))
		}
	}
	for i, cl := range m.Clauses {
		ok := false
		for _, l := range cl {
			if l.Holds(values[l.Var]) {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("cpmodel: clause #%d %v unsatisfied", i, cl)
		}
	}

	return nil
}

// ObjectiveValue evaluates the objective under values; zero without one.
func (m *Model) ObjectiveValue(values []int64) int64 {
	if m.Objective == nil {
		return 0
	}
	s := m.Objective.Offset
	for _, t := range m.Objective.Terms {
		s += t.Coeff * values[t.Var]
	}
	return s
}

func enforced(lits []Literal, values []int64) bool {
	for _, l := range lits {
		if !l.Holds(values[l.Var]) {
			return false
		}
	}
	return true
}

func bound(v int64) string {
	switch v {
	case NegInf:
		return "-inf"
	case PosInf:
		return "+inf"
	default:
		return fmt.Sprint(v)
	}
}
