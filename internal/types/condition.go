package types

// Condition is one entry of a WHERE or ON chain: a Predicate or a PredicateInList.
type Condition interface {
	IsCondition()
	LogicOp() LogicOperator
}

// Predicate compares a field against a literal, another field or a subquery.
// Escape requests parameter binding for literal values.
type Predicate struct {
	Field      FieldSelector
	Comparator Comparator
	Value      Value
	Escape     bool
	Logic      LogicOperator
}

// PredicateInList is a set-membership test against literal values or a subquery.
type PredicateInList struct {
	Field    FieldSelector
	Values   []Value
	Subquery *Statement
	Escape   bool
	Logic    LogicOperator
	Not      bool
}

// Implement Condition.
func (Predicate) IsCondition()       {}
func (PredicateInList) IsCondition() {}

// LogicOp returns the operator linking the predicate to the previous one.
func (p Predicate) LogicOp() LogicOperator {
	if p.Logic == "" {
		return AND
	}
	return p.Logic
}

// LogicOp returns the operator linking the predicate to the previous one.
func (p PredicateInList) LogicOp() LogicOperator {
	if p.Logic == "" {
		return AND
	}
	return p.Logic
}

// IsEmpty reports whether the list renders to nothing.
func (p PredicateInList) IsEmpty() bool {
	return p.Subquery == nil && len(p.Values) == 0
}

// Assignment is one SET entry of an UPDATE.
type Assignment struct {
	Field  FieldSelector
	Value  Value
	Escape bool
}
