package types

// Comparator is a predicate comparison operator.
type Comparator string

const (
	EQ Comparator = "="
	NE Comparator = "!="
	GT Comparator = ">"
	GE Comparator = ">="
	LT Comparator = "<"
	LE Comparator = "<="

	LIKE    Comparator = "LIKE"
	NotLike Comparator = "NOT LIKE"
	IS      Comparator = "IS"
	IsNot   Comparator = "IS NOT"
	IN      Comparator = "IN"
	NotIn   Comparator = "NOT IN"
)

// IsWord reports whether the comparator is a keyword that needs surrounding spaces.
func (c Comparator) IsWord() bool {
	switch c {
	case EQ, NE, GT, GE, LT, LE:
		return false
	default:
		return true
	}
}

// LogicOperator links a condition to the one before it.
type LogicOperator string

const (
	AND LogicOperator = "AND"
	OR  LogicOperator = "OR"
)

// Direction is an ORDER BY direction.
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
	NONE Direction = ""
)
