package keypager

import "fmt"

// Operator defines a comparison operator used in cursor boundary conditions.
type Operator string

const (
	OperatorGT Operator = ">"
	OperatorLT Operator = "<"

	// operatorEq is the equality operator. It is private because it only
	// appears inside generated boundary predicates, never in tokens.
	operatorEq Operator = "="
)

func (o Operator) Valid() bool {
	return o == OperatorLT || o == OperatorGT
}

// ForOrdering returns the sort direction a boundary operator corresponds to.
func (o Operator) ForOrdering() Direction {
	switch o {
	case OperatorGT:
		return DirectionASC
	case OperatorLT:
		return DirectionDESC
	default:
		panic(fmt.Errorf("cannot map operator '%s' to ordering", o))
	}
}

// Flipped returns the operator for traversing the same ordering in the
// opposite direction. Used by backward page fetches.
func (o Operator) Flipped() Operator {
	switch o {
	case OperatorGT:
		return OperatorLT
	case OperatorLT:
		return OperatorGT
	default:
		panic(fmt.Errorf("cannot flip operator '%s'", o))
	}
}
