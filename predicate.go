package keypager

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm/clause"
)

type (
	// seekCond is a single comparison Operator(Column, Value).
	seekCond struct {
		Column   string
		Value    any
		Operator Operator
	}

	// seekBranch is a list of seekConds joined by AND.
	seekBranch []seekCond

	// seekPredicate is the boundary predicate in disjunctive normal form:
	// branches joined by OR, conds inside a branch joined by AND.
	//
	// For boundary elements (C1,O1,V1)...(Cn,On,Vn) the predicate reads
	//
	//	(C1 O1 V1)
	//	OR (C1 = V1 AND C2 O2 V2)
	//	...
	//	OR (C1 = V1 AND ... AND C(n-1) = V(n-1) AND Cn On Vn)
	//
	// which is the lexicographic "strictly past this row" comparison over the
	// completed ordering. The trailing key-set columns make it a strict total
	// order even when leading sort columns repeat values.
	seekPredicate []seekBranch
)

// buildSeekPredicate inflates compact cursor elements into the full boundary
// predicate. With backward=true every strict operator is flipped, producing
// the "strictly before" form used by reverse fetches.
func buildSeekPredicate(elements []CursorElement, backward bool) seekPredicate {
	if len(elements) == 0 {
		return nil
	}

	predicate := make(seekPredicate, 0, len(elements))
	for i, element := range elements {
		branch := make(seekBranch, 0, i+1)

		// All previous columns are pinned to equality...
		branch = append(branch, lo.Map(elements[:i], func(prev CursorElement, _ int) seekCond {
			return seekCond{
				Column:   prev.Column,
				Value:    prev.Value,
				Operator: operatorEq,
			}
		})...)

		// ...and the current one compares strictly.
		op := element.Operator
		if backward {
			op = op.Flipped()
		}
		branch = append(branch, seekCond{
			Column:   element.Column,
			Value:    element.Value,
			Operator: op,
		})

		predicate = append(predicate, branch)
	}

	return predicate
}

// toGORMExpression renders the cond as "Column Operator ?" with a bound value.
func (c seekCond) toGORMExpression() clause.Expression {
	sqlClause, arg := c.toSQLClause()

	return clause.Expr{
		SQL:  sqlClause,
		Vars: []any{arg},
	}
}

// toSQLClause renders the cond as a placeholder SQL fragment plus its value.
//
// Example:
//
//	seekCond{Column: "id", Operator: ">", Value: 123}
//
// Result:
//
//	("id > ?", 123)
func (c seekCond) toSQLClause() (string, driver.Value) {
	return fmt.Sprintf("%s %s ?", c.Column, c.Operator), parseAnyValue(c.Value)
}

func parseAnyValue(v any) any {
	// Cursor tokens round-trip through JSON, which turns timestamps into
	// strings. Try parsing a value back into time.Time; fall back to the
	// original value.
	fnParseBytesToTimeOrValue := func(vBytes []byte) any {
		dst := time.Time{}
		err := dst.UnmarshalText(vBytes)
		if err == nil {
			return dst
		}

		return v
	}

	switch vt := v.(type) {
	case string:
		return fnParseBytesToTimeOrValue([]byte(vt))
	case []byte:
		return fnParseBytesToTimeOrValue(vt)
	default:
		return v
	}
}

// toGORMExpression joins the branch conds with AND.
func (b seekBranch) toGORMExpression() clause.Expression {
	andExpressions := make([]clause.Expression, 0, len(b))
	for _, cond := range b {
		andExpressions = append(andExpressions, cond.toGORMExpression())
	}

	if len(andExpressions) == 1 {
		return andExpressions[0]
	} else if len(andExpressions) > 1 {
		return clause.And(andExpressions...)
	}

	return nil
}

// toSQLClause renders the branch as "(K1 AND K2 AND K3)" plus placeholder values.
func (b seekBranch) toSQLClause() (string, []driver.Value) {
	andClauses := make([]string, 0, len(b))
	andValues := make([]driver.Value, 0, len(b))

	for _, cond := range b {
		andClause, andValue := cond.toSQLClause()
		andClauses = append(andClauses, andClause)
		andValues = append(andValues, andValue)
	}

	if len(andClauses) >= 1 {
		return fmt.Sprintf("(%s)", strings.Join(andClauses, " AND ")), andValues
	}

	return "", nil
}

// toGORMExpression joins the branches with OR.
func (p seekPredicate) toGORMExpression() clause.Expression {
	orExpressions := make([]clause.Expression, 0, len(p))

	for _, branch := range p {
		branchExpression := branch.toGORMExpression()
		if branchExpression == nil {
			continue
		}

		orExpressions = append(orExpressions, branchExpression)
	}

	if len(orExpressions) == 1 {
		return orExpressions[0]
	} else if len(orExpressions) > 1 {
		return clause.Or(orExpressions...)
	}

	return nil
}

// toSQLClause renders the whole predicate as raw SQL plus placeholder values.
//
// Example:
//
//	seekPredicate{
//		{{Column: "id", Operator: "<", Value: 10}},
//		{{Column: "id", Operator: "=", Value: 10}, {Column: "name", Operator: "<", Value: "abc"}},
//	}
//
// Result:
//
//	("((id < ?) OR (id = ? AND name < ?))", [10, 10, "abc"])
func (p seekPredicate) toSQLClause() (string, []driver.Value) {
	orClauses := make([]string, 0, len(p))
	values := make([]driver.Value, 0, len(p))

	for _, branch := range p {
		orClause, orValues := branch.toSQLClause()
		if orClause == "" {
			continue
		}

		orClauses = append(orClauses, orClause)
		values = append(values, orValues...)
	}

	if len(orClauses) >= 1 {
		return fmt.Sprintf("(%s)", strings.Join(orClauses, " OR ")), values
	}

	return "TRUE", nil
}
