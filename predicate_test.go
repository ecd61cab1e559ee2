package keypager

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

func Test_buildSeekPredicate(t *testing.T) {
	elements := []CursorElement{
		{Column: "completed", Value: false, Operator: OperatorGT},
		{Column: "id", Value: 42, Operator: OperatorGT},
	}

	tests := []struct {
		name     string
		elements []CursorElement
		backward bool
		wantSQL  string
		wantVars []driver.Value
	}{
		{
			name:     "empty elements produce nil predicate",
			elements: nil,
			backward: false,
			wantSQL:  "TRUE",
			wantVars: nil,
		},
		{
			name:     "single element",
			elements: elements[1:],
			backward: false,
			wantSQL:  "((id > ?))",
			wantVars: []driver.Value{42},
		},
		{
			name:     "sort column with key set tie-break",
			elements: elements,
			backward: false,
			wantSQL:  "((completed > ?) OR (completed = ? AND id > ?))",
			wantVars: []driver.Value{false, false, 42},
		},
		{
			name:     "backward flips strict operators only",
			elements: elements,
			backward: true,
			wantSQL:  "((completed < ?) OR (completed = ? AND id < ?))",
			wantVars: []driver.Value{false, false, 42},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSQL, gotVars := buildSeekPredicate(tt.elements, tt.backward).toSQLClause()
			require.Equal(t, tt.wantSQL, gotSQL)
			require.Equal(t, tt.wantVars, gotVars)
		})
	}
}

func Test_seekCond_toExpression(t *testing.T) {
	timeNow := time.Now().UTC()
	timeNowStr, _ := timeNow.MarshalText()

	tests := []struct {
		name     string
		cond     seekCond
		wantSQL  string
		wantVars []interface{}
	}{
		{
			name:     "string less than",
			cond:     seekCond{Column: "name", Operator: OperatorLT, Value: "abc"},
			wantSQL:  "name < ?",
			wantVars: []interface{}{"abc"},
		},
		{
			name:     "timestamp greater than",
			cond:     seekCond{Column: "created_at", Operator: OperatorGT, Value: timeNow},
			wantSQL:  "created_at > ?",
			wantVars: []interface{}{timeNow},
		},
		{
			name:     "timestamp string should convert to timestamp",
			cond:     seekCond{Column: "created_at", Operator: OperatorGT, Value: timeNowStr},
			wantSQL:  "created_at > ?",
			wantVars: []interface{}{timeNow},
		},
		{
			name:     "integer less than",
			cond:     seekCond{Column: "id", Operator: OperatorLT, Value: 10},
			wantSQL:  "id < ?",
			wantVars: []interface{}{10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := tt.cond.toGORMExpression()
			clauseExpr := expr.(clause.Expr)

			if clauseExpr.SQL != tt.wantSQL {
				t.Errorf("unexpected SQL: got %s, want %s", clauseExpr.SQL, tt.wantSQL)
			}

			if len(clauseExpr.Vars) != len(tt.wantVars) {
				t.Errorf("unexpected vars length: got %d, want %d", len(clauseExpr.Vars), len(tt.wantVars))
			}

			for i, wantVar := range tt.wantVars {
				if clauseExpr.Vars[i] != wantVar {
					t.Errorf("unexpected var[%d]: got %v, want %v", i, clauseExpr.Vars[i], wantVar)
				}
			}
		})
	}
}

func Test_seekBranch_toExpression(t *testing.T) {
	tests := []struct {
		name    string
		branch  seekBranch
		wantNil bool
	}{
		{
			name: "non-empty branch",
			branch: seekBranch{
				{Column: "id", Operator: OperatorGT, Value: 5},
				{Column: "created_at", Operator: OperatorGT, Value: "2024-01-02T03:04:05Z"},
			},
			wantNil: false,
		},
		{
			name:    "empty branch",
			branch:  seekBranch{},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := tt.branch.toGORMExpression()
			if (expr == nil) != tt.wantNil {
				t.Errorf("unexpected expression result: got %v, want nil=%v", expr, tt.wantNil)
			}
		})
	}
}

func Test_seekPredicate_toExpression(t *testing.T) {
	tests := []struct {
		name      string
		predicate seekPredicate
		wantNil   bool
	}{
		{
			name: "non-empty predicate",
			predicate: seekPredicate{
				{
					{Column: "id", Operator: OperatorGT, Value: 5},
					{Column: "created_at", Operator: OperatorGT, Value: "2024-01-02T03:04:05Z"},
				},
				{{Column: "id", Operator: OperatorGT, Value: 10}},
			},
			wantNil: false,
		},
		{
			name:      "empty predicate",
			predicate: seekPredicate{},
			wantNil:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := tt.predicate.toGORMExpression()
			if (expr == nil) != tt.wantNil {
				t.Errorf("unexpected expression result: got %v, want nil=%v", expr, tt.wantNil)
			}
		})
	}
}
