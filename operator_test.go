package keypager

import "testing"

func Test_Operator_Valid_And_ForOrdering(t *testing.T) {
	tests := []struct {
		name      string
		in        Operator
		valid     bool
		direction Direction
	}{
		{"GT valid maps to ASC", OperatorGT, true, DirectionASC},
		{"LT valid maps to DESC", OperatorLT, true, DirectionDESC},
	}
	for _, tt := range tests {
		if got := tt.in.Valid(); got != tt.valid {
			t.Errorf("%s: Valid=%v want %v", tt.name, got, tt.valid)
		}
		if got := tt.in.ForOrdering(); got != tt.direction {
			t.Errorf("%s: ForOrdering=%v want %v", tt.name, got, tt.direction)
		}
	}

	if operatorEq.Valid() {
		t.Errorf("equality operator must not be valid in tokens")
	}
}

func Test_Operator_Flipped(t *testing.T) {
	tests := []struct {
		name string
		in   Operator
		want Operator
	}{
		{"GT -> LT", OperatorGT, OperatorLT},
		{"LT -> GT", OperatorLT, OperatorGT},
	}
	for _, tt := range tests {
		if got := tt.in.Flipped(); got != tt.want {
			t.Errorf("%s: Flipped=%v want %v", tt.name, got, tt.want)
		}
	}
}
