package retention

import "testing"

func TestConditionOrdering(t *testing.T) {
	for i, cond := range []Condition{Pro, EBaso, LBaso, Poly, Ortho} {
		if cond.Ord() != i {
			t.Fatalf("%s ordinal %d, expected %d", cond, cond.Ord(), i)
		}
	}

	if Condition("retic").Ord() != -1 {
		t.Fatal("Unknown condition should have ordinal -1")
	}
}

func TestParseCondition(t *testing.T) {
	if _, err := ParseCondition("lbaso"); err != nil {
		t.Fatalf("lbaso should parse: %v", err)
	}
	if _, err := ParseCondition("baso"); err == nil {
		t.Fatal("baso should not parse")
	}
}
