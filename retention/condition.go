package retention

import "fmt"

// Condition is one stage of red blood cell maturation. The stages have a
// fixed biological ordering which is used whenever output is sorted or
// pivoted by condition, so every component should take its ordering from
// Stages or Ord rather than re-declaring it.
type Condition string

const (
	Pro   Condition = "pro"
	EBaso Condition = "ebaso"
	LBaso Condition = "lbaso"
	Poly  Condition = "poly"
	Ortho Condition = "ortho"
)

// Stages returns the maturation stages in maturation order, earliest first.
func Stages() []Condition {
	return []Condition{Pro, EBaso, LBaso, Poly, Ortho}
}

// Ord returns the position of the condition within the fixed maturation
// ordering, or -1 if the condition is not one of the known stages.
func (c Condition) Ord() int {
	for i, stage := range Stages() {
		if c == stage {
			return i
		}
	}

	return -1
}

// ParseCondition maps a string label onto a known maturation stage.
func ParseCondition(label string) (Condition, error) {
	c := Condition(label)
	if c.Ord() < 0 {
		return c, fmt.Errorf("unknown condition %q (expected one of %v)", label, Stages())
	}

	return c, nil
}
