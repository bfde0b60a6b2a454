package quantity

import "strconv"

// Control is one of the fixed adjustment buttons.
type Control struct {
	Label string
	apply func(*Model)
}

// Apply runs the control against m.
func (c Control) Apply(m *Model) {
	c.apply(m)
}

// Controls returns the adjustment controls in display order.
func Controls() []Control {
	return []Control{
		decrementControl(Step1000),
		decrementControl(Step100),
		{Label: "Reset", apply: (*Model).Reset},
		incrementControl(Step100),
		incrementControl(Step1000),
	}
}

func decrementControl(by int) Control {
	return Control{
		Label: "-" + strconv.Itoa(by),
		apply: func(m *Model) { m.Decrement(by) },
	}
}

func incrementControl(by int) Control {
	return Control{
		Label: "+" + strconv.Itoa(by),
		apply: func(m *Model) { m.Increment(by) },
	}
}
