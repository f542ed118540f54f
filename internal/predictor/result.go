package predictor

import "fmt"

type Label int

const (
	Stays  Label = 0
	Leaves Label = 1
)

func (l Label) String() string {
	switch l {
	case Stays:
		return "stays"
	case Leaves:
		return "leaves"
	default:
		return fmt.Sprintf("Label(%d)", int(l))
	}
}

type Result struct {
	Label         Label
	Probabilities [2]float64
}

// Probability returns the probability of the predicted label.
func (r Result) Probability() float64 {
	return r.Probabilities[r.Label]
}

// Summary renders the result the way the input form shows it.
func (r Result) Summary() string {
	if r.Label == Leaves {
		return fmt.Sprintf("High attrition risk: employee is likely to leave. Attrition probability: %.2f%%", r.Probability()*100)
	}
	return fmt.Sprintf("Employee is likely to stay. Retention probability: %.2f%%", r.Probability()*100)
}
