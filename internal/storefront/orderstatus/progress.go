package orderstatus

// Kind distinguishes how a status is rendered on the progress bar.
type Kind int

const (
	KindStep Kind = iota
	KindCancelled
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindStep:
		return "step"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind as its name in JSON payloads.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Position is the progress projection of a status. Index is meaningful only
// when Kind is KindStep.
type Position struct {
	Kind  Kind
	Index int
}

// Step is one entry of the rendered progress bar.
type Step struct {
	Status    Status `json:"key"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
	Active    bool   `json:"active"`
}

// Progress projects s onto the progress bar.
func Progress(s Status) Position {
	if s == Cancelled {
		return Position{Kind: KindCancelled, Index: -1}
	}
	if i, ok := ProgressIndex(s); ok {
		return Position{Kind: KindStep, Index: i}
	}
	return Position{Kind: KindUnknown, Index: -1}
}

// Steps expands the position into the five linear steps. Cancelled and
// unknown positions have no steps.
func (p Position) Steps() []Step {
	if p.Kind != KindStep {
		return nil
	}
	steps := make([]Step, 0, len(linear))
	for i, s := range linear {
		steps = append(steps, Step{
			Status:    s,
			Label:     stepLabels[s],
			Completed: i <= p.Index,
			Active:    i == p.Index,
		})
	}
	return steps
}
