package order

// Effect is a side effect requested by a state change. The domain only
// names effects; application handlers perform them after the change is
// durable.
type Effect int

const (
	// EffectNotifyConfirmed sends the "order placed" email.
	EffectNotifyConfirmed Effect = iota + 1

	// EffectNotifyReady sends the "order ready for pickup" email.
	EffectNotifyReady
)

func (e Effect) String() string {
	switch e {
	case EffectNotifyConfirmed:
		return "notify_confirmed"
	case EffectNotifyReady:
		return "notify_ready"
	default:
		return "unknown"
	}
}

// Transition is the result of Order.ChangeStatus.
type Transition struct {
	From    Status
	To      Status
	Effects []Effect
}

// Changed reports whether the status actually moved.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// Has reports whether the transition requested effect e.
func (t Transition) Has(e Effect) bool {
	for _, effect := range t.Effects {
		if effect == e {
			return true
		}
	}
	return false
}
