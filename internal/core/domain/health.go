package domain

// HealthStatus is the state reported by a health indicator.
type HealthStatus string

// Health states, matching the actuator vocabulary.
const (
	StatusUp           HealthStatus = "UP"
	StatusDown         HealthStatus = "DOWN"
	StatusOutOfService HealthStatus = "OUT_OF_SERVICE"
	StatusUnknown      HealthStatus = "UNKNOWN"
)

// Health is the result of a single health check.
type Health struct {
	Status  HealthStatus   `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// CompositeHealth aggregates the health of all registered indicators.
type CompositeHealth struct {
	Status     HealthStatus      `json:"status"`
	Components map[string]Health `json:"components,omitempty"`
}

// Up returns a healthy result with optional details.
func Up(details map[string]any) Health {
	return Health{Status: StatusUp, Details: details}
}

// Down returns an unhealthy result carrying the error message.
func Down(err error) Health {
	h := Health{Status: StatusDown}
	if err != nil {
		h.Details = map[string]any{"error": err.Error()}
	}
	return h
}

// severity orders statuses so the worst one wins during aggregation.
func (s HealthStatus) severity() int {
	switch s {
	case StatusDown:
		return 3
	case StatusOutOfService:
		return 2
	case StatusUp:
		return 0
	default:
		return 1
	}
}

// Worse returns whichever of s and other is more severe.
func (s HealthStatus) Worse(other HealthStatus) HealthStatus {
	if other.severity() > s.severity() {
		return other
	}
	return s
}
