package health

import "time"

// Service encapsulates health-related checks.
type Service struct {
	now func() time.Time
}

// Payload is the liveness response body.
type Payload struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewService constructs a new health service. A nil clock defaults to time.Now.
func NewService(now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{now: now}
}

// Status reports liveness with the current UTC time in RFC 3339.
func (s *Service) Status() Payload {
	return Payload{
		Status:    "ok",
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}
}
