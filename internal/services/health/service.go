package health

// Service reports process liveness for load balancers and probes.
type Service struct {
	env         string
	objectStore string
}

// NewService constructs a new health service.
func NewService(env, objectStore string) *Service {
	return &Service{env: env, objectStore: objectStore}
}

// Status is the body served by GET /health.
type Status struct {
	OK          bool   `json:"ok"`
	Env         string `json:"env"`
	ObjectStore string `json:"objectStore"`
}

// Status returns a simple health payload. The store is not contacted.
func (s *Service) Status() Status {
	return Status{OK: true, Env: s.env, ObjectStore: s.objectStore}
}
