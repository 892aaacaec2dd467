package faceapi

// RegisterRequest is the payload for POST /register.
type RegisterRequest struct {
	EmpID string `json:"emp_id"`
	Image string `json:"image"`
}

// RegisterResponse is the provider's answer to a registration call.
type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// VerifyRequest is the payload for POST /verify.
type VerifyRequest struct {
	EmpID string `json:"emp_id"`
	Image string `json:"image"`
}

// VerifyResponse carries the provider's match decision. Confidence is a
// 0-100 percentage; Distance is the raw embedding distance.
type VerifyResponse struct {
	Success    bool    `json:"success"`
	Match      bool    `json:"match"`
	Confidence float64 `json:"confidence"`
	Distance   float64 `json:"distance"`
	Threshold  float64 `json:"threshold,omitempty"`
	Message    string  `json:"message,omitempty"`
}

// HealthResponse is the answer to GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
	Version string `json:"version,omitempty"`
}
