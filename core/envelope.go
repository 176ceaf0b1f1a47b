package core

// Envelope is the single response shape every transport serializes.
// Failure bodies are {"success":false,"message":...,"error"?:...}; success
// bodies are {"success":true,"message":...,"data"?:...}. Field order and
// omission are part of the contract.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Token   string `json:"token,omitempty"`
}

func SuccessEnvelope(message string, data any) Envelope {
	return Envelope{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func FailureEnvelope(message string, errorText string) Envelope {
	return Envelope{
		Success: false,
		Message: message,
		Error:   errorText,
	}
}
