package models

// APIResponse is the uniform response envelope: Data on success, Message on
// failure or for informational outcomes.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// SpecialtyRef is the name-only projection of a ServiceOption.
type SpecialtyRef struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}
