package create_session

// CreateSessionRequest HTTP request model; тело запроса необязательно
type CreateSessionRequest struct {
	Category string `json:"category,omitempty" validate:"max=64"`
}
