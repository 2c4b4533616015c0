package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorResponse error de validación con el detalle por campo (campo → regla violada).
type ValidationErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

// HealthResponse respuesta de /health.
type HealthResponse struct {
	Status       string `json:"status"`
	Service      string `json:"service"`
	MainoEnabled bool   `json:"maino_enabled"`
}
