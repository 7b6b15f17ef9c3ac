package dto

// ErrorResponse cuerpo de error HTTP: {"success": false, "error", "error_code", "detail"}.
// Detail es un mapa campo -> mensajes en errores de validación y un texto en el resto.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
	Detail    any    `json:"detail,omitempty"`
}

// HealthResponse estado de las dependencias.
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}
