package dto

// ErrorResponse cuerpo de error HTTP. Code es la categoría estable legible por
// máquina; Message el texto para humanos. Details solo acompaña errores de
// validación con el detalle por campo.
type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// FieldError detalle de validación de un campo concreto.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
