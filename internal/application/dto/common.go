package dto

import "github.com/jhoicas/mini-estoque/pkg/validator"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details []validator.FieldError `json:"details,omitempty"`
}
