package metadomain

import (
	"errors"
	"fmt"
	"strings"
)

// Códigos de erro da API do Meta que indicam limitação de taxa.
// 4 e 17 são os genéricos de "too many calls"; 613 é o limite por minuto;
// a família 80xxx cobre os limites por caso de uso de negócio.
var rateLimitCodes = map[int]struct{}{
	4:     {},
	17:    {},
	613:   {},
	80000: {},
	80003: {},
	80004: {},
}

const invalidCursorCode = 100

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string      `json:"message"`
	Type         string      `json:"type"`
	Code         int         `json:"code"`
	ErrorSubcode int         `json:"error_subcode,omitempty"`
	FBTraceID    string      `json:"fbtrace_id"`
	ErrorData    interface{} `json:"error_data,omitempty"`
}

// APIError é o erro retornado pelo cliente quando a API responde com erro
type APIError struct {
	Code    int
	Subcode int
	Type    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("meta api error %d: %s", e.Code, e.Message)
}

// NewAPIError converte o corpo de erro decodificado em um APIError
func NewAPIError(resp *ErrorResponse) *APIError {
	return &APIError{
		Code:    resp.Error.Code,
		Subcode: resp.Error.ErrorSubcode,
		Type:    resp.Error.Type,
		Message: resp.Error.Message,
	}
}

// IsRateLimitError verifica se o erro pertence ao conjunto fixo de códigos de
// limitação de taxa da plataforma
func IsRateLimitError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	_, ok := rateLimitCodes[apiErr.Code]
	return ok
}

// IsInvalidCursorError verifica se o erro indica cursor de paginação expirado.
// A plataforma expira cursores de vida longa no meio da paginação; esse caso é
// tratado como fim limpo da paginação, não como falha.
func IsInvalidCursorError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == invalidCursorCode && strings.Contains(apiErr.Message, "Invalid cursor")
}

// ErrorCode retorna o código numérico do erro da API, ou zero se não for um APIError
func ErrorCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
