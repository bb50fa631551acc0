package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro da API
const (
	// Erros de validação (VAL)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrValidation          = "VAL_004" // Falha de validação de campo

	// Erros de configuração (CFG)
	ErrInvalidConfiguration = "CFG_001" // Configuração inválida (contrato zerado, pesos que não somam 1, ...)

	// Erros de conflito (CONF)
	ErrSyncOwnedField = "CONF_001" // Tentativa de editar campo de propriedade da sincronização
	ErrNotFound       = "CONF_002" // Registro não encontrado

	// Erros de sincronização (SYNC)
	ErrSyncFailed      = "SYNC_001" // Passada de sincronização abortada
	ErrSyncUnavailable = "SYNC_002" // Sistema externo indisponível ou limitado
	ErrSyncInProgress  = "SYNC_003" // Sincronização já em andamento

	// Erros do servidor (SRV)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidRequest:       http.StatusBadRequest,
	ErrMissingRequiredData:  http.StatusBadRequest,
	ErrInvalidFormat:        http.StatusBadRequest,
	ErrValidation:           http.StatusUnprocessableEntity,
	ErrInvalidConfiguration: http.StatusUnprocessableEntity,
	ErrSyncOwnedField:       http.StatusConflict,
	ErrNotFound:             http.StatusNotFound,
	ErrSyncFailed:           http.StatusBadGateway,
	ErrSyncUnavailable:      http.StatusServiceUnavailable,
	ErrSyncInProgress:       http.StatusConflict,
	ErrInternalServer:       http.StatusInternalServerError,
	ErrDatabaseOperation:    http.StatusInternalServerError,
	ErrExternalService:      http.StatusBadGateway,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
// Útil para quando você quer envolver um erro existente em um erro de API
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
