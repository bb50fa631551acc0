package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/implantacao-api/internal/domain"
	"github.com/vfg2006/implantacao-api/internal/usecases/analyzing"
	"github.com/vfg2006/implantacao-api/internal/usecases/editing"
	"github.com/vfg2006/implantacao-api/internal/usecases/syncing"
	"github.com/vfg2006/implantacao-api/pkg/apiErrors"
)

// ListProjects retorna todos os projetos de implantação com os campos derivados
func ListProjects(service analyzing.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := service.ListProjects(r.Context())
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar projetos de implantação")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar projetos", nil)
			return
		}

		writeJSON(w, projects)
	}
}

// SyncProjects dispara uma passada completa de sincronização do fluxo de
// implantação e aguarda o resultado
func SyncProjects(service syncing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := service.SyncProjects(r.Context())
		if err != nil {
			writeSyncError(w, err)
			return
		}

		writeJSON(w, result)
	}
}

// UpdateProject aplica uma atualização parcial dos campos editáveis de um projeto
func UpdateProject(service editing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do projeto não especificado", nil)
			return
		}

		var req domain.UpdateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}
		req.ID = id

		project, err := service.UpdateProject(r.Context(), &req)
		if err != nil {
			writeUpdateError(w, err)
			return
		}

		writeJSON(w, project)
	}
}

// KPICards retorna os cartões de KPI do painel
func KPICards(service analyzing.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cards, err := service.KPICards(r.Context())
		if err != nil {
			logrus.WithError(err).Error("Erro ao calcular cartões de KPI")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao calcular cartões de KPI", nil)
			return
		}

		writeJSON(w, cards)
	}
}

func writeUpdateError(w http.ResponseWriter, err error) {
	var conflictErr *editing.ConflictError
	var fieldErr *domain.FieldError

	switch {
	case errors.As(err, &conflictErr):
		apiErrors.WriteError(w, apiErrors.ErrSyncOwnedField,
			"Campos de propriedade da sincronização não podem ser editados",
			map[string]any{"fields": conflictErr.Fields})

	case errors.As(err, &fieldErr):
		apiErrors.WriteError(w, apiErrors.ErrValidation, "Falha de validação", fieldErr)

	case errors.Is(err, editing.ErrProjectNotFound):
		apiErrors.WriteError(w, apiErrors.ErrNotFound, "Projeto não encontrado", nil)

	default:
		logrus.WithError(err).Error("Erro ao atualizar projeto")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar projeto", nil)
	}
}

func writeSyncError(w http.ResponseWriter, err error) {
	var syncErr *syncing.SyncError
	if !errors.As(err, &syncErr) {
		logrus.WithError(err).Error("Erro inesperado na sincronização")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro inesperado na sincronização", nil)
		return
	}

	details := map[string]any{
		"runId":     syncErr.RunID,
		"stream":    syncErr.Stream,
		"retryable": syncErr.Retryable,
	}

	if errors.Is(err, syncing.ErrSyncInProgress) {
		apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, "Sincronização já em andamento para este fluxo", details)
		return
	}

	if syncErr.Retryable {
		apiErrors.WriteError(w, apiErrors.ErrSyncUnavailable, "Sistema externo indisponível, tente novamente", details)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrSyncFailed, "Sincronização abortada", details)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("Erro ao enviar resposta")
	}
}
