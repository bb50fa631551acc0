package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/implantacao-api/internal/usecases/analyzing"
	"github.com/vfg2006/implantacao-api/internal/usecases/syncing"
	"github.com/vfg2006/implantacao-api/pkg/apiErrors"
)

// ListIntegrations retorna os registros do fluxo de integração
func ListIntegrations(service analyzing.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := service.ListIntegrations(r.Context())
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar registros de integração")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar registros de integração", nil)
			return
		}

		writeJSON(w, records)
	}
}

// SyncIntegrations dispara uma passada completa de sincronização do fluxo
// de integração e aguarda o resultado
func SyncIntegrations(service syncing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := service.SyncIntegrations(r.Context())
		if err != nil {
			writeSyncError(w, err)
			return
		}

		writeJSON(w, result)
	}
}
