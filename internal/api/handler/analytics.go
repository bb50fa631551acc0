package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/implantacao-api/internal/usecases/analyzing"
	"github.com/vfg2006/implantacao-api/pkg/apiErrors"
)

// Analytics retorna o payload completo da aba de analytics do painel
func Analytics(service analyzing.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response, err := service.Analytics(r.Context())
		if err != nil {
			logrus.WithError(err).Error("Erro ao montar analytics")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao montar analytics", nil)
			return
		}

		writeJSON(w, response)
	}
}
