package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/implantacao-api/internal/domain"
	"github.com/vfg2006/implantacao-api/internal/usecases/ruling"
	"github.com/vfg2006/implantacao-api/pkg/apiErrors"
)

// GetScoringRules retorna o RuleSet vigente
func GetScoringRules(store ruling.RulesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, store.Snapshot())
	}
}

// UpdateScoringRules valida e instala um novo RuleSet. Um conjunto
// inválido nunca substitui o vigente.
func UpdateScoringRules(store ruling.RulesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rules domain.RuleSet
		if err := json.NewDecoder(r.Body).Decode(&rules); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		updated, err := store.Update(&rules)
		if err != nil {
			logrus.WithError(err).Warn("RuleSet rejeitado na atualização")
			apiErrors.WriteError(w, apiErrors.ErrInvalidConfiguration, "Conjunto de regras inválido", err.Error())
			return
		}

		writeJSON(w, updated)
	}
}
