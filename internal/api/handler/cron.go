package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/implantacao-api/internal/scheduler"
	"github.com/vfg2006/implantacao-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeImplantacao = "implantacao"
	CronJobTypeIntegracao  = "integracao"
	CronJobTypeAll         = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	ImplantacaoSyncService *scheduler.ImplantacaoSyncService
	IntegracaoSyncService  *scheduler.IntegracaoSyncService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeImplantacao:
			if services.ImplantacaoSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização de implantações não disponível", nil)
				return
			}
			services.ImplantacaoSyncService.TriggerManualSync()

		case CronJobTypeIntegracao:
			if services.IntegracaoSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização de integrações não disponível", nil)
				return
			}
			services.IntegracaoSyncService.TriggerManualSync()

		case CronJobTypeAll:
			if services.ImplantacaoSyncService != nil {
				services.ImplantacaoSyncService.TriggerManualSync()
			}
			if services.IntegracaoSyncService != nil {
				services.IntegracaoSyncService.TriggerManualSync()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job desconhecido", nil)
			return
		}

		logrus.WithField("cron_type", cronType).Info("Cron job disparada manualmente")

		writeJSON(w, map[string]string{
			"status": "started",
			"type":   cronType,
		})
	}
}

// GetCronStatus retorna o status atual dos agendadores
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any)

		if services.ImplantacaoSyncService != nil {
			status["implantacao"] = services.ImplantacaoSyncService.GetStatus()
		}
		if services.IntegracaoSyncService != nil {
			status["integracao"] = services.IntegracaoSyncService.GetStatus()
		}

		writeJSON(w, status)
	}
}
