package handler

import (
	"net/http"

	"github.com/vfg2006/implantacao-api/internal/api/handler/router"
	"github.com/vfg2006/implantacao-api/internal/usecases/analyzing"
	"github.com/vfg2006/implantacao-api/internal/usecases/editing"
	"github.com/vfg2006/implantacao-api/internal/usecases/ruling"
	"github.com/vfg2006/implantacao-api/internal/usecases/syncing"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Implantacao(
	aggregator analyzing.Aggregator,
	editor editing.Service,
	syncService syncing.Service,
) []router.Route {
	return []router.Route{
		{
			Path:    "/implantacao/list",
			Method:  http.MethodGet,
			Handler: ListProjects(aggregator),
		},
		{
			Path:    "/implantacao/sync",
			Method:  http.MethodPost,
			Handler: SyncProjects(syncService),
		},
		{
			Path:    "/implantacao/projects/:id",
			Method:  http.MethodPut,
			Handler: UpdateProject(editor),
		},
		{
			Path:    "/implantacao/kpi-cards",
			Method:  http.MethodGet,
			Handler: KPICards(aggregator),
		},
		{
			Path:    "/implantacao/analytics",
			Method:  http.MethodGet,
			Handler: Analytics(aggregator),
		},
	}
}

func Integracao(aggregator analyzing.Aggregator, syncService syncing.Service) []router.Route {
	return []router.Route{
		{
			Path:    "/integracao/list",
			Method:  http.MethodGet,
			Handler: ListIntegrations(aggregator),
		},
		{
			Path:    "/integracao/sync",
			Method:  http.MethodPost,
			Handler: SyncIntegrations(syncService),
		},
	}
}

func ScoringRules(store ruling.RulesStore) []router.Route {
	return []router.Route{
		{
			Path:    "/api/scoring/rules",
			Method:  http.MethodGet,
			Handler: GetScoringRules(store),
		},
		{
			Path:    "/api/scoring/rules",
			Method:  http.MethodPut,
			Handler: UpdateScoringRules(store),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
