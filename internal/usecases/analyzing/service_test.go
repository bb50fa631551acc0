package analyzing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/implantacao-api/infrastructure/repository/mocks"
	"github.com/vfg2006/implantacao-api/internal/domain"
	"github.com/vfg2006/implantacao-api/internal/usecases/performing"
	"github.com/vfg2006/implantacao-api/internal/usecases/ruling"
	"github.com/vfg2006/implantacao-api/internal/usecases/scoring"
	"go.uber.org/mock/gomock"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func newTestService(t *testing.T) (Aggregator, *mocks.MockProjectRepository, *mocks.MockIntegrationRecordRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	projectRepo := mocks.NewMockProjectRepository(ctrl)
	integrationRepo := mocks.NewMockIntegrationRecordRepository(ctrl)

	service := NewService(
		projectRepo,
		integrationRepo,
		ruling.NewStore(),
		scoring.NewService(scoring.NewPacePredictor()),
		performing.NewService(10),
	)

	return service, projectRepo, integrationRepo
}

func TestListProjects(t *testing.T) {
	service, projectRepo, _ := newTestService(t)

	now := time.Now()
	start := now.AddDate(0, 0, -30)

	projectRepo.EXPECT().
		List(gomock.Any()).
		Return([]*domain.Project{
			{
				ID:             "p1",
				CustomID:       "LOJA-1",
				Status:         domain.ProjectStatusInProgress,
				DataInicio:     &start,
				LastActivityAt: timePtr(now.AddDate(0, 0, -5)),
				TempoContrato:  90,
			},
		}, nil)

	projects, err := service.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)

	// Campos derivados preenchidos na hora
	assert.Equal(t, 5, projects[0].IdleDays)
	assert.Equal(t, 30, projects[0].DiasEmTransito)
	assert.Greater(t, projects[0].RiskScore, 0)
	assert.NotEmpty(t, projects[0].AIRiskLevel)
}

func TestKPICards(t *testing.T) {
	service, projectRepo, _ := newTestService(t)

	fim := time.Now().AddDate(0, 0, -10)

	projectRepo.EXPECT().
		List(gomock.Any()).
		Return([]*domain.Project{
			{Status: domain.ProjectStatusDone, DataFim: &fim, ValorMensalidade: 500},
			{Status: domain.ProjectStatusInProgress, ValorMensalidade: 300},
			{Status: domain.ProjectStatusInProgress, ValorMensalidade: 200},
			{Status: domain.ProjectStatusNotStarted, ValorMensalidade: 100},
			// Cancelado fica fora do backlog
			{Status: domain.ProjectStatusInProgress, FinanceiroStatus: domain.FinanceiroCancelado, ValorMensalidade: 999},
		}, nil)

	cards, err := service.KPICards(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, cards.WIPCount)
	assert.Equal(t, 1, cards.DoneCount)
	assert.Equal(t, 500.0, cards.MRRDone)
	assert.Equal(t, 600.0, cards.MRRBacklog)
}

func TestAnalytics(t *testing.T) {
	service, projectRepo, _ := newTestService(t)

	now := time.Now()
	start := now.AddDate(0, 0, -30)
	// Sempre dentro do mês corrente, independente do dia de execução
	fimNoMes := time.Date(now.Year(), now.Month(), 1, 12, 0, 0, 0, now.Location())
	entered := now.AddDate(0, 0, -20)
	left := now.AddDate(0, 0, -15)

	projectRepo.EXPECT().
		List(gomock.Any()).
		Return([]*domain.Project{
			{
				ID:               "p1",
				CustomID:         "LOJA-1",
				Name:             "Loja Ativa",
				Status:           domain.ProjectStatusInProgress,
				Implantador:      "ana",
				DataInicio:       &start,
				LastActivityAt:   timePtr(now.AddDate(0, 0, -2)),
				TempoContrato:    90,
				ValorMensalidade: 400,
				StepEvents: []domain.StepEvent{
					{StepName: "cadastro", EnteredAt: entered, LeftAt: &left},
				},
			},
			{
				ID:               "p2",
				CustomID:         "LOJA-2",
				Name:             "Loja Sem Contrato",
				Status:           domain.ProjectStatusInProgress,
				DataInicio:       &start,
				TempoContrato:    0,
				ValorMensalidade: 100,
			},
			{
				ID:               "p3",
				CustomID:         "LOJA-3",
				Name:             "Loja Entregue",
				Status:           domain.ProjectStatusDone,
				Implantador:      "ana",
				DataInicio:       &start,
				DataPrevisao:     timePtr(now.AddDate(0, 0, 5)),
				DataFim:          &fimNoMes,
				TempoContrato:    60,
				ValorMensalidade: 700,
			},
		}, nil)

	response, err := service.Analytics(context.Background())
	require.NoError(t, err)

	// Projeto sem contrato é reportado e excluído da dispersão de risco
	assert.Equal(t, []string{"LOJA-2"}, response.ExcludedProjects)

	require.Len(t, response.RiskData, 1)
	assert.Equal(t, "Loja Ativa", response.RiskData[0].Name)
	assert.Equal(t, 400.0, response.RiskData[0].MRR)

	// KPIs do mês corrente
	assert.Equal(t, 1, response.KPIData.ThroughputPeriod)
	assert.Equal(t, 700.0, response.KPIData.MRRDonePeriod)

	// Performance tem a implantadora com uma entrega no período
	require.NotEmpty(t, response.PerformanceData)
	assert.Equal(t, "ana", response.PerformanceData[0].Implantador)

	// Gargalo agregado da única etapa com histórico
	require.Len(t, response.BottleneckData, 1)
	assert.Equal(t, "cadastro", response.BottleneckData[0].StepName)
	assert.Equal(t, 5.0, response.BottleneckData[0].TotalDays)
	assert.Equal(t, 0, response.BottleneckData[0].Reopens)

	// Janela de forecast: 6 meses para trás, corrente, 3 para frente
	require.Len(t, response.ForecastData, 10)
	currentKey := now.Format("01-2006")

	var currentPoint *domain.ForecastPoint
	for i := range response.ForecastData {
		if response.ForecastData[i].Month == currentKey {
			currentPoint = &response.ForecastData[i]
		}
	}
	require.NotNil(t, currentPoint)
	assert.Equal(t, 700.0, currentPoint.Realized)

	assert.Equal(t, 1, response.RulesVersion)
	assert.False(t, response.GeneratedAt.IsZero())
}

func TestAnalyticsReabertuasDeEtapa(t *testing.T) {
	service, projectRepo, _ := newTestService(t)

	now := time.Now()
	start := now.AddDate(0, 0, -40)
	e1 := now.AddDate(0, 0, -30)
	l1 := now.AddDate(0, 0, -25)
	e2 := now.AddDate(0, 0, -10)
	l2 := now.AddDate(0, 0, -8)

	projectRepo.EXPECT().
		List(gomock.Any()).
		Return([]*domain.Project{
			{
				ID:            "p1",
				CustomID:      "LOJA-1",
				Name:          "Loja Reaberta",
				Status:        domain.ProjectStatusInProgress,
				DataInicio:    &start,
				TempoContrato: 90,
				StepEvents: []domain.StepEvent{
					{StepName: "treinamento", EnteredAt: e1, LeftAt: &l1},
					{StepName: "treinamento", EnteredAt: e2, LeftAt: &l2},
				},
			},
		}, nil)

	response, err := service.Analytics(context.Background())
	require.NoError(t, err)

	require.Len(t, response.BottleneckData, 1)
	row := response.BottleneckData[0]
	assert.Equal(t, "treinamento", row.StepName)
	assert.Equal(t, 7.0, row.TotalDays)
	assert.Equal(t, 3.5, row.AvgDays)
	assert.Equal(t, 1, row.Reopens)
}

func TestAnalyticsExclusaoComCustomIDVazio(t *testing.T) {
	// A exclusão é chaveada pelo id interno: um projeto inválido sem
	// customId não derruba outros projetos sem customId da dispersão
	service, projectRepo, _ := newTestService(t)

	now := time.Now()
	start := now.AddDate(0, 0, -20)

	projectRepo.EXPECT().
		List(gomock.Any()).
		Return([]*domain.Project{
			{
				ID:            "p1",
				CustomID:      "",
				Name:          "Loja Sem Contrato",
				Status:        domain.ProjectStatusInProgress,
				DataInicio:    &start,
				TempoContrato: 0,
			},
			{
				ID:            "p2",
				CustomID:      "",
				Name:          "Loja Válida",
				Status:        domain.ProjectStatusInProgress,
				DataInicio:    &start,
				TempoContrato: 90,
			},
		}, nil)

	response, err := service.Analytics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"p1"}, response.ExcludedProjects)

	require.Len(t, response.RiskData, 1)
	assert.Equal(t, "Loja Válida", response.RiskData[0].Name)
}

func TestListIntegrations(t *testing.T) {
	service, _, integrationRepo := newTestService(t)

	now := time.Now()

	integrationRepo.EXPECT().
		List(gomock.Any()).
		Return([]*domain.IntegrationRecord{
			{
				ID:             "i1",
				Name:           "Integração ERP",
				Status:         domain.ProjectStatusInProgress,
				LastActivityAt: timePtr(now.AddDate(0, 0, -7)),
			},
		}, nil)

	records, err := service.ListIntegrations(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 7, records[0].IdleDays)
}
