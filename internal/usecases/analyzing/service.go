// Package analyzing compõe os payloads agregados do painel: KPIs,
// ranking de performance, dispersão de risco, gargalos por etapa e
// forecast de MRR. Toda agregação roda sobre um único snapshot de
// projetos e de regras por requisição.
package analyzing

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/implantacao-api/infrastructure/repository"
	"github.com/vfg2006/implantacao-api/internal/domain"
	"github.com/vfg2006/implantacao-api/internal/usecases/deriving"
	"github.com/vfg2006/implantacao-api/internal/usecases/performing"
	"github.com/vfg2006/implantacao-api/internal/usecases/ruling"
	"github.com/vfg2006/implantacao-api/internal/usecases/scoring"
	"github.com/vfg2006/implantacao-api/pkg/utils"
)

const (
	forecastMonthsBack    = 6
	forecastMonthsForward = 3

	monthKeyLayout = "01-2006"
)

type Aggregator interface {
	Analytics(ctx context.Context) (*domain.AnalyticsResponse, error)
	KPICards(ctx context.Context) (*domain.KPICards, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)
	ListIntegrations(ctx context.Context) ([]*domain.IntegrationRecord, error)
}

type service struct {
	projectRepo     repository.ProjectRepository
	integrationRepo repository.IntegrationRecordRepository
	rulesStore      ruling.RulesStore
	riskScorer      scoring.RiskScorer
	perfScorer      *performing.Service
}

func NewService(
	projectRepo repository.ProjectRepository,
	integrationRepo repository.IntegrationRecordRepository,
	rulesStore ruling.RulesStore,
	riskScorer scoring.RiskScorer,
	perfScorer *performing.Service,
) Aggregator {
	return &service{
		projectRepo:     projectRepo,
		integrationRepo: integrationRepo,
		rulesStore:      rulesStore,
		riskScorer:      riskScorer,
		perfScorer:      perfScorer,
	}
}

// ListProjects retorna o conjunto de projetos com os campos derivados
// (idleDays, diasEmTransito, riskScore, aiRiskLevel) calculados na hora
func (s *service) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	now := time.Now()

	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar projetos")
	}

	rules := s.rulesStore.Snapshot()
	s.enrich(projects, rules, now)

	return projects, nil
}

// ListIntegrations retorna os registros do fluxo de integração com o
// idleDays derivado
func (s *service) ListIntegrations(ctx context.Context) ([]*domain.IntegrationRecord, error) {
	now := time.Now()

	records, err := s.integrationRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar registros de integração")
	}

	for _, record := range records {
		record.IdleDays = deriving.IdleDaysRecord(record, now)
	}

	return records, nil
}

// Analytics monta o payload completo da aba de analytics. Projetos com
// configuração inválida (tempo de contrato zerado) ficam fora dos
// agregados de prazo e são reportados em excludedProjects.
func (s *service) Analytics(ctx context.Context) (*domain.AnalyticsResponse, error) {
	now := time.Now()

	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar projetos")
	}

	rules := s.rulesStore.Snapshot()
	excluded := s.enrich(projects, rules, now)

	excludedIDs := make(map[string]struct{}, len(excluded))
	excludedLabels := make([]string, 0, len(excluded))
	for _, p := range excluded {
		excludedIDs[p.ID] = struct{}{}

		// customId pode ser vazio; o id interno identifica o registro
		label := p.CustomID
		if label == "" {
			label = p.ID
		}
		excludedLabels = append(excludedLabels, label)
	}

	period := performing.CurrentMonth(now)

	return &domain.AnalyticsResponse{
		KPIData:          kpiData(projects, period),
		PerformanceData:  s.perfScorer.RankImplementers(projects, rules, period, now),
		RiskData:         riskData(projects, excludedIDs),
		BottleneckData:   bottleneckData(projects, now),
		ForecastData:     forecastData(projects, now),
		ExcludedProjects: excludedLabels,
		RulesVersion:     rules.Version,
		GeneratedAt:      now,
	}, nil
}

// KPICards retorna os cartões do painel, calculados sobre o conjunto
// completo de projetos (sem recorte de período)
func (s *service) KPICards(ctx context.Context) (*domain.KPICards, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar projetos")
	}

	cards := &domain.KPICards{}
	for _, p := range projects {
		switch {
		case p.Status == domain.ProjectStatusDone:
			cards.DoneCount++
			cards.MRRDone += p.ValorMensalidade
		case p.IsActive():
			if p.Status == domain.ProjectStatusInProgress {
				cards.WIPCount++
			}
			cards.MRRBacklog += p.ValorMensalidade
		}
	}

	cards.MRRDone = utils.RoundWithTwoDecimalPlace(cards.MRRDone)
	cards.MRRBacklog = utils.RoundWithTwoDecimalPlace(cards.MRRBacklog)

	return cards, nil
}

// enrich aplica as métricas derivadas e o score de risco sobre cada
// projeto, no lugar. Retorna os projetos excluídos dos agregados de
// prazo por configuração inválida.
func (s *service) enrich(projects []*domain.Project, rules *domain.RuleSet, now time.Time) []*domain.Project {
	excluded := make([]*domain.Project, 0)

	for _, p := range projects {
		deriving.Apply(p, now)

		result, err := s.riskScorer.ScoreProject(p, rules, now)
		if err != nil {
			if errors.Is(err, scoring.ErrInvalidContract) {
				excluded = append(excluded, p)
				continue
			}

			logrus.WithFields(logrus.Fields{
				"project_id": p.ID,
			}).WithError(err).Warn("Erro ao calcular score de risco do projeto")
			continue
		}

		p.RiskScore = result.RiskScore
		p.AIRiskLevel = result.AIRiskLevel
	}

	return excluded
}

func kpiData(projects []*domain.Project, period performing.Period) domain.KPIData {
	data := domain.KPIData{}

	for _, p := range projects {
		switch {
		case p.Status == domain.ProjectStatusDone:
			if p.DataFim != nil && period.Contains(*p.DataFim) {
				data.ThroughputPeriod++
				data.MRRDonePeriod += p.ValorMensalidade
			}
		case p.IsActive():
			if p.Status == domain.ProjectStatusInProgress {
				data.WIPStores++
			}
			data.MRRBacklog += p.ValorMensalidade
		}
	}

	data.MRRDonePeriod = utils.RoundWithTwoDecimalPlace(data.MRRDonePeriod)
	data.MRRBacklog = utils.RoundWithTwoDecimalPlace(data.MRRBacklog)

	return data
}

// riskData produz um ponto por projeto ativo com score calculado.
// Projetos excluídos por configuração inválida ficam fora da dispersão.
func riskData(projects []*domain.Project, excludedIDs map[string]struct{}) []domain.RiskPoint {
	points := make([]domain.RiskPoint, 0)

	for _, p := range projects {
		if !p.IsActive() {
			continue
		}
		if _, ok := excludedIDs[p.ID]; ok {
			continue
		}

		points = append(points, domain.RiskPoint{
			Name:      p.Name,
			IdleDays:  p.IdleDays,
			RiskScore: p.RiskScore,
			MRR:       p.ValorMensalidade,
		})
	}

	return points
}

// bottleneckData agrega o tempo de permanência por etapa a partir do
// histórico de status vindo do quadro externo. Projetos sem histórico
// ficam fora deste agregado apenas.
func bottleneckData(projects []*domain.Project, now time.Time) []domain.BottleneckRow {
	type stepAccumulator struct {
		totalDays float64
		entries   int
		reopens   map[string]int // entradas por projeto, para contar reaberturas
	}

	steps := make(map[string]*stepAccumulator)
	order := make([]string, 0)

	for _, p := range projects {
		if len(p.StepEvents) == 0 {
			continue
		}

		for _, event := range p.StepEvents {
			acc, ok := steps[event.StepName]
			if !ok {
				acc = &stepAccumulator{reopens: make(map[string]int)}
				steps[event.StepName] = acc
				order = append(order, event.StepName)
			}

			// Intervalo em aberto conta até o instante do snapshot
			end := now
			if event.LeftAt != nil {
				end = *event.LeftAt
			}
			if end.After(event.EnteredAt) {
				acc.totalDays += end.Sub(event.EnteredAt).Hours() / 24
			}

			acc.entries++
			acc.reopens[p.ID]++
		}
	}

	rows := make([]domain.BottleneckRow, 0, len(order))
	for _, name := range order {
		acc := steps[name]

		reopens := 0
		for _, entries := range acc.reopens {
			if entries > 1 {
				reopens += entries - 1
			}
		}

		rows = append(rows, domain.BottleneckRow{
			StepName:  name,
			TotalDays: utils.RoundWithTwoDecimalPlace(acc.totalDays),
			AvgDays:   utils.RoundWithTwoDecimalPlace(acc.totalDays / float64(acc.entries)),
			Reopens:   reopens,
		})
	}

	return rows
}

// forecastData monta a janela rolante de MRR realizado versus projetado.
// Realizado soma os go-lives concluídos no mês; projetado soma as
// previsões de projetos ativos que caem no mês.
func forecastData(projects []*domain.Project, now time.Time) []domain.ForecastPoint {
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	start := currentMonth.AddDate(0, -forecastMonthsBack, 0)

	totalMonths := forecastMonthsBack + forecastMonthsForward + 1
	points := make([]domain.ForecastPoint, totalMonths)
	index := make(map[string]int, totalMonths)

	for i := 0; i < totalMonths; i++ {
		month := start.AddDate(0, i, 0)
		key := month.Format(monthKeyLayout)
		points[i] = domain.ForecastPoint{Month: key}
		index[key] = i
	}

	for _, p := range projects {
		if p.Status == domain.ProjectStatusDone {
			goLive := p.GoLiveDate()
			if goLive == nil {
				continue
			}
			if i, ok := index[goLive.Format(monthKeyLayout)]; ok {
				points[i].Realized += p.ValorMensalidade
			}
			continue
		}

		if !p.IsActive() {
			continue
		}

		forecast := deriving.Forecast(p)
		if forecast == nil {
			continue
		}
		if i, ok := index[forecast.Format(monthKeyLayout)]; ok {
			points[i].Projected += p.ValorMensalidade
		}
	}

	for i := range points {
		points[i].Realized = utils.RoundWithTwoDecimalPlace(points[i].Realized)
		points[i].Projected = utils.RoundWithTwoDecimalPlace(points[i].Projected)
	}

	return points
}
