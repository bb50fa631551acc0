// Package scoring calcula o score de risco 0-100 de cada implantação a
// partir dos pilares ponderados do RuleSet e aplica a camada preditiva
package scoring

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vfg2006/implantacao-api/internal/domain"
	"github.com/vfg2006/implantacao-api/internal/usecases/deriving"
)

// Limites de nível de risco derivados do score composto
const (
	riskLevelAltoThreshold    = 50
	riskLevelCriticoThreshold = 80

	// Dias de atraso previsto a partir dos quais o nível vira CRITICO
	criticalDaysLate = 7
)

// FinanceiroSeverity é o mapa fixo de severidade por situação financeira.
// É política do produto, não é configurável pelo RuleSet nesta versão.
var FinanceiroSeverity = map[domain.FinanceiroStatus]float64{
	domain.FinanceiroEmDia:     0,
	domain.FinanceiroDevendo:   70,
	domain.FinanceiroCancelado: 100,
}

// ErrInvalidContract indica configuração inválida do registro: sem tempo de
// contrato positivo o pilar de prazo é indefinido e o projeto fica fora dos
// agregados baseados em prazo (reportado, não fatal para o lote)
var ErrInvalidContract = errors.New("tempo de contrato deve ser positivo")

// Result é o resultado do cálculo de risco de um projeto
type Result struct {
	RiskScore   int
	AIRiskLevel domain.RiskLevel

	PrazoSubscore      float64
	IdleSubscore       float64
	FinanceiroSubscore float64
	QualidadeSubscore  float64

	DaysLatePredicted float64

	// Boost ordena filas de prioridade; nunca é persistido
	Boost float64
}

type RiskScorer interface {
	ScoreProject(p *domain.Project, rules *domain.RuleSet, now time.Time) (*Result, error)
}

type Service struct {
	predictor Predictor
}

func NewService(predictor Predictor) *Service {
	return &Service{
		predictor: predictor,
	}
}

// ScoreProject calcula o score de risco de um projeto com um snapshot de
// regras. Função pura dos argumentos, segura para execução concorrente.
func (s *Service) ScoreProject(p *domain.Project, rules *domain.RuleSet, now time.Time) (*Result, error) {
	if p.TempoContrato <= 0 {
		return nil, fmt.Errorf("%w: projeto %s", ErrInvalidContract, p.CustomID)
	}

	result := &Result{}

	// Pilar prazo: percentual do contrato já consumido
	diasEmTransito := deriving.DiasEmTransito(p, now)
	pctConsumed := float64(diasEmTransito) / float64(p.TempoContrato)
	if pctConsumed < 0 {
		pctConsumed = 0
	}
	result.PrazoSubscore = LookupScore(rules.PrazoThresholds, pctConsumed)

	// Pilar ociosidade
	idleDays := deriving.IdleDays(p, now)
	result.IdleSubscore = LookupScore(rules.IdleThresholds, float64(idleDays))

	// Pilar financeiro: mapa fixo de severidade
	result.FinanceiroSubscore = FinanceiroSeverity[p.FinanceiroStatus]

	// Pilar qualidade: retrabalho pontua, salvo entrega com qualidade
	// declarada em projeto ainda não concluído
	if p.DeliveredWithQuality && p.Status != domain.ProjectStatusDone {
		result.QualidadeSubscore = 0
	} else if p.TeveRetrabalho {
		result.QualidadeSubscore = 100
	}

	composite := rules.RiskWeights.Prazo*result.PrazoSubscore +
		rules.RiskWeights.Idle*result.IdleSubscore +
		rules.RiskWeights.Financeiro*result.FinanceiroSubscore +
		rules.RiskWeights.Qualidade*result.QualidadeSubscore

	result.RiskScore = clampScore(int(math.Round(composite)))

	// Camada preditiva: atraso previsto sobrepõe o nível derivado do score
	result.DaysLatePredicted = s.predictor.DaysLate(p, now)
	result.AIRiskLevel = riskLevel(result.RiskScore, result.DaysLatePredicted)

	result.Boost = result.DaysLatePredicted*2 + result.IdleSubscore*0.5

	return result, nil
}

func riskLevel(score int, daysLate float64) domain.RiskLevel {
	switch {
	case daysLate > criticalDaysLate:
		return domain.RiskLevelCritico
	case daysLate > 0:
		return domain.RiskLevelAlto
	case score > riskLevelCriticoThreshold:
		return domain.RiskLevelCritico
	case score > riskLevelAltoThreshold:
		return domain.RiskLevelAlto
	default:
		return domain.RiskLevelNormal
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
