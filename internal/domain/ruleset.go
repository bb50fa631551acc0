package domain

import (
	"fmt"
	"math"
)

// weightSumTolerance é a tolerância numérica para a soma dos pesos
const weightSumTolerance = 1e-9

// Threshold é um par (limite superior, pontuação) de uma tabela de faixas.
// A última entrada também cobre valores acima do seu limite (faixa aberta).
type Threshold struct {
	UpperBound float64 `json:"upperBound"`
	Score      float64 `json:"score"`
}

// RiskWeights são os pesos dos pilares do score de risco (soma 1.0)
type RiskWeights struct {
	Prazo      float64 `json:"prazo"`
	Idle       float64 `json:"idle"`
	Financeiro float64 `json:"financeiro"`
	Qualidade  float64 `json:"qualidade"`
}

// PerformanceWeights são os pesos dos pilares do score de performance (soma 1.0)
type PerformanceWeights struct {
	Volume     float64 `json:"volume"`
	OTD        float64 `json:"otd"`
	Qualidade  float64 `json:"qualidade"`
	Eficiencia float64 `json:"eficiencia"`
}

// OpWeights são os multiplicadores operacionais por tipo de loja
type OpWeights struct {
	Matriz float64 `json:"matriz"`
	Filial float64 `json:"filial"`
}

// LoadLevels são os limites percentuais de classificação de carga de trabalho
type LoadLevels struct {
	Normal float64 `json:"normal"`
	Alto   float64 `json:"alto"`
}

// RuleSet é a configuração de pesos e faixas lida por todos os scorers.
// É versionada e trocada atomicamente pelo Rules Store; cada passada de
// cálculo usa um snapshot consistente.
type RuleSet struct {
	Version            int                `json:"version"`
	RiskWeights        RiskWeights        `json:"riskWeights"`
	PrazoThresholds    []Threshold        `json:"prazoThresholds"`
	IdleThresholds     []Threshold        `json:"idleThresholds"`
	PerformanceWeights PerformanceWeights `json:"performanceWeights"`
	OpWeights          OpWeights          `json:"opWeights"`
	LoadLevels         LoadLevels         `json:"loadLevels"`
}

// DefaultRuleSet retorna o conjunto de regras usado na inicialização do serviço
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		Version: 1,
		RiskWeights: RiskWeights{
			Prazo:      0.4,
			Idle:       0.3,
			Financeiro: 0.2,
			Qualidade:  0.1,
		},
		PrazoThresholds: []Threshold{
			{UpperBound: 0.5, Score: 10},
			{UpperBound: 0.8, Score: 40},
			{UpperBound: 1.0, Score: 70},
			{UpperBound: 999, Score: 100},
		},
		IdleThresholds: []Threshold{
			{UpperBound: 3, Score: 0},
			{UpperBound: 7, Score: 30},
			{UpperBound: 14, Score: 60},
			{UpperBound: 999, Score: 100},
		},
		PerformanceWeights: PerformanceWeights{
			Volume:     0.35,
			OTD:        0.30,
			Qualidade:  0.20,
			Eficiencia: 0.15,
		},
		OpWeights: OpWeights{
			Matriz: 1.5,
			Filial: 1.0,
		},
		LoadLevels: LoadLevels{
			Normal: 70,
			Alto:   100,
		},
	}
}

// Validate verifica as invariantes de construção do RuleSet.
// Um RuleSet inválido nunca substitui o vigente.
func (r *RuleSet) Validate() error {
	riskSum := r.RiskWeights.Prazo + r.RiskWeights.Idle + r.RiskWeights.Financeiro + r.RiskWeights.Qualidade
	if math.Abs(riskSum-1.0) > weightSumTolerance {
		return fmt.Errorf("pesos de risco devem somar 1.0, soma atual: %.6f", riskSum)
	}

	perfSum := r.PerformanceWeights.Volume + r.PerformanceWeights.OTD + r.PerformanceWeights.Qualidade + r.PerformanceWeights.Eficiencia
	if math.Abs(perfSum-1.0) > weightSumTolerance {
		return fmt.Errorf("pesos de performance devem somar 1.0, soma atual: %.6f", perfSum)
	}

	if err := validateThresholds("prazoThresholds", r.PrazoThresholds); err != nil {
		return err
	}
	if err := validateThresholds("idleThresholds", r.IdleThresholds); err != nil {
		return err
	}

	if r.OpWeights.Matriz < 0 || r.OpWeights.Filial < 0 {
		return fmt.Errorf("pesos operacionais não podem ser negativos")
	}

	if r.LoadLevels.Normal <= 0 || r.LoadLevels.Alto <= r.LoadLevels.Normal {
		return fmt.Errorf("níveis de carga devem satisfazer 0 < NORMAL < ALTO")
	}

	return nil
}

// validateThresholds verifica limites ascendentes e pontuações não decrescentes
func validateThresholds(name string, thresholds []Threshold) error {
	if len(thresholds) == 0 {
		return fmt.Errorf("%s: tabela de faixas não pode ser vazia", name)
	}

	for i := 1; i < len(thresholds); i++ {
		if thresholds[i].UpperBound <= thresholds[i-1].UpperBound {
			return fmt.Errorf("%s: limites devem ser estritamente ascendentes (posição %d)", name, i)
		}
		if thresholds[i].Score < thresholds[i-1].Score {
			return fmt.Errorf("%s: pontuações devem ser não decrescentes (posição %d)", name, i)
		}
	}

	return nil
}

// Clone retorna uma cópia profunda do RuleSet
func (r *RuleSet) Clone() *RuleSet {
	clone := *r

	clone.PrazoThresholds = make([]Threshold, len(r.PrazoThresholds))
	copy(clone.PrazoThresholds, r.PrazoThresholds)

	clone.IdleThresholds = make([]Threshold, len(r.IdleThresholds))
	copy(clone.IdleThresholds, r.IdleThresholds)

	return &clone
}
