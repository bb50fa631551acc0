// Package performing calcula o ranking de performance dos implantadores a
// partir dos projetos concluídos e classifica a carga de trabalho de cada um
package performing

import (
	"sort"
	"time"

	"github.com/vfg2006/implantacao-api/internal/domain"
	"github.com/vfg2006/implantacao-api/internal/usecases/deriving"
	"github.com/vfg2006/implantacao-api/pkg/utils"
)

type PerformanceScorer interface {
	RankImplementers(projects []*domain.Project, rules *domain.RuleSet, period Period, now time.Time) []domain.ImplementerStat
}

// Period delimita o intervalo de apuração: início inclusivo, fim exclusivo
type Period struct {
	Start time.Time
	End   time.Time
}

// CurrentMonth retorna o período padrão de apuração: o mês calendário atual
func CurrentMonth(now time.Time) Period {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Period{
		Start: start,
		End:   start.AddDate(0, 1, 0),
	}
}

// Contains verifica se uma data cai dentro do período
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

type Service struct {
	// capacityBaseline é a capacidade de referência de projetos ponderados
	// por implantador, usada no percentual de carga
	capacityBaseline float64
}

func NewService(capacityBaseline float64) *Service {
	return &Service{
		capacityBaseline: capacityBaseline,
	}
}

// OpWeight retorna o multiplicador operacional do projeto conforme o tipo de loja
func OpWeight(p *domain.Project, rules *domain.RuleSet) float64 {
	if p.TipoLoja == domain.StoreTypeMatriz {
		return rules.OpWeights.Matriz
	}
	return rules.OpWeights.Filial
}

// implementerAccumulator acumula as métricas brutas de um implantador
type implementerAccumulator struct {
	done        int
	wip         int
	wipWeighted float64
	volume      float64
	onTime      int
	noRework    int
	cycleDays   float64
}

// RankImplementers calcula e ordena as estatísticas de todos os
// implantadores. A ordenação é estável e determinística: score
// decrescente, empate por volume bruto decrescente e nome alfabético.
func (s *Service) RankImplementers(
	projects []*domain.Project,
	rules *domain.RuleSet,
	period Period,
	now time.Time,
) []domain.ImplementerStat {
	accumulators := make(map[string]*implementerAccumulator)

	acc := func(name string) *implementerAccumulator {
		a, ok := accumulators[name]
		if !ok {
			a = &implementerAccumulator{}
			accumulators[name] = a
		}
		return a
	}

	for _, p := range projects {
		if p.Implantador == "" {
			continue
		}

		switch p.Status {
		case domain.ProjectStatusDone:
			if p.DataFim == nil || !period.Contains(*p.DataFim) {
				continue
			}

			a := acc(p.Implantador)
			a.done++
			a.volume += OpWeight(p, rules)
			a.cycleDays += float64(deriving.DiasEmTransito(p, now))

			if p.DataPrevisao != nil && !p.DataFim.After(*p.DataPrevisao) {
				a.onTime++
			}
			if !p.TeveRetrabalho {
				a.noRework++
			}

		case domain.ProjectStatusInProgress:
			a := acc(p.Implantador)
			a.wip++
			a.wipWeighted += OpWeight(p, rules)
		}
	}

	stats := make([]domain.ImplementerStat, 0, len(accumulators))
	maxVolume := 0.0
	cycleAverages := make([]float64, 0, len(accumulators))

	for name, a := range accumulators {
		stat := domain.ImplementerStat{
			Implantador: name,
			Done:        a.done,
			WIP:         a.wip,
			Volume:      a.volume,
		}

		if a.done > 0 {
			stat.OTDRate = utils.RoundWithTwoDecimalPlace(float64(a.onTime) / float64(a.done))
			stat.QualityRate = utils.RoundWithTwoDecimalPlace(float64(a.noRework) / float64(a.done))
			stat.AvgCycleDays = utils.RoundWithTwoDecimalPlace(a.cycleDays / float64(a.done))
			cycleAverages = append(cycleAverages, stat.AvgCycleDays)
		}

		if a.volume > maxVolume {
			maxVolume = a.volume
		}

		stat.WorkloadPct, stat.LoadLevel = s.ClassifyLoad(a.wipWeighted, rules)

		stats = append(stats, stat)
	}

	teamMedianCycle := median(cycleAverages)

	for i := range stats {
		stats[i].PerformanceScore = utils.RoundWithTwoDecimalPlace(
			compositeScore(&stats[i], rules, maxVolume, teamMedianCycle),
		)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].PerformanceScore != stats[j].PerformanceScore {
			return stats[i].PerformanceScore > stats[j].PerformanceScore
		}
		if stats[i].Volume != stats[j].Volume {
			return stats[i].Volume > stats[j].Volume
		}
		return stats[i].Implantador < stats[j].Implantador
	})

	return stats
}

// compositeScore combina os pilares normalizados (0-1) com os pesos do RuleSet
func compositeScore(stat *domain.ImplementerStat, rules *domain.RuleSet, maxVolume, teamMedianCycle float64) float64 {
	normalizedVolume := 0.0
	if maxVolume > 0 {
		normalizedVolume = stat.Volume / maxVolume
	}

	// Eficiência normalizada pela mediana do time: quem fecha no ritmo
	// mediano pontua 1.0, mais lentos decaem proporcionalmente
	efficiency := 0.0
	if stat.AvgCycleDays > 0 && teamMedianCycle > 0 {
		efficiency = teamMedianCycle / stat.AvgCycleDays
		if efficiency > 1 {
			efficiency = 1
		}
	}

	return rules.PerformanceWeights.Volume*normalizedVolume +
		rules.PerformanceWeights.OTD*stat.OTDRate +
		rules.PerformanceWeights.Qualidade*stat.QualityRate +
		rules.PerformanceWeights.Eficiencia*efficiency
}

// Limite inferior da faixa NORMAL de carga de trabalho
const loadLevelBaixoBound = 40

// ClassifyLoad converte a carga ponderada em percentual e nível. A faixa
// entre NORMAL e ALTO é zona de transição e fica sem rótulo.
func (s *Service) ClassifyLoad(wipWeighted float64, rules *domain.RuleSet) (float64, domain.LoadLevel) {
	if s.capacityBaseline <= 0 {
		return 0, domain.LoadLevelNone
	}

	pct := utils.RoundWithTwoDecimalPlace(wipWeighted / s.capacityBaseline * 100)

	switch {
	case pct < loadLevelBaixoBound:
		return pct, domain.LoadLevelBaixo
	case pct <= rules.LoadLevels.Normal:
		return pct, domain.LoadLevelNormal
	case pct > rules.LoadLevels.Alto:
		return pct, domain.LoadLevelSobrecarga
	default:
		return pct, domain.LoadLevelNone
	}
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
