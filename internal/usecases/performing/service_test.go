package performing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/implantacao-api/internal/domain"
)

func doneProject(implantador string, tipoLoja domain.StoreType, fim, previsao time.Time, retrabalho bool) *domain.Project {
	inicio := fim.AddDate(0, 0, -30)
	return &domain.Project{
		Status:         domain.ProjectStatusDone,
		Implantador:    implantador,
		TipoLoja:       tipoLoja,
		DataInicio:     &inicio,
		DataPrevisao:   &previsao,
		DataFim:        &fim,
		TeveRetrabalho: retrabalho,
	}
}

func wipProject(implantador string, tipoLoja domain.StoreType) *domain.Project {
	inicio := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Project{
		Status:      domain.ProjectStatusInProgress,
		Implantador: implantador,
		TipoLoja:    tipoLoja,
		DataInicio:  &inicio,
	}
}

func TestRankImplementers(t *testing.T) {
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)
	period := CurrentMonth(now)
	rules := domain.DefaultRuleSet()
	service := NewService(10)

	fimNoPrazo := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	previsaoFolgada := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	previsaoEstourada := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

	t.Run("Conclusões fora do período não contam", func(t *testing.T) {
		foraDoPeriodo := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
		projects := []*domain.Project{
			doneProject("ana", domain.StoreTypeFilial, foraDoPeriodo, previsaoFolgada, false),
			wipProject("ana", domain.StoreTypeFilial),
		}

		stats := service.RankImplementers(projects, rules, period, now)

		assert.Len(t, stats, 1)
		assert.Equal(t, 0, stats[0].Done)
		assert.Equal(t, 1, stats[0].WIP)
	})

	t.Run("Taxas de OTD e qualidade refletem as conclusões", func(t *testing.T) {
		projects := []*domain.Project{
			doneProject("bruno", domain.StoreTypeFilial, fimNoPrazo, previsaoFolgada, false),
			doneProject("bruno", domain.StoreTypeFilial, fimNoPrazo, previsaoEstourada, true),
		}

		stats := service.RankImplementers(projects, rules, period, now)

		assert.Len(t, stats, 1)
		assert.Equal(t, 2, stats[0].Done)
		assert.Equal(t, 0.5, stats[0].OTDRate)
		assert.Equal(t, 0.5, stats[0].QualityRate)
	})

	t.Run("Loja matriz pesa mais no volume", func(t *testing.T) {
		projects := []*domain.Project{
			doneProject("carla", domain.StoreTypeMatriz, fimNoPrazo, previsaoFolgada, false),
			doneProject("diego", domain.StoreTypeFilial, fimNoPrazo, previsaoFolgada, false),
		}

		stats := service.RankImplementers(projects, rules, period, now)

		byName := make(map[string]domain.ImplementerStat)
		for _, s := range stats {
			byName[s.Implantador] = s
		}

		assert.Equal(t, 1.5, byName["carla"].Volume)
		assert.Equal(t, 1.0, byName["diego"].Volume)
		assert.Greater(t, byName["carla"].PerformanceScore, byName["diego"].PerformanceScore)
	})

	t.Run("Ranking é determinístico com empate por volume e nome", func(t *testing.T) {
		projects := []*domain.Project{
			doneProject("zeca", domain.StoreTypeFilial, fimNoPrazo, previsaoFolgada, false),
			doneProject("ana", domain.StoreTypeFilial, fimNoPrazo, previsaoFolgada, false),
		}

		first := service.RankImplementers(projects, rules, period, now)
		second := service.RankImplementers(projects, rules, period, now)

		assert.Equal(t, first, second)
		// Scores e volumes idênticos: desempate alfabético
		assert.Equal(t, "ana", first[0].Implantador)
		assert.Equal(t, "zeca", first[1].Implantador)
	})

	t.Run("Projetos sem implantador são ignorados", func(t *testing.T) {
		projects := []*domain.Project{
			doneProject("", domain.StoreTypeFilial, fimNoPrazo, previsaoFolgada, false),
		}

		stats := service.RankImplementers(projects, rules, period, now)
		assert.Empty(t, stats)
	})
}

func TestClassifyLoad(t *testing.T) {
	rules := domain.DefaultRuleSet()
	service := NewService(10)

	tests := []struct {
		name        string
		wipWeighted float64
		expectedPct float64
		expected    domain.LoadLevel
	}{
		{"Carga baixa", 2, 20, domain.LoadLevelBaixo},
		{"Carga normal", 6, 60, domain.LoadLevelNormal},
		{"Carga no limite normal", 7, 70, domain.LoadLevelNormal},
		{"Zona de transição fica sem rótulo", 8.5, 85, domain.LoadLevelNone},
		{"Sobrecarga acima do limite alto", 12, 120, domain.LoadLevelSobrecarga},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct, level := service.ClassifyLoad(tt.wipWeighted, rules)
			assert.Equal(t, tt.expectedPct, pct)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestClassifyLoadSemCapacidade(t *testing.T) {
	service := NewService(0)

	pct, level := service.ClassifyLoad(5, domain.DefaultRuleSet())
	assert.Equal(t, 0.0, pct)
	assert.Equal(t, domain.LoadLevelNone, level)
}

func TestCurrentMonth(t *testing.T) {
	now := time.Date(2024, 6, 20, 15, 30, 0, 0, time.UTC)
	period := CurrentMonth(now)

	assert.True(t, period.Contains(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, period.Contains(time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC)))
}
