package deriving

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/implantacao-api/internal/domain"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestIdleDays(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		project  *domain.Project
		expected int
	}{
		{
			name: "Conta a partir da última atividade",
			project: &domain.Project{
				LastActivityAt: timePtr(now.AddDate(0, 0, -5)),
			},
			expected: 5,
		},
		{
			name: "Sem atividade registrada conta a partir da data de início",
			project: &domain.Project{
				DataInicio: timePtr(now.AddDate(0, 0, -12)),
			},
			expected: 12,
		},
		{
			name:     "Sem nenhuma referência retorna zero",
			project:  &domain.Project{},
			expected: 0,
		},
		{
			name: "Atividade no futuro não gera dias negativos",
			project: &domain.Project{
				LastActivityAt: timePtr(now.AddDate(0, 0, 3)),
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IdleDays(tt.project, now))
		})
	}
}

func TestDiasEmTransito(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		project  *domain.Project
		expected int
	}{
		{
			name: "Projeto em andamento conta até agora",
			project: &domain.Project{
				DataInicio: timePtr(now.AddDate(0, 0, -30)),
			},
			expected: 30,
		},
		{
			name: "Projeto concluído conta até a data de fim",
			project: &domain.Project{
				DataInicio: timePtr(now.AddDate(0, 0, -60)),
				DataFim:    timePtr(now.AddDate(0, 0, -15)),
			},
			expected: 45,
		},
		{
			name:     "Sem data de início retorna zero",
			project:  &domain.Project{},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DiasEmTransito(tt.project, now))
		})
	}
}

func TestForecast(t *testing.T) {
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("Previsão armazenada tem precedência", func(t *testing.T) {
		stored := start.AddDate(0, 0, 45)
		project := &domain.Project{
			DataInicio:    &start,
			DataPrevisao:  &stored,
			TempoContrato: 90,
		}

		forecast := Forecast(project)
		assert.Equal(t, stored, *forecast)
	})

	t.Run("Sem previsão armazenada calcula a partir do contrato", func(t *testing.T) {
		project := &domain.Project{
			DataInicio:    &start,
			TempoContrato: 90,
		}

		forecast := Forecast(project)
		assert.Equal(t, start.AddDate(0, 0, 90), *forecast)
	})

	t.Run("Sem data de início não há previsão", func(t *testing.T) {
		project := &domain.Project{TempoContrato: 90}
		assert.Nil(t, Forecast(project))
	})

	t.Run("Sem contrato positivo não há previsão", func(t *testing.T) {
		project := &domain.Project{DataInicio: &start}
		assert.Nil(t, Forecast(project))
	})
}

func TestApply(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, -20)

	project := &domain.Project{
		DataInicio:     &start,
		LastActivityAt: timePtr(now.AddDate(0, 0, -4)),
		TempoContrato:  60,
	}

	Apply(project, now)

	assert.Equal(t, 4, project.IdleDays)
	assert.Equal(t, 20, project.DiasEmTransito)
	assert.Equal(t, start.AddDate(0, 0, 60), *project.DataPrevisao)
}
