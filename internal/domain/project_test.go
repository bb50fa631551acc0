package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestProjectValidate(t *testing.T) {
	fim := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		project   Project
		wantField string
	}{
		{
			name: "Projeto consistente passa",
			project: Project{
				Status:          ProjectStatusInProgress,
				ConsiderarTempo: true,
			},
		},
		{
			name: "Exceção de SLA exige justificativa",
			project: Project{
				Status:          ProjectStatusInProgress,
				ConsiderarTempo: false,
			},
			wantField: "justificativaTempo",
		},
		{
			name: "Exceção de SLA com justificativa passa",
			project: Project{
				Status:             ProjectStatusInProgress,
				ConsiderarTempo:    false,
				JustificativaTempo: "loja em reforma",
			},
		},
		{
			name: "Mensalidade negativa é rejeitada",
			project: Project{
				Status:           ProjectStatusInProgress,
				ConsiderarTempo:  true,
				ValorMensalidade: -100,
			},
			wantField: "valorMensalidade",
		},
		{
			name: "Tempo de contrato negativo é rejeitado",
			project: Project{
				Status:          ProjectStatusInProgress,
				ConsiderarTempo: true,
				TempoContrato:   -30,
			},
			wantField: "tempoContrato",
		},
		{
			name: "Situação financeira desconhecida é rejeitada",
			project: Project{
				Status:           ProjectStatusInProgress,
				ConsiderarTempo:  true,
				FinanceiroStatus: "PENDENTE",
			},
			wantField: "financeiroStatus",
		},
		{
			name: "Situação financeira conhecida passa",
			project: Project{
				Status:           ProjectStatusInProgress,
				ConsiderarTempo:  true,
				FinanceiroStatus: FinanceiroDevendo,
			},
		},
		{
			name: "Data de fim sem status DONE é rejeitada",
			project: Project{
				Status:          ProjectStatusInProgress,
				ConsiderarTempo: true,
				DataFim:         timePtr(fim),
			},
			wantField: "dataFim",
		},
		{
			name: "Status DONE sem data de fim é rejeitado",
			project: Project{
				Status:          ProjectStatusDone,
				ConsiderarTempo: true,
			},
			wantField: "dataFim",
		},
		{
			name: "Status DONE com data de fim passa",
			project: Project{
				Status:          ProjectStatusDone,
				ConsiderarTempo: true,
				DataFim:         timePtr(fim),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.project.Validate()

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var fieldErr *FieldError
			assert.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.wantField, fieldErr.Field)
		})
	}
}

func TestGoLiveDate(t *testing.T) {
	manual := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	fim := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	previsao := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Data manual tem precedência", func(t *testing.T) {
		p := Project{
			ManualGoLiveDate: &manual,
			DataFim:          &fim,
			DataPrevisao:     &previsao,
		}
		assert.Equal(t, manual, *p.GoLiveDate())
	})

	t.Run("Sem data manual vale a data de fim", func(t *testing.T) {
		p := Project{DataFim: &fim, DataPrevisao: &previsao}
		assert.Equal(t, fim, *p.GoLiveDate())
	})

	t.Run("Sem fim vale a previsão", func(t *testing.T) {
		p := Project{DataPrevisao: &previsao}
		assert.Equal(t, previsao, *p.GoLiveDate())
	})

	t.Run("Sem nenhuma data retorna nil", func(t *testing.T) {
		p := Project{}
		assert.Nil(t, p.GoLiveDate())
	})
}

func TestSyncOwnedFieldsSent(t *testing.T) {
	status := ProjectStatusDone
	name := "Loja Nova"

	req := UpdateProjectRequest{
		Status: &status,
		Name:   &name,
	}

	fields := req.SyncOwnedFieldsSent()
	assert.ElementsMatch(t, []string{"status", "name"}, fields)

	empty := UpdateProjectRequest{}
	assert.Empty(t, empty.SyncOwnedFieldsSent())
}

func TestUpdateProjectRequestApplyTo(t *testing.T) {
	tempo := 120
	mensalidade := 899.90
	retrabalho := true

	req := UpdateProjectRequest{
		TempoContrato:    &tempo,
		ValorMensalidade: &mensalidade,
		TeveRetrabalho:   &retrabalho,
	}

	project := Project{
		TempoContrato:    90,
		ValorMensalidade: 500,
		Observacoes:      "mantém",
	}

	req.ApplyTo(&project)

	assert.Equal(t, 120, project.TempoContrato)
	assert.Equal(t, 899.90, project.ValorMensalidade)
	assert.True(t, project.TeveRetrabalho)
	// Campos ausentes da requisição ficam intactos
	assert.Equal(t, "mantém", project.Observacoes)
}

func TestIsActive(t *testing.T) {
	assert.True(t, (&Project{Status: ProjectStatusInProgress}).IsActive())
	assert.False(t, (&Project{Status: ProjectStatusDone}).IsActive())
	assert.False(t, (&Project{
		Status:           ProjectStatusInProgress,
		FinanceiroStatus: FinanceiroCancelado,
	}).IsActive())
}
