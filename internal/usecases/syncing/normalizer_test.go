package syncing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	taskboarddomain "github.com/vfg2006/implantacao-api/infrastructure/integrator/taskboard/domain"
	"github.com/vfg2006/implantacao-api/internal/domain"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func baseTask(id string) taskboarddomain.Task {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	updated := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	return taskboarddomain.Task{
		ID:          id,
		CustomID:    "LOJA-" + id,
		Name:        "Ótica Central",
		Status:      taskboarddomain.TaskStatus{Status: "em implantação", Type: "custom"},
		Assignees:   []taskboarddomain.Assignee{{Username: "ana"}},
		StartDate:   &start,
		DateUpdated: &updated,
		CustomFields: []taskboarddomain.CustomField{
			{Name: "Rede", Value: "Rede Visão"},
			{Name: "UF", Value: "SC"},
			{Name: "Tipo de Loja", Value: "Matriz"},
			{Name: "Tempo de Contrato", Value: "90"},
			{Name: "Status Financeiro", Value: "Em dia"},
			{Name: "Mensalidade", Value: "899,90"},
		},
	}
}

func TestNormalizeProjects(t *testing.T) {
	t.Run("Tarefa completa vira projeto com todos os campos", func(t *testing.T) {
		projects, err := NormalizeProjects([]taskboarddomain.Task{baseTask("t1")})
		require.NoError(t, err)
		require.Len(t, projects, 1)

		p := projects[0]
		assert.Equal(t, "t1", p.ExternalID)
		assert.Equal(t, "LOJA-t1", p.CustomID)
		assert.Equal(t, "Rede Visão", p.Rede)
		assert.Equal(t, "SC", p.UF)
		assert.Equal(t, domain.StoreTypeMatriz, p.TipoLoja)
		assert.Equal(t, domain.ProjectStatusInProgress, p.Status)
		assert.Equal(t, "ana", p.Implantador)
		assert.Equal(t, 90, p.TempoContrato)
		assert.Equal(t, domain.FinanceiroEmDia, p.FinanceiroStatus)
		assert.Equal(t, 899.90, p.ValorMensalidade)
		assert.True(t, p.ConsiderarTempo)
		assert.NotEmpty(t, p.ID)
	})

	t.Run("Mapeamento de status do quadro externo", func(t *testing.T) {
		cases := []struct {
			status   taskboarddomain.TaskStatus
			expected domain.ProjectStatus
		}{
			{taskboarddomain.TaskStatus{Status: "a fazer", Type: "open"}, domain.ProjectStatusNotStarted},
			{taskboarddomain.TaskStatus{Status: "concluído", Type: "done"}, domain.ProjectStatusDone},
			{taskboarddomain.TaskStatus{Status: "parado", Type: "blocked"}, domain.ProjectStatusBlocked},
			{taskboarddomain.TaskStatus{Status: "bloqueado aguardando cliente", Type: "custom"}, domain.ProjectStatusBlocked},
			{taskboarddomain.TaskStatus{Status: "em implantação", Type: "custom"}, domain.ProjectStatusInProgress},
		}

		for _, c := range cases {
			task := baseTask("t1")
			task.Status = c.status
			if c.expected == domain.ProjectStatusDone {
				task.DoneDate = timePtr(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC))
			}

			projects, err := NormalizeProjects([]taskboarddomain.Task{task})
			require.NoError(t, err)
			assert.Equal(t, c.expected, projects[0].Status, "status %q/%q", c.status.Status, c.status.Type)
		}
	})

	t.Run("Tarefa concluída recebe a data de conclusão", func(t *testing.T) {
		done := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
		task := baseTask("t1")
		task.Status = taskboarddomain.TaskStatus{Status: "concluído", Type: "done"}
		task.DoneDate = &done

		projects, err := NormalizeProjects([]taskboarddomain.Task{task})
		require.NoError(t, err)
		assert.Equal(t, done, *projects[0].DataFim)
	})

	t.Run("Tarefa concluída sem data usa a última atualização", func(t *testing.T) {
		task := baseTask("t1")
		task.Status = taskboarddomain.TaskStatus{Status: "concluído", Type: "done"}

		projects, err := NormalizeProjects([]taskboarddomain.Task{task})
		require.NoError(t, err)
		assert.Equal(t, *task.DateUpdated, *projects[0].DataFim)
	})

	t.Run("CustomID duplicado aborta o lote", func(t *testing.T) {
		first := baseTask("t1")
		second := baseTask("t2")
		second.CustomID = first.CustomID

		projects, err := NormalizeProjects([]taskboarddomain.Task{first, second})
		assert.Nil(t, projects)
		assert.ErrorIs(t, err, ErrDuplicateCustomID)
	})

	t.Run("Tempo de contrato ilegível aborta o lote", func(t *testing.T) {
		task := baseTask("t1")
		for i := range task.CustomFields {
			if task.CustomFields[i].Name == "Tempo de Contrato" {
				task.CustomFields[i].Value = "noventa"
			}
		}

		projects, err := NormalizeProjects([]taskboarddomain.Task{task})
		assert.Nil(t, projects)
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})

	t.Run("Status financeiro desconhecido aborta o lote", func(t *testing.T) {
		task := baseTask("t1")
		for i := range task.CustomFields {
			if task.CustomFields[i].Name == "Status Financeiro" {
				task.CustomFields[i].Value = "pendente"
			}
		}

		_, err := NormalizeProjects([]taskboarddomain.Task{task})
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})

	t.Run("Tarefa sem identificador aborta o lote", func(t *testing.T) {
		task := baseTask("")

		_, err := NormalizeProjects([]taskboarddomain.Task{task})
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})

	t.Run("Mensalidade negativa aborta o lote", func(t *testing.T) {
		task := baseTask("t1")
		for i := range task.CustomFields {
			if task.CustomFields[i].Name == "Mensalidade" {
				task.CustomFields[i].Value = "-50"
			}
		}

		_, err := NormalizeProjects([]taskboarddomain.Task{task})
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})

	t.Run("Campos ausentes usam os padrões", func(t *testing.T) {
		task := taskboarddomain.Task{
			ID:     "t9",
			Name:   "Loja Mínima",
			Status: taskboarddomain.TaskStatus{Status: "novo", Type: "open"},
		}

		projects, err := NormalizeProjects([]taskboarddomain.Task{task})
		require.NoError(t, err)

		p := projects[0]
		assert.Equal(t, domain.StoreTypeFilial, p.TipoLoja)
		assert.Equal(t, domain.FinanceiroEmDia, p.FinanceiroStatus)
		assert.Equal(t, 0, p.TempoContrato)
		assert.Equal(t, 0.0, p.ValorMensalidade)
	})
}

func TestNormalizeStepEvents(t *testing.T) {
	entered := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	left := entered.AddDate(0, 0, 3)

	task := baseTask("t1")
	task.StatusHistory = []taskboarddomain.StatusInterval{
		{Status: "cadastro", EnteredAt: entered, LeftAt: &left},
		{Status: "treinamento", EnteredAt: left},
	}

	projects, err := NormalizeProjects([]taskboarddomain.Task{task})
	require.NoError(t, err)

	events := projects[0].StepEvents
	require.Len(t, events, 2)
	assert.Equal(t, "cadastro", events[0].StepName)
	assert.Equal(t, left, *events[0].LeftAt)
	assert.Equal(t, "treinamento", events[1].StepName)
	assert.Nil(t, events[1].LeftAt)
}

func TestNormalizeIntegrationRecords(t *testing.T) {
	task := baseTask("i1")
	task.CustomFields = append(task.CustomFields, taskboarddomain.CustomField{
		Name: "Sistema", Value: "ERP Oticas",
	})

	records, err := NormalizeIntegrationRecords([]taskboarddomain.Task{task})
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "i1", r.ExternalID)
	assert.Equal(t, "ERP Oticas", r.Sistema)
	assert.Equal(t, domain.ProjectStatusInProgress, r.Status)
	assert.Equal(t, "ana", r.Implantador)
}
