package editing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/implantacao-api/infrastructure/repository/mocks"
	"github.com/vfg2006/implantacao-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (Service, *mocks.MockProjectRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	projectRepo := mocks.NewMockProjectRepository(ctrl)

	return NewService(projectRepo), projectRepo
}

func storedProject() *domain.Project {
	start := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	return &domain.Project{
		ID:               "p1",
		CustomID:         "LOJA-1",
		Name:             "Loja Centro",
		Status:           domain.ProjectStatusInProgress,
		DataInicio:       &start,
		TempoContrato:    90,
		ValorMensalidade: 899.90,
		ConsiderarTempo:  true,
	}
}

func TestUpdateProject(t *testing.T) {
	service, projectRepo := newTestService(t)

	novoValor := 1200.0
	obs := "cliente pediu prorrogação"

	projectRepo.EXPECT().GetByID(gomock.Any(), "p1").Return(storedProject(), nil)
	projectRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	project, err := service.UpdateProject(context.Background(), &domain.UpdateProjectRequest{
		ID:               "p1",
		ValorMensalidade: &novoValor,
		Observacoes:      &obs,
	})
	require.NoError(t, err)

	// Atualização parcial: só os campos enviados mudam
	assert.Equal(t, 1200.0, project.ValorMensalidade)
	assert.Equal(t, "cliente pediu prorrogação", project.Observacoes)
	assert.Equal(t, "Loja Centro", project.Name)
	assert.Equal(t, 90, project.TempoContrato)
}

func TestUpdateProjectCampoSincronizado(t *testing.T) {
	// Nenhuma chamada ao repositório é esperada: o conflito é verificado antes
	service, _ := newTestService(t)

	nome := "Outro Nome"
	status := domain.ProjectStatusDone
	valor := 500.0

	_, err := service.UpdateProject(context.Background(), &domain.UpdateProjectRequest{
		ID:               "p1",
		Name:             &nome,
		Status:           &status,
		ValorMensalidade: &valor,
	})
	require.Error(t, err)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.ElementsMatch(t, []string{"name", "status"}, conflict.Fields)
}

func TestUpdateProjectNaoEncontrado(t *testing.T) {
	service, projectRepo := newTestService(t)

	projectRepo.EXPECT().GetByID(gomock.Any(), "inexistente").Return(nil, nil)

	_, err := service.UpdateProject(context.Background(), &domain.UpdateProjectRequest{
		ID: "inexistente",
	})
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestUpdateProjectValidacao(t *testing.T) {
	// dataFim só é aceita em projeto concluído; nada é persistido
	service, projectRepo := newTestService(t)

	projectRepo.EXPECT().GetByID(gomock.Any(), "p1").Return(storedProject(), nil)

	fim := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	_, err := service.UpdateProject(context.Background(), &domain.UpdateProjectRequest{
		ID:      "p1",
		DataFim: &fim,
	})
	require.Error(t, err)

	var fieldErr *domain.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "dataFim", fieldErr.Field)
}

func TestUpdateProjectFinanceiroInvalido(t *testing.T) {
	// Situação financeira fora do enum é rejeitada antes da escrita
	service, projectRepo := newTestService(t)

	projectRepo.EXPECT().GetByID(gomock.Any(), "p1").Return(storedProject(), nil)

	invalido := domain.FinanceiroStatus("PENDENTE_XYZ")

	_, err := service.UpdateProject(context.Background(), &domain.UpdateProjectRequest{
		ID:               "p1",
		FinanceiroStatus: &invalido,
	})
	require.Error(t, err)

	var fieldErr *domain.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "financeiroStatus", fieldErr.Field)
}

func TestUpdateProjectContratoNegativo(t *testing.T) {
	service, projectRepo := newTestService(t)

	projectRepo.EXPECT().GetByID(gomock.Any(), "p1").Return(storedProject(), nil)

	negativo := -10

	_, err := service.UpdateProject(context.Background(), &domain.UpdateProjectRequest{
		ID:            "p1",
		TempoContrato: &negativo,
	})
	require.Error(t, err)

	var fieldErr *domain.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "tempoContrato", fieldErr.Field)
}

func TestUpdateProjectErroDePersistencia(t *testing.T) {
	service, projectRepo := newTestService(t)

	projectRepo.EXPECT().GetByID(gomock.Any(), "p1").Return(storedProject(), nil)
	projectRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(errors.New("conexão recusada"))

	valor := 950.0

	_, err := service.UpdateProject(context.Background(), &domain.UpdateProjectRequest{
		ID:               "p1",
		ValorMensalidade: &valor,
	})
	assert.Error(t, err)
}
