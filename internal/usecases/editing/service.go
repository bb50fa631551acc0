// Package editing é o caminho de escrita dos campos editáveis de um
// projeto. A propriedade dos campos é aplicada de forma uniforme: tentar
// editar um campo sincronizado resulta em conflito, nunca em aplicação
// parcial.
package editing

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/implantacao-api/infrastructure/repository"
	"github.com/vfg2006/implantacao-api/internal/domain"
)

var (
	// ErrProjectNotFound indica que o projeto não existe
	ErrProjectNotFound = errors.New("projeto não encontrado")
)

// ConflictError indica tentativa de edição de campos de propriedade da
// sincronização. Nenhum campo da requisição é aplicado.
type ConflictError struct {
	Fields []string
}

func (e *ConflictError) Error() string {
	return "campos de propriedade da sincronização não podem ser editados"
}

// Service aplica atualizações parciais sobre os campos editáveis
type Service interface {
	UpdateProject(ctx context.Context, req *domain.UpdateProjectRequest) (*domain.Project, error)
}

type service struct {
	projectRepo repository.ProjectRepository
}

func NewService(projectRepo repository.ProjectRepository) Service {
	return &service{
		projectRepo: projectRepo,
	}
}

// UpdateProject valida e aplica uma atualização parcial. A ordem importa:
// conflito de propriedade é verificado antes de qualquer validação de
// conteúdo, e a validação roda sobre o estado resultante antes da escrita.
func (s *service) UpdateProject(ctx context.Context, req *domain.UpdateProjectRequest) (*domain.Project, error) {
	if syncOwned := req.SyncOwnedFieldsSent(); len(syncOwned) > 0 {
		return nil, &ConflictError{Fields: syncOwned}
	}

	project, err := s.projectRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar projeto")
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	req.ApplyTo(project)

	if err := project.Validate(); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, errors.Wrap(err, "erro ao atualizar projeto")
	}

	logrus.WithFields(logrus.Fields{
		"project_id": project.ID,
	}).Info("Projeto atualizado com sucesso")

	return project, nil
}
