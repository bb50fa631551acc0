package taskboard

import (
	"context"

	"github.com/sirupsen/logrus"
	taskboarddomain "github.com/vfg2006/implantacao-api/infrastructure/integrator/taskboard/domain"
	"github.com/vfg2006/implantacao-api/infrastructure/integrator/taskboard/taskboardclient"
	"github.com/vfg2006/implantacao-api/internal/config"
)

// TaskBoardIntegrator é a interface do quadro externo consumida pelo
// serviço de sincronização
type TaskBoardIntegrator interface {
	ListTasks(ctx context.Context, listID string) ([]taskboarddomain.Task, error)
}

type Integrator struct {
	cfg    *config.Config
	client taskboardclient.Client
}

func New(cfg *config.Config, client taskboardclient.Client) *Integrator {
	return &Integrator{
		cfg:    cfg,
		client: client,
	}
}

func (i *Integrator) ListTasks(ctx context.Context, listID string) ([]taskboarddomain.Task, error) {
	logrus.WithFields(logrus.Fields{
		"list_id": listID,
	}).Info("Buscando tarefas do quadro externo")

	tasks, err := i.client.ListTasks(ctx, listID)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar tarefas do quadro externo")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"list_id": listID,
		"tasks":   len(tasks),
	}).Info("Tarefas do quadro externo obtidas com sucesso")

	return tasks, nil
}
