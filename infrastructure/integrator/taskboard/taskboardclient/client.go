package taskboardclient

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/vfg2006/implantacao-api/internal/config"
	taskboarddomain "github.com/vfg2006/implantacao-api/infrastructure/integrator/taskboard/domain"
)

// Erros do cliente do quadro externo. Unreachable e RateLimited são
// condições transitórias e marcam a sincronização como retryable.
var (
	ErrUnreachable = errors.New("quadro externo inacessível")
	ErrRateLimited = errors.New("quadro externo limitou as requisições")
	ErrBadResponse = errors.New("resposta inválida do quadro externo")
)

type Client interface {
	ListTasks(ctx context.Context, listID string) ([]taskboarddomain.Task, error)
}

type TaskBoardClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	timeout := time.Duration(cfg.TaskBoard.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 45 * time.Second
	}

	return &TaskBoardClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: cfg,
	}
}
