package syncing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/implantacao-api/infrastructure/integrator/taskboard"
	taskboarddomain "github.com/vfg2006/implantacao-api/infrastructure/integrator/taskboard/domain"
	"github.com/vfg2006/implantacao-api/infrastructure/integrator/taskboard/taskboardclient"
	"github.com/vfg2006/implantacao-api/infrastructure/repository"
	"github.com/vfg2006/implantacao-api/internal/config"
	"github.com/vfg2006/implantacao-api/internal/domain"
)

const (
	// StreamImplantacao identifica o fluxo principal de implantações
	StreamImplantacao = "implantacao"
	// StreamIntegracao identifica o fluxo secundário de integrações
	StreamIntegracao = "integracao"

	runIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	runIDLength   = 8
)

// Service orquestra a sincronização dos registros do quadro externo
// com o banco local
type Service interface {
	SyncProjects(ctx context.Context) (*domain.SyncResult, error)
	SyncIntegrations(ctx context.Context) (*domain.SyncResult, error)
}

type service struct {
	cfg             *config.Config
	board           taskboard.TaskBoardIntegrator
	projectRepo     repository.ProjectRepository
	integrationRepo repository.IntegrationRecordRepository

	// Guarda de concorrência por fluxo: no máximo uma passada por vez
	mu      sync.Mutex
	running map[string]bool
}

func NewService(
	cfg *config.Config,
	board taskboard.TaskBoardIntegrator,
	projectRepo repository.ProjectRepository,
	integrationRepo repository.IntegrationRecordRepository,
) Service {
	return &service{
		cfg:             cfg,
		board:           board,
		projectRepo:     projectRepo,
		integrationRepo: integrationRepo,
		running:         make(map[string]bool),
	}
}

// begin reserva o fluxo para uma passada; falha se já houver uma em andamento
func (s *service) begin(stream string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running[stream] {
		return ErrSyncInProgress
	}

	s.running[stream] = true
	return nil
}

func (s *service) end(stream string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running[stream] = false
}

// SyncProjects executa uma passada completa do fluxo de implantação:
// busca as tarefas do quadro externo, normaliza todas em memória e só
// então persiste o lote inteiro em uma transação. Qualquer falha aborta
// a passada sem tocar nos dados já sincronizados.
func (s *service) SyncProjects(ctx context.Context) (*domain.SyncResult, error) {
	runID := newRunID()
	startedAt := time.Now()

	if err := s.begin(StreamImplantacao); err != nil {
		return nil, s.abort(runID, StreamImplantacao, err)
	}
	defer s.end(StreamImplantacao)

	logrus.WithFields(logrus.Fields{
		"run_id": runID,
		"stream": StreamImplantacao,
	}).Info("Iniciando sincronização de implantações")

	tasks, err := s.fetchTasks(ctx, s.cfg.TaskBoard.ImplantacaoListID)
	if err != nil {
		return nil, s.abort(runID, StreamImplantacao, err)
	}

	projects, err := NormalizeProjects(tasks)
	if err != nil {
		return nil, s.abort(runID, StreamImplantacao, err)
	}

	if err := s.projectRepo.ReplaceBatch(ctx, projects); err != nil {
		return nil, s.abort(runID, StreamImplantacao, fmt.Errorf("%w: %w", ErrPersistBatch, err))
	}

	return s.finish(runID, StreamImplantacao, len(projects), startedAt), nil
}

// SyncIntegrations executa a mesma passada para o fluxo de integrações
func (s *service) SyncIntegrations(ctx context.Context) (*domain.SyncResult, error) {
	runID := newRunID()
	startedAt := time.Now()

	if err := s.begin(StreamIntegracao); err != nil {
		return nil, s.abort(runID, StreamIntegracao, err)
	}
	defer s.end(StreamIntegracao)

	logrus.WithFields(logrus.Fields{
		"run_id": runID,
		"stream": StreamIntegracao,
	}).Info("Iniciando sincronização de integrações")

	tasks, err := s.fetchTasks(ctx, s.cfg.TaskBoard.IntegracaoListID)
	if err != nil {
		return nil, s.abort(runID, StreamIntegracao, err)
	}

	records, err := NormalizeIntegrationRecords(tasks)
	if err != nil {
		return nil, s.abort(runID, StreamIntegracao, err)
	}

	if err := s.integrationRepo.ReplaceBatch(ctx, records); err != nil {
		return nil, s.abort(runID, StreamIntegracao, fmt.Errorf("%w: %w", ErrPersistBatch, err))
	}

	return s.finish(runID, StreamIntegracao, len(records), startedAt), nil
}

func (s *service) fetchTasks(ctx context.Context, listID string) ([]taskboarddomain.Task, error) {
	timeout := time.Duration(s.cfg.TaskBoard.TimeoutSeconds) * time.Second
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tasks, err := s.board.ListTasks(fetchCtx, listID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBoardFetch, err)
	}

	return tasks, nil
}

func (s *service) abort(runID, stream string, err error) error {
	syncErr := &SyncError{
		Err:       err,
		RunID:     runID,
		Stream:    stream,
		Retryable: isRetryable(err),
	}

	logrus.WithFields(logrus.Fields{
		"run_id":    runID,
		"stream":    stream,
		"retryable": syncErr.Retryable,
	}).WithError(err).Error("Sincronização abortada")

	return syncErr
}

func (s *service) finish(runID, stream string, total int, startedAt time.Time) *domain.SyncResult {
	duration := time.Since(startedAt)

	logrus.WithFields(logrus.Fields{
		"run_id":   runID,
		"stream":   stream,
		"total":    total,
		"duration": duration.String(),
	}).Info("Sincronização concluída com sucesso")

	return &domain.SyncResult{
		RunID:       runID,
		Stream:      stream,
		Total:       total,
		Duration:    duration,
		DurationMS:  duration.Milliseconds(),
		CompletedAt: time.Now(),
	}
}

// isRetryable classifica a falha: problemas transitórios de rede, rate
// limit ou banco valem nova tentativa; registros malformados exigem
// correção no quadro externo antes de repetir
func isRetryable(err error) bool {
	switch {
	case errors.Is(err, ErrMalformedRecord), errors.Is(err, ErrDuplicateCustomID):
		return false
	case errors.Is(err, taskboardclient.ErrBadResponse):
		return false
	default:
		return true
	}
}

func newRunID() string {
	id, err := gonanoid.Generate(runIDAlphabet, runIDLength)
	if err != nil {
		// gonanoid só falha com alfabeto inválido; o nosso é constante
		return time.Now().Format("20060102150405")
	}
	return id
}
