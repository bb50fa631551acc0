package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/implantacao-api/internal/config"
	"github.com/vfg2006/implantacao-api/internal/usecases/syncing"
)

// IntegracaoSyncConfig representa a configuração do agendador de sincronização de integrações
type IntegracaoSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// IntegracaoSyncService gerencia o agendamento e execução da sincronização
// do fluxo secundário de integrações
type IntegracaoSyncService struct {
	scheduler           *gocron.Scheduler
	config              IntegracaoSyncConfig
	syncService         syncing.Service
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
	lastSyncTotal       int
}

// NewIntegracaoSyncService cria uma nova instância do serviço de sincronização de integrações
func NewIntegracaoSyncService(
	syncService syncing.Service,
	appConfig *config.Config,
) *IntegracaoSyncService {
	syncConfig := IntegracaoSyncConfig{
		CronSchedule: appConfig.IntegracaoSync.CronSchedule,
		SyncEnabled:  appConfig.IntegracaoSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização de integrações carregada")

	return &IntegracaoSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		syncService: syncService,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *IntegracaoSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de integrações desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de integrações")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runSync(context.Background())
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de integrações: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de integrações")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *IntegracaoSyncService) runSync(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de integrações já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	result, err := s.syncService.SyncIntegrations(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.lastSyncCompletedAt = time.Now()
	if err != nil {
		s.lastSyncError = err.Error()
		logrus.WithError(err).Error("Sincronização agendada de integrações falhou")
		return
	}

	s.lastSyncError = ""
	s.lastSyncTotal = result.Total
}

// TriggerManualSync inicia manualmente uma sincronização de integrações
func (s *IntegracaoSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de integrações já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de integrações")
	go s.runSync(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *IntegracaoSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
		"last_sync_total":        s.lastSyncTotal,
	}
}
