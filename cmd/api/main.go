package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/implantacao-api/infrastructure/database/postgres"
	"github.com/vfg2006/implantacao-api/infrastructure/integrator/taskboard"
	"github.com/vfg2006/implantacao-api/infrastructure/integrator/taskboard/taskboardclient"
	"github.com/vfg2006/implantacao-api/infrastructure/repository"
	"github.com/vfg2006/implantacao-api/internal/api"
	"github.com/vfg2006/implantacao-api/internal/config"
	"github.com/vfg2006/implantacao-api/internal/scheduler"
	"github.com/vfg2006/implantacao-api/internal/usecases/analyzing"
	"github.com/vfg2006/implantacao-api/internal/usecases/editing"
	"github.com/vfg2006/implantacao-api/internal/usecases/performing"
	"github.com/vfg2006/implantacao-api/internal/usecases/ruling"
	"github.com/vfg2006/implantacao-api/internal/usecases/scoring"
	"github.com/vfg2006/implantacao-api/internal/usecases/syncing"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	projectRepo := repository.NewProjectRepository(pgConn)
	integrationRepo := repository.NewIntegrationRecordRepository(pgConn)

	taskBoardClient := taskboardclient.NewClient(cfg)
	taskBoardIntegrator := taskboard.New(cfg, taskBoardClient)

	rulesStore := ruling.NewStore()

	riskScorer := scoring.NewService(scoring.NewPacePredictor())
	perfScorer := performing.NewService(cfg.Scoring.TeamCapacityBaseline)

	aggregator := analyzing.NewService(projectRepo, integrationRepo, rulesStore, riskScorer, perfScorer)
	editor := editing.NewService(projectRepo)
	syncService := syncing.NewService(cfg, taskBoardIntegrator, projectRepo, integrationRepo)

	// Inicializa os agendadores de sincronização separados
	implantacaoSyncService := scheduler.NewImplantacaoSyncService(syncService, cfg)
	integracaoSyncService := scheduler.NewIntegracaoSyncService(syncService, cfg)

	// Inicia os agendadores em background
	if err := implantacaoSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de implantações")
	} else {
		logrus.Info("Agendador de sincronização de implantações iniciado com sucesso")
	}

	if err := integracaoSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de integrações")
	} else {
		logrus.Info("Agendador de sincronização de integrações iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		aggregator,
		editor,
		syncService,
		rulesStore,
		implantacaoSyncService,
		integracaoSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
