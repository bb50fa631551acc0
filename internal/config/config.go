package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	TaskBoard       TaskBoard       `mapstructure:",squash"`
	ImplantacaoSync ImplantacaoSync `mapstructure:",squash"`
	IntegracaoSync  IntegracaoSync  `mapstructure:",squash"`
	Scoring         Scoring         `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// TaskBoard é a configuração do sistema externo de gestão de projetos
// de onde os registros de implantação e integração são sincronizados
type TaskBoard struct {
	URL               string `mapstructure:"taskboard_url"`
	AccessToken       string `mapstructure:"taskboard_access_token"`
	ImplantacaoListID string `mapstructure:"taskboard_implantacao_list_id"`
	IntegracaoListID  string `mapstructure:"taskboard_integracao_list_id"`
	TimeoutSeconds    int    `mapstructure:"taskboard_timeout_seconds"`
}

type ImplantacaoSync struct {
	CronSchedule string `mapstructure:"implantacao_sync_cron"`
	Enabled      bool   `mapstructure:"implantacao_sync_enabled"`
}

type IntegracaoSync struct {
	CronSchedule string `mapstructure:"integracao_sync_cron"`
	Enabled      bool   `mapstructure:"integracao_sync_enabled"`
}

// Scoring agrupa as constantes de cálculo que não fazem parte do RuleSet
type Scoring struct {
	// TeamCapacityBaseline é a capacidade de referência de projetos
	// ponderados por implantador, usada no cálculo de carga
	TeamCapacityBaseline float64 `mapstructure:"scoring_team_capacity_baseline"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/implantacao")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("TASKBOARD_URL", "https://api.taskboard.app/v2")
	viper.SetDefault("TASKBOARD_ACCESS_TOKEN", "your_access_token")
	viper.SetDefault("TASKBOARD_IMPLANTACAO_LIST_ID", "")
	viper.SetDefault("TASKBOARD_INTEGRACAO_LIST_ID", "")
	viper.SetDefault("TASKBOARD_TIMEOUT_SECONDS", 45)

	// Defaults para sincronização dos fluxos
	viper.SetDefault("IMPLANTACAO_SYNC_CRON", "*/30 * * * *") // A cada 30 minutos
	viper.SetDefault("IMPLANTACAO_SYNC_ENABLED", false)
	viper.SetDefault("INTEGRACAO_SYNC_CRON", "15 * * * *") // A cada hora, no minuto 15
	viper.SetDefault("INTEGRACAO_SYNC_ENABLED", false)

	viper.SetDefault("SCORING_TEAM_CAPACITY_BASELINE", 10.0)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
