// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/implantacao-api/infrastructure/database/postgres"
	"github.com/vfg2006/implantacao-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	projectsTable = "implantacao_projects"
)

var projectColumns = []string{
	"id",
	"external_id",
	"custom_id",
	"name",
	"rede",
	"uf",
	"tipo_loja",
	"data_inicio",
	"data_previsao",
	"data_fim",
	"manual_go_live_date",
	"tempo_contrato",
	"status",
	"implantador",
	"financeiro_status",
	"valor_mensalidade",
	"valor_implantacao",
	"delivered_with_quality",
	"teve_retrabalho",
	"considerar_tempo",
	"justificativa_tempo",
	"observacoes",
	"erp",
	"crm",
	"cnpj",
	"last_activity_at",
	"step_events",
	"created_at",
	"updated_at",
}

type ProjectRepository interface {
	List(ctx context.Context) ([]*domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	ReplaceBatch(ctx context.Context, projects []*domain.Project) error
}

type projectRepository struct {
	conn *postgres.Connection
}

func NewProjectRepository(conn *postgres.Connection) ProjectRepository {
	return &projectRepository{
		conn: conn,
	}
}

func (r *projectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	sqlQuery, args, err := squirrel.
		Select(projectColumns...).
		From(projectsTable).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear projeto: %w", err)
		}
		projects = append(projects, project)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return projects, nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	sqlQuery, args, err := squirrel.
		Select(projectColumns...).
		From(projectsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRowContext(ctx, sqlQuery, args...)
	project, err := scanProjectRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear projeto: %w", err)
	}

	return project, nil
}

// Update persiste os campos editáveis de um projeto existente.
// Campos de propriedade da sincronização não são tocados aqui.
func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	sqlQuery, args, err := squirrel.
		Update(projectsTable).
		Set("data_inicio", project.DataInicio).
		Set("data_previsao", project.DataPrevisao).
		Set("data_fim", project.DataFim).
		Set("manual_go_live_date", project.ManualGoLiveDate).
		Set("tempo_contrato", project.TempoContrato).
		Set("financeiro_status", project.FinanceiroStatus).
		Set("valor_mensalidade", project.ValorMensalidade).
		Set("valor_implantacao", project.ValorImplantacao).
		Set("delivered_with_quality", project.DeliveredWithQuality).
		Set("teve_retrabalho", project.TeveRetrabalho).
		Set("considerar_tempo", project.ConsiderarTempo).
		Set("justificativa_tempo", project.JustificativaTempo).
		Set("observacoes", project.Observacoes).
		Set("erp", project.ERP).
		Set("crm", project.CRM).
		Set("cnpj", project.CNPJ).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": project.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar query de atualização: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// ReplaceBatch aplica uma passada completa de sincronização em uma única
// transação: ou todos os registros são aplicados, ou nenhum. O upsert por
// external_id atualiza somente colunas de propriedade da sincronização,
// preservando as edições locais dos campos editáveis.
func (r *projectRepository) ReplaceBatch(ctx context.Context, projects []*domain.Project) error {
	if len(projects) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		query := squirrel.StatementBuilder.
			Insert(projectsTable).
			Columns(projectColumns...).
			PlaceholderFormat(squirrel.Dollar)

		now := time.Now()
		for _, p := range projects {
			stepEvents, err := json.Marshal(p.StepEvents)
			if err != nil {
				return fmt.Errorf("erro ao serializar eventos de etapa: %w", err)
			}

			query = query.Values(
				p.ID,
				p.ExternalID,
				p.CustomID,
				p.Name,
				p.Rede,
				p.UF,
				p.TipoLoja,
				p.DataInicio,
				p.DataPrevisao,
				p.DataFim,
				p.ManualGoLiveDate,
				p.TempoContrato,
				p.Status,
				p.Implantador,
				p.FinanceiroStatus,
				p.ValorMensalidade,
				p.ValorImplantacao,
				p.DeliveredWithQuality,
				p.TeveRetrabalho,
				p.ConsiderarTempo,
				p.JustificativaTempo,
				p.Observacoes,
				p.ERP,
				p.CRM,
				p.CNPJ,
				p.LastActivityAt,
				stepEvents,
				now,
				now,
			)
		}

		// Em conflito por external_id, atualizar apenas colunas sync-owned
		query = query.Suffix(`
			ON CONFLICT (external_id) DO UPDATE SET
				custom_id = EXCLUDED.custom_id,
				name = EXCLUDED.name,
				rede = EXCLUDED.rede,
				uf = EXCLUDED.uf,
				tipo_loja = EXCLUDED.tipo_loja,
				status = EXCLUDED.status,
				implantador = EXCLUDED.implantador,
				data_fim = EXCLUDED.data_fim,
				last_activity_at = EXCLUDED.last_activity_at,
				step_events = EXCLUDED.step_events,
				updated_at = CURRENT_TIMESTAMP
		`)

		sqlQuery, args, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir query de upsert: %w", err)
		}

		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("erro ao executar upsert de projetos: %w", err)
		}

		return nil
	})
}

type scannable interface {
	Scan(dest ...any) error
}

func scanProject(s scannable) (*domain.Project, error) {
	project := &domain.Project{}
	var stepEvents []byte

	err := s.Scan(
		&project.ID,
		&project.ExternalID,
		&project.CustomID,
		&project.Name,
		&project.Rede,
		&project.UF,
		&project.TipoLoja,
		&project.DataInicio,
		&project.DataPrevisao,
		&project.DataFim,
		&project.ManualGoLiveDate,
		&project.TempoContrato,
		&project.Status,
		&project.Implantador,
		&project.FinanceiroStatus,
		&project.ValorMensalidade,
		&project.ValorImplantacao,
		&project.DeliveredWithQuality,
		&project.TeveRetrabalho,
		&project.ConsiderarTempo,
		&project.JustificativaTempo,
		&project.Observacoes,
		&project.ERP,
		&project.CRM,
		&project.CNPJ,
		&project.LastActivityAt,
		&stepEvents,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(stepEvents) > 0 {
		if err := json.Unmarshal(stepEvents, &project.StepEvents); err != nil {
			return nil, fmt.Errorf("erro ao desserializar eventos de etapa: %w", err)
		}
	}

	return project, nil
}

func scanProjectRow(row *sql.Row) (*domain.Project, error) {
	return scanProject(row)
}
