package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/implantacao-api/infrastructure/database/postgres"
	"github.com/vfg2006/implantacao-api/internal/domain"
)

const (
	integrationRecordsTable = "integracao_records"
)

var integrationRecordColumns = []string{
	"id",
	"external_id",
	"name",
	"rede",
	"sistema",
	"cnpj",
	"status",
	"implantador",
	"data_inicio",
	"data_fim",
	"last_activity_at",
	"observacoes",
	"created_at",
	"updated_at",
}

type IntegrationRecordRepository interface {
	List(ctx context.Context) ([]*domain.IntegrationRecord, error)
	ReplaceBatch(ctx context.Context, records []*domain.IntegrationRecord) error
}

type integrationRecordRepository struct {
	conn *postgres.Connection
}

func NewIntegrationRecordRepository(conn *postgres.Connection) IntegrationRecordRepository {
	return &integrationRecordRepository{
		conn: conn,
	}
}

func (r *integrationRecordRepository) List(ctx context.Context) ([]*domain.IntegrationRecord, error) {
	sqlQuery, args, err := squirrel.
		Select(integrationRecordColumns...).
		From(integrationRecordsTable).
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

	records := make([]*domain.IntegrationRecord, 0)
	for rows.Next() {
		record := &domain.IntegrationRecord{}
		err := rows.Scan(
			&record.ID,
			&record.ExternalID,
			&record.Name,
			&record.Rede,
			&record.Sistema,
			&record.CNPJ,
			&record.Status,
			&record.Implantador,
			&record.DataInicio,
			&record.DataFim,
			&record.LastActivityAt,
			&record.Observacoes,
			&record.CreatedAt,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear registro de integração: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

// ReplaceBatch aplica a passada de sincronização do fluxo de integração em
// uma única transação, com upsert por external_id
func (r *integrationRecordRepository) ReplaceBatch(ctx context.Context, records []*domain.IntegrationRecord) error {
	if len(records) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		query := squirrel.StatementBuilder.
			Insert(integrationRecordsTable).
			Columns(integrationRecordColumns...).
			PlaceholderFormat(squirrel.Dollar)

		now := time.Now()
		for _, record := range records {
			query = query.Values(
				record.ID,
				record.ExternalID,
				record.Name,
				record.Rede,
				record.Sistema,
				record.CNPJ,
				record.Status,
				record.Implantador,
				record.DataInicio,
				record.DataFim,
				record.LastActivityAt,
				record.Observacoes,
				now,
				now,
			)
		}

		query = query.Suffix(`
			ON CONFLICT (external_id) DO UPDATE SET
				name = EXCLUDED.name,
				rede = EXCLUDED.rede,
				sistema = EXCLUDED.sistema,
				cnpj = EXCLUDED.cnpj,
				status = EXCLUDED.status,
				implantador = EXCLUDED.implantador,
				data_inicio = EXCLUDED.data_inicio,
				data_fim = EXCLUDED.data_fim,
				last_activity_at = EXCLUDED.last_activity_at,
				observacoes = EXCLUDED.observacoes,
				updated_at = CURRENT_TIMESTAMP
		`)

		sqlQuery, args, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir query de upsert: %w", err)
		}

		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("erro ao executar upsert de registros de integração: %w", err)
		}

		return nil
	})
}
