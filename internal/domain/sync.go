package domain

import "time"

// SyncResult é o resumo de uma passada de sincronização concluída com sucesso
type SyncResult struct {
	RunID       string        `json:"runId"`
	Stream      string        `json:"stream"` // implantacao ou integracao
	Total       int           `json:"total"`
	Duration    time.Duration `json:"-"`
	DurationMS  int64         `json:"durationMs"`
	CompletedAt time.Time     `json:"completedAt"`
}

// IntegrationRecord representa um registro do fluxo secundário de integração
// (conexões de ERP/CRM da loja), sincronizado com a mesma disciplina
// tudo-ou-nada do fluxo de implantação
type IntegrationRecord struct {
	ID             string        `json:"id"`
	ExternalID     string        `json:"externalId"`
	Name           string        `json:"name"`
	Rede           string        `json:"rede"`
	Sistema        string        `json:"sistema"` // ERP ou CRM sendo integrado
	CNPJ           string        `json:"cnpj,omitempty"`
	Status         ProjectStatus `json:"status"`
	Implantador    string        `json:"implantador"`
	DataInicio     *time.Time    `json:"dataInicio,omitempty"`
	DataFim        *time.Time    `json:"dataFim,omitempty"`
	LastActivityAt *time.Time    `json:"lastActivityAt,omitempty"`
	Observacoes    string        `json:"observacoes,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`

	// Derivado
	IdleDays int `json:"idleDays"`
}
