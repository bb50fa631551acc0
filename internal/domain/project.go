package domain

import (
	"fmt"
	"time"
)

// ProjectStatus representa o estado do ciclo de vida de uma implantação
type ProjectStatus string

const (
	ProjectStatusNotStarted ProjectStatus = "NOT_STARTED"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusDone       ProjectStatus = "DONE"
	ProjectStatusBlocked    ProjectStatus = "BLOCKED"
)

// FinanceiroStatus representa a situação financeira da loja
type FinanceiroStatus string

const (
	FinanceiroEmDia     FinanceiroStatus = "EM_DIA"
	FinanceiroDevendo   FinanceiroStatus = "DEVENDO"
	FinanceiroCancelado FinanceiroStatus = "CANCELADO"
)

// StoreType classifica a loja como matriz ou filial, usado como peso operacional
type StoreType string

const (
	StoreTypeMatriz StoreType = "MATRIZ"
	StoreTypeFilial StoreType = "FILIAL"
)

// RiskLevel é o nível de risco derivado da camada preditiva
type RiskLevel string

const (
	RiskLevelNormal  RiskLevel = "NORMAL"
	RiskLevelAlto    RiskLevel = "ALTO"
	RiskLevelCritico RiskLevel = "CRITICO"
)

// StepEvent é um intervalo de permanência em uma etapa do processo,
// extraído do histórico de status do quadro externo
type StepEvent struct {
	StepName  string     `json:"stepName"`
	EnteredAt time.Time  `json:"enteredAt"`
	LeftAt    *time.Time `json:"leftAt,omitempty"`
}

// Project representa uma implantação de loja sincronizada do quadro externo.
// Os campos derivados (idleDays, diasEmTransito, riskScore, aiRiskLevel) são
// calculados a cada requisição e nunca persistidos.
type Project struct {
	ID       string `json:"id"`
	CustomID string `json:"customId"`
	Name     string `json:"name"`
	Rede     string `json:"rede"`
	UF       string `json:"uf"`

	TipoLoja StoreType `json:"tipoLoja"`

	DataInicio       *time.Time `json:"dataInicio,omitempty"`
	DataPrevisao     *time.Time `json:"dataPrevisao,omitempty"`
	DataFim          *time.Time `json:"dataFim,omitempty"`
	ManualGoLiveDate *time.Time `json:"manualGoLiveDate,omitempty"`

	// TempoContrato é o prazo contratual da implantação, em dias
	TempoContrato int `json:"tempoContrato"`

	Status      ProjectStatus `json:"status"`
	Implantador string        `json:"implantador"`

	FinanceiroStatus FinanceiroStatus `json:"financeiroStatus"`
	ValorMensalidade float64          `json:"valorMensalidade"`
	ValorImplantacao float64          `json:"valorImplantacao"`

	DeliveredWithQuality bool `json:"deliveredWithQuality"`
	TeveRetrabalho       bool `json:"teveRetrabalho"`

	// ConsiderarTempo indica se o tempo de implantação conta para o SLA.
	// Quando falso, JustificativaTempo é obrigatória.
	ConsiderarTempo    bool   `json:"considerarTempo"`
	JustificativaTempo string `json:"justificativaTempo,omitempty"`

	Observacoes string `json:"observacoes,omitempty"`

	ERP  string `json:"erp,omitempty"`
	CRM  string `json:"crm,omitempty"`
	CNPJ string `json:"cnpj,omitempty"`

	// Campos de propriedade da sincronização
	ExternalID     string      `json:"externalId"`
	LastActivityAt *time.Time  `json:"lastActivityAt,omitempty"`
	StepEvents     []StepEvent `json:"stepEvents,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Derivados
	IdleDays       int       `json:"idleDays"`
	DiasEmTransito int       `json:"diasEmTransito"`
	RiskScore      int       `json:"riskScore"`
	AIRiskLevel    RiskLevel `json:"aiRiskLevel"`
}

// IsActive indica se a implantação ainda está em andamento e deve
// participar dos agregados de risco
func (p *Project) IsActive() bool {
	return p.Status != ProjectStatusDone && p.FinanceiroStatus != FinanceiroCancelado
}

// GoLiveDate é a data de go-live exibida: a data manual tem precedência
// sobre a data de fim e sobre a previsão
func (p *Project) GoLiveDate() *time.Time {
	if p.ManualGoLiveDate != nil {
		return p.ManualGoLiveDate
	}
	if p.DataFim != nil {
		return p.DataFim
	}
	return p.DataPrevisao
}

// Validate aplica as invariantes do modelo antes de qualquer escrita
func (p *Project) Validate() error {
	if !p.ConsiderarTempo && p.JustificativaTempo == "" {
		return &FieldError{Field: "justificativaTempo", Reason: "justificativa é obrigatória quando considerarTempo é falso"}
	}

	if p.ValorMensalidade < 0 {
		return &FieldError{Field: "valorMensalidade", Reason: "valor de mensalidade não pode ser negativo"}
	}

	if p.TempoContrato < 0 {
		return &FieldError{Field: "tempoContrato", Reason: "tempo de contrato não pode ser negativo"}
	}

	switch p.FinanceiroStatus {
	case "", FinanceiroEmDia, FinanceiroDevendo, FinanceiroCancelado:
	default:
		return &FieldError{Field: "financeiroStatus", Reason: fmt.Sprintf("situação financeira desconhecida: %s", p.FinanceiroStatus)}
	}

	if (p.DataFim != nil) != (p.Status == ProjectStatusDone) {
		return &FieldError{Field: "dataFim", Reason: "dataFim deve estar preenchida se e somente se o status for DONE"}
	}

	return nil
}

// FieldError é um erro de validação com o campo que o causou
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Ownership marca quem é a fonte de verdade de um campo do Project
type Ownership string

const (
	OwnershipSync     Ownership = "sync"
	OwnershipEditable Ownership = "editable"
)

// FieldOwnership é a tabela de propriedade dos campos editáveis via API.
// O caminho de escrita a consulta de forma uniforme: qualquer tentativa de
// editar um campo sync-owned resulta em Conflict.
var FieldOwnership = map[string]Ownership{
	"customId":             OwnershipSync,
	"name":                 OwnershipSync,
	"rede":                 OwnershipSync,
	"uf":                   OwnershipSync,
	"tipoLoja":             OwnershipSync,
	"status":               OwnershipSync,
	"implantador":          OwnershipSync,
	"externalId":           OwnershipSync,
	"lastActivityAt":       OwnershipSync,
	"stepEvents":           OwnershipSync,
	"dataPrevisao":         OwnershipSync,
	"dataInicio":           OwnershipEditable,
	"dataFim":              OwnershipEditable,
	"manualGoLiveDate":     OwnershipEditable,
	"tempoContrato":        OwnershipEditable,
	"financeiroStatus":     OwnershipEditable,
	"valorMensalidade":     OwnershipEditable,
	"valorImplantacao":     OwnershipEditable,
	"deliveredWithQuality": OwnershipEditable,
	"teveRetrabalho":       OwnershipEditable,
	"considerarTempo":      OwnershipEditable,
	"justificativaTempo":   OwnershipEditable,
	"observacoes":          OwnershipEditable,
	"erp":                  OwnershipEditable,
	"crm":                  OwnershipEditable,
	"cnpj":                 OwnershipEditable,
}

// UpdateProjectRequest é a atualização parcial dos campos editáveis.
// Campos sync-owned aparecem aqui apenas para que o caminho de escrita
// possa rejeitá-los com Conflict quando enviados.
type UpdateProjectRequest struct {
	ID string `json:"-"`

	DataInicio           *time.Time        `json:"dataInicio,omitempty"`
	DataFim              *time.Time        `json:"dataFim,omitempty"`
	ManualGoLiveDate     *time.Time        `json:"manualGoLiveDate,omitempty"`
	TempoContrato        *int              `json:"tempoContrato,omitempty"`
	FinanceiroStatus     *FinanceiroStatus `json:"financeiroStatus,omitempty"`
	ValorMensalidade     *float64          `json:"valorMensalidade,omitempty"`
	ValorImplantacao     *float64          `json:"valorImplantacao,omitempty"`
	DeliveredWithQuality *bool             `json:"deliveredWithQuality,omitempty"`
	TeveRetrabalho       *bool             `json:"teveRetrabalho,omitempty"`
	ConsiderarTempo      *bool             `json:"considerarTempo,omitempty"`
	JustificativaTempo   *string           `json:"justificativaTempo,omitempty"`
	Observacoes          *string           `json:"observacoes,omitempty"`
	ERP                  *string           `json:"erp,omitempty"`
	CRM                  *string           `json:"crm,omitempty"`
	CNPJ                 *string           `json:"cnpj,omitempty"`

	// Campos de propriedade da sincronização (rejeitados se presentes)
	Status      *ProjectStatus `json:"status,omitempty"`
	CustomID    *string        `json:"customId,omitempty"`
	Name        *string        `json:"name,omitempty"`
	Rede        *string        `json:"rede,omitempty"`
	UF          *string        `json:"uf,omitempty"`
	TipoLoja    *StoreType     `json:"tipoLoja,omitempty"`
	Implantador *string        `json:"implantador,omitempty"`
	ExternalID  *string        `json:"externalId,omitempty"`
}

// SyncOwnedFieldsSent retorna os campos sync-owned presentes na requisição
func (r *UpdateProjectRequest) SyncOwnedFieldsSent() []string {
	fields := make([]string, 0)

	if r.Status != nil {
		fields = append(fields, "status")
	}
	if r.CustomID != nil {
		fields = append(fields, "customId")
	}
	if r.Name != nil {
		fields = append(fields, "name")
	}
	if r.Rede != nil {
		fields = append(fields, "rede")
	}
	if r.UF != nil {
		fields = append(fields, "uf")
	}
	if r.TipoLoja != nil {
		fields = append(fields, "tipoLoja")
	}
	if r.Implantador != nil {
		fields = append(fields, "implantador")
	}
	if r.ExternalID != nil {
		fields = append(fields, "externalId")
	}

	return fields
}

// ApplyTo aplica os campos editáveis presentes na requisição sobre o projeto
func (r *UpdateProjectRequest) ApplyTo(p *Project) {
	if r.DataInicio != nil {
		p.DataInicio = r.DataInicio
	}
	if r.DataFim != nil {
		p.DataFim = r.DataFim
	}
	if r.ManualGoLiveDate != nil {
		p.ManualGoLiveDate = r.ManualGoLiveDate
	}
	if r.TempoContrato != nil {
		p.TempoContrato = *r.TempoContrato
	}
	if r.FinanceiroStatus != nil {
		p.FinanceiroStatus = *r.FinanceiroStatus
	}
	if r.ValorMensalidade != nil {
		p.ValorMensalidade = *r.ValorMensalidade
	}
	if r.ValorImplantacao != nil {
		p.ValorImplantacao = *r.ValorImplantacao
	}
	if r.DeliveredWithQuality != nil {
		p.DeliveredWithQuality = *r.DeliveredWithQuality
	}
	if r.TeveRetrabalho != nil {
		p.TeveRetrabalho = *r.TeveRetrabalho
	}
	if r.ConsiderarTempo != nil {
		p.ConsiderarTempo = *r.ConsiderarTempo
	}
	if r.JustificativaTempo != nil {
		p.JustificativaTempo = *r.JustificativaTempo
	}
	if r.Observacoes != nil {
		p.Observacoes = *r.Observacoes
	}
	if r.ERP != nil {
		p.ERP = *r.ERP
	}
	if r.CRM != nil {
		p.CRM = *r.CRM
	}
	if r.CNPJ != nil {
		p.CNPJ = *r.CNPJ
	}
}
