package syncing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	taskboarddomain "github.com/vfg2006/implantacao-api/infrastructure/integrator/taskboard/domain"
	"github.com/vfg2006/implantacao-api/internal/domain"
)

// Nomes dos campos customizados esperados no quadro externo
const (
	fieldRede          = "Rede"
	fieldUF            = "UF"
	fieldTipoLoja      = "Tipo de Loja"
	fieldTempoContrato = "Tempo de Contrato"
	fieldFinanceiro    = "Status Financeiro"
	fieldMensalidade   = "Mensalidade"
	fieldImplantacao   = "Valor Implantacao"
	fieldCNPJ          = "CNPJ"
	fieldERP           = "ERP"
	fieldCRM           = "CRM"
	fieldSistema       = "Sistema"
)

// NormalizeProjects converte as tarefas cruas do quadro externo em
// projetos internos. Qualquer registro malformado aborta o lote inteiro:
// a passada de sincronização é tudo-ou-nada.
func NormalizeProjects(tasks []taskboarddomain.Task) ([]*domain.Project, error) {
	projects := make([]*domain.Project, 0, len(tasks))
	seenCustomIDs := make(map[string]string, len(tasks))

	for _, task := range tasks {
		project, err := normalizeProject(task)
		if err != nil {
			return nil, err
		}

		if previous, exists := seenCustomIDs[project.CustomID]; exists && project.CustomID != "" {
			return nil, fmt.Errorf("%w: %s (tarefas %s e %s)",
				ErrDuplicateCustomID, project.CustomID, previous, task.ID)
		}
		seenCustomIDs[project.CustomID] = task.ID

		projects = append(projects, project)
	}

	return projects, nil
}

func normalizeProject(task taskboarddomain.Task) (*domain.Project, error) {
	if task.ID == "" {
		return nil, fmt.Errorf("%w: tarefa sem identificador externo", ErrMalformedRecord)
	}

	status := normalizeStatus(task.Status)

	project := &domain.Project{
		ID:             uuid.NewString(),
		ExternalID:     task.ID,
		CustomID:       task.CustomID,
		Name:           task.Name,
		Rede:           task.CustomFieldValue(fieldRede),
		UF:             task.CustomFieldValue(fieldUF),
		TipoLoja:       normalizeStoreType(task.CustomFieldValue(fieldTipoLoja)),
		Status:         status,
		Implantador:    task.Assignee(),
		DataInicio:     task.StartDate,
		DataPrevisao:   task.DueDate,
		ERP:            task.CustomFieldValue(fieldERP),
		CRM:            task.CustomFieldValue(fieldCRM),
		CNPJ:           task.CustomFieldValue(fieldCNPJ),
		LastActivityAt: task.DateUpdated,
		StepEvents:     normalizeStepEvents(task.StatusHistory),

		// O SLA conta por padrão; a exceção é registrada via API com justificativa
		ConsiderarTempo: true,
	}

	// Invariante: dataFim preenchida se e somente se o status for DONE
	if status == domain.ProjectStatusDone {
		project.DataFim = task.DoneDate
		if project.DataFim == nil {
			project.DataFim = task.DateUpdated
		}
		if project.DataFim == nil {
			return nil, fmt.Errorf("%w: tarefa %s concluída sem data de conclusão", ErrMalformedRecord, task.ID)
		}
	}

	financeiro, err := normalizeFinanceiro(task.CustomFieldValue(fieldFinanceiro))
	if err != nil {
		return nil, fmt.Errorf("%w: tarefa %s: %v", ErrMalformedRecord, task.ID, err)
	}
	project.FinanceiroStatus = financeiro

	if raw := task.CustomFieldValue(fieldTempoContrato); raw != "" {
		tempoContrato, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: tarefa %s: tempo de contrato inválido %q", ErrMalformedRecord, task.ID, raw)
		}
		project.TempoContrato = tempoContrato
	}

	project.ValorMensalidade, err = parseMoney(task.CustomFieldValue(fieldMensalidade))
	if err != nil {
		return nil, fmt.Errorf("%w: tarefa %s: mensalidade inválida", ErrMalformedRecord, task.ID)
	}
	if project.ValorMensalidade < 0 {
		return nil, fmt.Errorf("%w: tarefa %s: mensalidade negativa", ErrMalformedRecord, task.ID)
	}

	project.ValorImplantacao, err = parseMoney(task.CustomFieldValue(fieldImplantacao))
	if err != nil {
		return nil, fmt.Errorf("%w: tarefa %s: valor de implantação inválido", ErrMalformedRecord, task.ID)
	}

	return project, nil
}

// NormalizeIntegrationRecords converte as tarefas do fluxo secundário de
// integração, com a mesma disciplina tudo-ou-nada
func NormalizeIntegrationRecords(tasks []taskboarddomain.Task) ([]*domain.IntegrationRecord, error) {
	records := make([]*domain.IntegrationRecord, 0, len(tasks))

	for _, task := range tasks {
		if task.ID == "" {
			return nil, fmt.Errorf("%w: tarefa sem identificador externo", ErrMalformedRecord)
		}

		status := normalizeStatus(task.Status)

		record := &domain.IntegrationRecord{
			ID:             uuid.NewString(),
			ExternalID:     task.ID,
			Name:           task.Name,
			Rede:           task.CustomFieldValue(fieldRede),
			Sistema:        task.CustomFieldValue(fieldSistema),
			CNPJ:           task.CustomFieldValue(fieldCNPJ),
			Status:         status,
			Implantador:    task.Assignee(),
			DataInicio:     task.StartDate,
			LastActivityAt: task.DateUpdated,
		}

		if status == domain.ProjectStatusDone {
			record.DataFim = task.DoneDate
			if record.DataFim == nil {
				record.DataFim = task.DateUpdated
			}
		}

		records = append(records, record)
	}

	return records, nil
}

func normalizeStatus(status taskboarddomain.TaskStatus) domain.ProjectStatus {
	switch strings.ToLower(status.Type) {
	case "done", "closed":
		return domain.ProjectStatusDone
	case "blocked":
		return domain.ProjectStatusBlocked
	case "open":
		return domain.ProjectStatusNotStarted
	}

	if strings.Contains(strings.ToLower(status.Status), "bloquead") {
		return domain.ProjectStatusBlocked
	}

	return domain.ProjectStatusInProgress
}

func normalizeStoreType(raw string) domain.StoreType {
	if strings.EqualFold(strings.TrimSpace(raw), "matriz") {
		return domain.StoreTypeMatriz
	}
	return domain.StoreTypeFilial
}

func normalizeFinanceiro(raw string) (domain.FinanceiroStatus, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), " ", "_"))

	switch normalized {
	case "", "EM_DIA":
		return domain.FinanceiroEmDia, nil
	case "DEVENDO":
		return domain.FinanceiroDevendo, nil
	case "CANCELADO":
		return domain.FinanceiroCancelado, nil
	default:
		return "", fmt.Errorf("status financeiro desconhecido %q", raw)
	}
}

func normalizeStepEvents(history []taskboarddomain.StatusInterval) []domain.StepEvent {
	if len(history) == 0 {
		return nil
	}

	events := make([]domain.StepEvent, 0, len(history))
	for _, interval := range history {
		events = append(events, domain.StepEvent{
			StepName:  interval.Status,
			EnteredAt: interval.EnteredAt,
			LeftAt:    interval.LeftAt,
		})
	}

	return events
}

// parseMoney aceita valores monetários como texto, com vírgula ou ponto decimal
func parseMoney(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, nil
	}

	trimmed = strings.ReplaceAll(trimmed, ",", ".")
	return strconv.ParseFloat(trimmed, 64)
}
