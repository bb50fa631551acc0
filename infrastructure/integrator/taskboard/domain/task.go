package domain

import "time"

// TaskStatus é o status de uma tarefa no quadro externo
type TaskStatus struct {
	Status string `json:"status"`
	Type   string `json:"type"` // open, custom, done, blocked
}

// Assignee é o responsável pela tarefa no quadro externo
type Assignee struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CustomField é um campo customizado da tarefa. Os valores chegam como
// texto e são interpretados pelo normalizador
type CustomField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// StatusInterval é um intervalo de permanência em uma coluna do quadro,
// extraído do histórico de status da tarefa
type StatusInterval struct {
	Status    string     `json:"status"`
	EnteredAt time.Time  `json:"entered_at"`
	LeftAt    *time.Time `json:"left_at,omitempty"`
}

// Task é uma tarefa crua retornada pelo quadro externo
type Task struct {
	ID       string     `json:"id"`
	CustomID string     `json:"custom_id"`
	Name     string     `json:"name"`
	Status   TaskStatus `json:"status"`

	Assignees []Assignee `json:"assignees"`

	StartDate *time.Time `json:"start_date,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	DoneDate  *time.Time `json:"done_date,omitempty"`

	// DateUpdated é o timestamp da última atividade registrada na tarefa
	DateUpdated *time.Time `json:"date_updated,omitempty"`

	CustomFields  []CustomField    `json:"custom_fields"`
	StatusHistory []StatusInterval `json:"status_history,omitempty"`
}

// CustomFieldValue retorna o valor de um campo customizado pelo nome,
// ou vazio quando o campo não existe na tarefa
func (t *Task) CustomFieldValue(name string) string {
	for _, field := range t.CustomFields {
		if field.Name == name {
			return field.Value
		}
	}
	return ""
}

// Assignee retorna o primeiro responsável da tarefa, ou vazio
func (t *Task) Assignee() string {
	if len(t.Assignees) == 0 {
		return ""
	}
	return t.Assignees[0].Username
}
