package taskboardclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"

	taskboarddomain "github.com/vfg2006/implantacao-api/infrastructure/integrator/taskboard/domain"
)

type listTasksResponse struct {
	Tasks []taskboarddomain.Task `json:"tasks"`
}

// ListTasks busca todas as tarefas de uma lista do quadro externo,
// incluindo campos customizados e histórico de status
func (c *TaskBoardClient) ListTasks(ctx context.Context, listID string) ([]taskboarddomain.Task, error) {
	// Construir a URL da requisição.
	endpoint, err := url.Parse(c.config.TaskBoard.URL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, "lists", listID, "tasks")

	// Adicionar parâmetros de consulta.
	query := endpoint.Query()
	query.Set("include_history", "true")
	query.Set("include_closed", "true")
	endpoint.RawQuery = query.Encode()

	// Criar a requisição HTTP.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	// Adicionar cabeçalhos necessários.
	req.Header.Set("Authorization", "Bearer "+c.config.TaskBoard.AccessToken)
	req.Header.Set("Accept", "application/json")

	// Executar a requisição.
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	// Verificar o código de status da resposta.
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: status %s", ErrRateLimited, resp.Status)
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: status %s", ErrUnreachable, resp.Status)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %s", ErrBadResponse, resp.Status)
	}

	// Decodificar a resposta JSON.
	var response listTasksResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	return response.Tasks, nil
}
