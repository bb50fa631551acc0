package syncing

import (
	"errors"
	"fmt"
)

// Erros específicos do contexto de sincronização
var (
	// Erros do sistema externo
	ErrBoardFetch = errors.New("erro ao buscar registros do quadro externo")

	// Erros de normalização
	ErrMalformedRecord   = errors.New("registro externo malformado")
	ErrDuplicateCustomID = errors.New("custom_id duplicado no lote sincronizado")

	// Erros de persistência
	ErrPersistBatch = errors.New("erro ao persistir lote sincronizado")

	// Erro de concorrência
	ErrSyncInProgress = errors.New("sincronização já em andamento")
)

// SyncError carrega o contexto de uma passada de sincronização abortada.
// Retryable indica condição transitória (rede, rate limit, banco); uma
// falha de normalização exige correção no quadro externo antes de repetir.
type SyncError struct {
	Err       error
	RunID     string
	Stream    string
	Record    string // identificador do registro que causou o aborto, quando aplicável
	Retryable bool
}

// Error implementa a interface error
func (e *SyncError) Error() string {
	if e.Record != "" {
		return fmt.Sprintf("sync %s (run %s): %s: registro %s", e.Stream, e.RunID, e.Err.Error(), e.Record)
	}
	return fmt.Sprintf("sync %s (run %s): %s", e.Stream, e.RunID, e.Err.Error())
}

// Unwrap retorna o erro subjacente
func (e *SyncError) Unwrap() error {
	return e.Err
}
