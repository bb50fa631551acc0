// Package ruling mantém o RuleSet vigente do processo: versionado,
// trocado atomicamente e lido por snapshot pelos scorers
package ruling

import (
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/implantacao-api/internal/domain"
)

type RulesStore interface {
	Snapshot() *domain.RuleSet
	Update(rules *domain.RuleSet) (*domain.RuleSet, error)
}

// Store guarda o RuleSet vigente. Leituras retornam uma cópia profunda,
// então uma agregação em andamento nunca observa uma atualização no meio
// da passada.
type Store struct {
	mu      sync.RWMutex
	current *domain.RuleSet
}

// NewStore cria o store com o conjunto de regras padrão. Um padrão
// inválido é erro de programação e derruba o serviço na inicialização.
func NewStore() *Store {
	defaults := domain.DefaultRuleSet()
	if err := defaults.Validate(); err != nil {
		logrus.WithError(err).Fatal("RuleSet padrão inválido")
	}

	return &Store{
		current: defaults,
	}
}

// Snapshot retorna uma cópia consistente do RuleSet vigente
func (s *Store) Snapshot() *domain.RuleSet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current.Clone()
}

// Update valida e instala um novo RuleSet, incrementando a versão.
// Um conjunto inválido nunca substitui o vigente.
func (s *Store) Update(rules *domain.RuleSet) (*domain.RuleSet, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := rules.Clone()
	next.Version = s.current.Version + 1
	s.current = next

	logrus.WithFields(logrus.Fields{
		"version": next.Version,
	}).Info("RuleSet atualizado")

	return next.Clone(), nil
}
