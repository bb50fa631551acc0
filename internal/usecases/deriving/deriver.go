// Package deriving calcula os campos derivados de tempo e atividade de um
// projeto. Todas as funções são puras em relação aos argumentos e seguras
// para chamadas concorrentes.
package deriving

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/implantacao-api/internal/domain"
)

const hoursPerDay = 24

// IdleDays retorna os dias inteiros desde a última atividade registrada no
// quadro externo. Sem timestamp de atividade, conta a partir da data de início.
func IdleDays(p *domain.Project, now time.Time) int {
	reference := p.LastActivityAt
	if reference == nil {
		reference = p.DataInicio
	}
	if reference == nil {
		return 0
	}

	return wholeDays(*reference, now)
}

// DiasEmTransito retorna os dias entre a data de início e a data de fim,
// ou até agora quando a implantação ainda não terminou
func DiasEmTransito(p *domain.Project, now time.Time) int {
	if p.DataInicio == nil {
		logrus.WithFields(logrus.Fields{
			"project_id": p.ID,
			"custom_id":  p.CustomID,
		}).Warn("Projeto sem data de início, dias em trânsito zerado")
		return 0
	}

	end := now
	if p.DataFim != nil {
		end = *p.DataFim
	}

	return wholeDays(*p.DataInicio, end)
}

// Forecast retorna a data de previsão calculada a partir do contrato.
// Uma previsão já armazenada (sobrescrita manual) tem precedência.
func Forecast(p *domain.Project) *time.Time {
	if p.DataPrevisao != nil {
		return p.DataPrevisao
	}

	if p.DataInicio == nil || p.TempoContrato <= 0 {
		return nil
	}

	forecast := p.DataInicio.AddDate(0, 0, p.TempoContrato)
	return &forecast
}

// Apply preenche os campos derivados de tempo do projeto
func Apply(p *domain.Project, now time.Time) {
	p.IdleDays = IdleDays(p, now)
	p.DiasEmTransito = DiasEmTransito(p, now)

	if p.DataPrevisao == nil {
		p.DataPrevisao = Forecast(p)
	}
}

// IdleDaysRecord calcula os dias ociosos de um registro de integração
func IdleDaysRecord(record *domain.IntegrationRecord, now time.Time) int {
	reference := record.LastActivityAt
	if reference == nil {
		reference = record.DataInicio
	}
	if reference == nil {
		return 0
	}

	return wholeDays(*reference, now)
}

func wholeDays(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours() / hoursPerDay)
}
