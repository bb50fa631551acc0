package scoring

import (
	"time"

	"github.com/vfg2006/implantacao-api/internal/domain"
	"github.com/vfg2006/implantacao-api/internal/usecases/deriving"
)

// Predictor estima quantos dias de atraso um projeto terá em relação à
// data de previsão. O modelo de previsão em si é externo ao motor; o
// PacePredictor abaixo é o estimador padrão para operação sem modelo.
type Predictor interface {
	DaysLate(p *domain.Project, now time.Time) float64
}

// PacePredictor assume que o restante da implantação segue o ritmo
// contratual: o atraso previsto é o tempo já decorrido além da previsão
type PacePredictor struct{}

func NewPacePredictor() *PacePredictor {
	return &PacePredictor{}
}

func (*PacePredictor) DaysLate(p *domain.Project, now time.Time) float64 {
	if p.Status == domain.ProjectStatusDone {
		return 0
	}

	forecast := deriving.Forecast(p)
	if forecast == nil {
		return 0
	}

	late := now.Sub(*forecast).Hours() / 24
	if late < 0 {
		return 0
	}

	return late
}
