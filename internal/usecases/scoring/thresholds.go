package scoring

import "github.com/vfg2006/implantacao-api/internal/domain"

// LookupScore resolve um valor contra uma tabela ordenada de faixas:
// retorna a pontuação do primeiro par cujo limite superior cobre o valor.
// A última faixa é aberta, então a busca é total para qualquer valor >= 0.
// A mesma rotina atende as tabelas de prazo e de ociosidade.
func LookupScore(thresholds []domain.Threshold, value float64) float64 {
	for _, t := range thresholds {
		if value <= t.UpperBound {
			return t.Score
		}
	}

	// Acima de todos os limites: vale a pontuação da última faixa
	return thresholds[len(thresholds)-1].Score
}
