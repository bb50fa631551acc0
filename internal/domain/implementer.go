package domain

// LoadLevel é a classificação de carga de trabalho de um implantador.
// A faixa entre NORMAL e ALTO é uma zona de transição sem rótulo,
// reportada apenas numericamente.
type LoadLevel string

const (
	LoadLevelBaixo      LoadLevel = "BAIXO"
	LoadLevelNormal     LoadLevel = "NORMAL"
	LoadLevelSobrecarga LoadLevel = "SOBRECARGA"
	LoadLevelNone       LoadLevel = ""
)

// ImplementerStat é a estatística derivada de um implantador, recalculada
// a cada requisição de agregação e nunca persistida
type ImplementerStat struct {
	Implantador string `json:"implantador"`

	Done int `json:"done"`
	WIP  int `json:"wip"`

	// Volume é a soma dos pesos operacionais dos projetos concluídos
	Volume float64 `json:"volume"`

	OTDRate      float64 `json:"otdRate"`
	QualityRate  float64 `json:"qualityRate"`
	AvgCycleDays float64 `json:"avgCycleDays"`

	PerformanceScore float64 `json:"performanceScore"`

	WorkloadPct float64   `json:"workloadPct"`
	LoadLevel   LoadLevel `json:"loadLevel"`
}
