package domain

import "time"

// KPIData são os agregados pontuais do período solicitado
type KPIData struct {
	WIPStores        int     `json:"wipStores"`
	ThroughputPeriod int     `json:"throughputPeriod"`
	MRRDonePeriod    float64 `json:"mrrDonePeriod"`
	MRRBacklog       float64 `json:"mrrBacklog"`
}

// KPICards é o payload do endpoint de cartões do painel
type KPICards struct {
	WIPCount   int     `json:"wipCount"`
	DoneCount  int     `json:"doneCount"`
	MRRBacklog float64 `json:"mrrBacklog"`
	MRRDone    float64 `json:"mrrDone"`
}

// RiskPoint alimenta o gráfico de dispersão de risco: um ponto por projeto ativo
type RiskPoint struct {
	Name      string  `json:"name"`
	IdleDays  int     `json:"idleDays"`
	RiskScore int     `json:"riskScore"`
	MRR       float64 `json:"mrr"`
}

// BottleneckRow é o agregado por etapa do processo
type BottleneckRow struct {
	StepName  string  `json:"stepName"`
	TotalDays float64 `json:"totalDays"`
	AvgDays   float64 `json:"avgDays"`
	Reopens   int     `json:"reopens"`
}

// ForecastPoint é o realizado versus projetado de MRR em um mês
type ForecastPoint struct {
	Month     string  `json:"month"` // formato 01-2006
	Realized  float64 `json:"realized"`
	Projected float64 `json:"projected"`
}

// AnalyticsResponse é o payload completo da aba de analytics do painel
type AnalyticsResponse struct {
	KPIData         KPIData           `json:"kpiData"`
	PerformanceData []ImplementerStat `json:"performanceData"`
	RiskData        []RiskPoint       `json:"riskData"`
	BottleneckData  []BottleneckRow   `json:"bottleneckData"`
	ForecastData    []ForecastPoint   `json:"forecastData"`

	// ExcludedProjects lista os projetos com configuração inválida
	// (ex.: tempo de contrato zerado) excluídos dos agregados de prazo
	ExcludedProjects []string `json:"excludedProjects,omitempty"`

	RulesVersion int       `json:"rulesVersion"`
	GeneratedAt  time.Time `json:"generatedAt"`
}
