package domain

import "time"

// Conversions mapeia o tipo de ação (ex: "purchase", "lead") para o valor acumulado
// no período consultado. É derivado da lista de actions retornada pela API.
type Conversions map[string]float64

// Action representa uma entrada bruta da lista de actions da API de insights
type Action struct {
	ActionType string `json:"action_type"`
	Value      float64 `json:"value,string"`
}

// DateRange representa o intervalo de datas usado nas consultas de insights
type DateRange struct {
	Since time.Time `json:"since"`
	Until time.Time `json:"until"`
}

func (d DateRange) SinceString() string {
	return d.Since.Format(time.DateOnly)
}

func (d DateRange) UntilString() string {
	return d.Until.Format(time.DateOnly)
}

// Total soma os valores de todas as conversões
func (c Conversions) Total() float64 {
	var total float64
	for _, value := range c {
		total += value
	}
	return total
}
