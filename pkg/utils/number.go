package utils

import (
	"math"
	"strconv"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// ParseIntOrZero converte as métricas em string da API, tratando ausência como zero
func ParseIntOrZero(s string) int64 {
	if s == "" {
		return 0
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func ParseFloatOrZero(s string) float64 {
	if s == "" {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseFloatOrNil distingue métrica ausente (nil) de métrica zerada
func ParseFloatOrNil(s string) *float64 {
	if s == "" {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// SafeDivide retorna nil quando o denominador é zero, nunca NaN ou Inf
func SafeDivide(numerator, denominator float64) *float64 {
	if denominator == 0 {
		return nil
	}

	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return nil
	}
	return &result
}
