package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkAccounts(t *testing.T) {
	tests := []struct {
		name     string
		accounts []string
		size     int
		expected [][]string
	}{
		{
			name:     "Lista múltipla do tamanho do lote deve gerar lotes cheios",
			accounts: []string{"A", "B", "C", "D"},
			size:     2,
			expected: [][]string{{"A", "B"}, {"C", "D"}},
		},
		{
			name:     "Último lote pode ser menor",
			accounts: []string{"A", "B", "C", "D", "E"},
			size:     2,
			expected: [][]string{{"A", "B"}, {"C", "D"}, {"E"}},
		},
		{
			name:     "Lote maior que a lista deve gerar um único lote",
			accounts: []string{"A", "B"},
			size:     5,
			expected: [][]string{{"A", "B"}},
		},
		{
			name:     "Lista vazia deve gerar zero lotes",
			accounts: []string{},
			size:     5,
			expected: [][]string{},
		},
		{
			name:     "Tamanho inválido deve cair para lotes unitários",
			accounts: []string{"A", "B"},
			size:     0,
			expected: [][]string{{"A"}, {"B"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, chunkAccounts(tt.accounts, tt.size))
		})
	}
}
