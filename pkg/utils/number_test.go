package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
	}{
		{name: "texto com separador de milhar", value: "1,234.5", want: 1234.5},
		{name: "texto vazio", value: "", want: 0},
		{name: "nulo", value: nil, want: 0},
		{name: "texto não numérico", value: "abc", want: 0},
		{name: "texto com espaços", value: "  42 ", want: 42},
		{name: "json.Number", value: json.Number("7.25"), want: 7.25},
		{name: "inteiro nativo", value: 3, want: 3},
		{name: "float nativo", value: 2.5, want: 2.5},
		{name: "booleano", value: true, want: 0},
		{name: "lista", value: []any{1}, want: 0},
		{name: "separador de dígitos", value: "1_000.5", want: 1000.5},
		{name: "float hexadecimal", value: "0x1p3", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToNumber(tt.value))
		})
	}
}

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{name: "texto com separador de milhar", value: "1,234.5", want: true},
		{name: "texto vazio", value: "", want: false},
		{name: "só espaços", value: "   ", want: false},
		{name: "texto não numérico", value: "abc", want: false},
		{name: "booleano verdadeiro", value: true, want: false},
		{name: "booleano falso", value: false, want: false},
		{name: "nulo", value: nil, want: false},
		{name: "zero em texto", value: "0", want: true},
		{name: "json.Number", value: json.Number("10"), want: true},
		{name: "float nativo", value: 0.0, want: true},
		{name: "notação científica", value: "1e3", want: true},
		{name: "separador de dígitos", value: "1_000", want: true},
		{name: "separador no expoente", value: "1e1_0", want: true},
		{name: "separador duplicado", value: "1__000", want: false},
		{name: "separador no início", value: "_1", want: false},
		{name: "separador no fim", value: "1_", want: false},
		{name: "separador antes do ponto", value: "1_.5", want: false},
		{name: "float hexadecimal", value: "0x1p3", want: false},
		{name: "hexadecimal negativo", value: "-0X10", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNumeric(tt.value))
		})
	}
}
