package utils

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// IsNumeric indica se o valor é um número nativo (exceto booleanos) ou um
// texto que, sem espaços e sem separador de milhar, é um float válido
func IsNumeric(v any) bool {
	_, ok := parseNumber(v)
	return ok
}

// ToNumber converte o valor para float64. Nulo, vazio e texto inválido viram 0.
func ToNumber(v any) float64 {
	f, _ := parseNumber(v)
	return f
}

func parseNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case nil, bool:
		return 0, false
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		return parseNumericString(x.String())
	case string:
		return parseNumericString(x)
	default:
		return 0, false
	}
}

func parseNumericString(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || isHexLiteral(s) {
		return 0, false
	}
	if strings.Contains(s, "_") {
		if !digitUnderscoresOK(s) {
			return 0, false
		}
		s = strings.ReplaceAll(s, "_", "")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// fora do intervalo ainda é um número (±Inf)
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}

	return f, true
}

// isHexLiteral identifica literais 0x..., que não contam como número
func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// digitUnderscoresOK aceita "_" apenas entre dois dígitos, como em "1_000"
func digitUnderscoresOK(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
