package utils

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// PreviewJSON serializa o valor em JSON compacto, cortando em limit bytes.
// Usado para registrar formatos de resposta inesperados nos logs.
func PreviewJSON(in any, limit int) string {
	buffer, err := jsonAPI.Marshal(in)
	if err != nil {
		return fmt.Sprintf("<%T>", in)
	}

	if limit > 0 && len(buffer) > limit {
		return string(buffer[:limit]) + "..."
	}

	return string(buffer)
}
