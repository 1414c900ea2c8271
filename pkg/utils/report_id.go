package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	reportIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	reportIDLength   = 12
)

// GenerateReportID gera o identificador curto de uma exportação CSV
func GenerateReportID() (string, error) {
	return gonanoid.Generate(reportIDAlphabet, reportIDLength)
}
