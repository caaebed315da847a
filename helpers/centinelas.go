package helpers

import (
	"net/url"
	"strings"
)

// Valores que significan "sin filtro" tanto para el cliente como para el servidor
const (
	EstadosTodos    = "ESTADOS_TODOS"
	MunicipiosTodos = "MUNICIPIOS_TODOS"
	EstacionesTodas = "ESTACIONES_TODAS"
	Todos           = "TODOS"
	Todas           = "TODAS"
)

var centinelas = []string{EstadosTodos, MunicipiosTodos, EstacionesTodas, Todos, Todas}

// EsCentinela indica si el valor debe omitirse como filtro. El valor vacío también cuenta.
func EsCentinela(valor string) bool {
	valor = strings.ToUpper(strings.TrimSpace(valor))
	if valor == "" {
		return true
	}

	for _, c := range centinelas {
		if valor == c {
			return true
		}
	}

	return false
}

// ValorORespaldo devuelve respaldo cuando valor está vacío
func ValorORespaldo(valor, respaldo string) string {
	if valor == "" {
		return respaldo
	}
	return valor
}

// EscaparComponente codifica un valor de consulta con los espacios como %20, al estilo de encodeURIComponent
func EscaparComponente(valor string) string {
	return strings.ReplaceAll(url.QueryEscape(valor), "+", "%20")
}
