package filtros

import (
	"strings"
	"visor-estaciones/helpers"
	"visor-estaciones/modelos"
)

const RutaDescargaCSV = "/api/descargar_csv"

// Seleccion es el valor actual de cada selector de la vista
type Seleccion struct {
	Estado    string
	Municipio string
	Estacion  string
	TipoDato  string
	Situacion string
}

// ConsultaDescarga arma la cadena de consulta de la descarga. Los selectores vacíos caen en su
// centinela y cualquier centinela se omite, salvo data que siempre va primero.
func ConsultaDescarga(s Seleccion) string {
	estado := helpers.ValorORespaldo(s.Estado, helpers.EstadosTodos)
	municipio := helpers.ValorORespaldo(s.Municipio, helpers.MunicipiosTodos)
	estacion := helpers.ValorORespaldo(s.Estacion, helpers.EstacionesTodas)
	tipo := helpers.ValorORespaldo(s.TipoDato, string(modelos.TodosLosTipos))

	partes := []string{"data=" + helpers.EscaparComponente(tipo)}

	agregar := func(nombre, valor string) {
		if !helpers.EsCentinela(valor) {
			partes = append(partes, nombre+"="+helpers.EscaparComponente(valor))
		}
	}

	agregar("estado", estado)
	agregar("municipio", municipio)
	agregar("clave", estacion)
	agregar("situacion", s.Situacion)

	return strings.Join(partes, "&")
}

func RutaDescarga(s Seleccion) string {
	return RutaDescargaCSV + "?" + ConsultaDescarga(s)
}
