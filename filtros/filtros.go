// Package filtros contiene la lógica pura de la cascada de selectores: opciones
// derivadas, filtros de búsqueda, estadísticas y la consulta de descarga.
package filtros

import (
	"strings"
	"visor-estaciones/helpers"
	"visor-estaciones/modelos"

	l "github.com/ahmetb/go-linq/v3"
)

// Filtro son los criterios de búsqueda que se aplican en orden: municipio, clave y situación
type Filtro struct {
	Municipio string
	Clave     string
	Situacion string
}

// Municipios devuelve el conjunto ordenado de municipios distintos y no vacíos
func Municipios(estaciones []modelos.Estacion) []string {
	municipios := make([]string, 0)

	l.From(estaciones).
		SelectT(func(e modelos.Estacion) string { return e.Municipio }).
		WhereT(func(m string) bool { return strings.TrimSpace(m) != "" }).
		Distinct().
		OrderByT(func(m string) string { return m }).
		ToSlice(&municipios)

	return municipios
}

// OpcionesMunicipios arma las opciones del selector de municipio, con TODOS al principio.
// El valor de cada opción va en minúsculas, como lo espera la API de descarga.
func OpcionesMunicipios(estaciones []modelos.Estacion) []modelos.Opcion {
	opciones := []modelos.Opcion{{Valor: helpers.Todos, Etiqueta: helpers.Todos}}

	for _, m := range Municipios(estaciones) {
		opciones = append(opciones, modelos.Opcion{Valor: strings.ToLower(m), Etiqueta: m})
	}

	return opciones
}

// DeMunicipio deja las estaciones del municipio, sin distinguir mayúsculas. TODOS no filtra.
func DeMunicipio(estaciones []modelos.Estacion, municipio string) []modelos.Estacion {
	if helpers.EsCentinela(municipio) {
		return estaciones
	}

	var filtradas []modelos.Estacion
	l.From(estaciones).WhereT(func(e modelos.Estacion) bool {
		return strings.EqualFold(e.Municipio, municipio)
	}).ToSlice(&filtradas)

	return filtradas
}

// OpcionesEstaciones arma las opciones del selector de estación, con TODAS al principio
func OpcionesEstaciones(estaciones []modelos.Estacion) []modelos.Opcion {
	opciones := []modelos.Opcion{{Valor: helpers.Todas, Etiqueta: helpers.Todas}}

	for _, e := range estaciones {
		if e.Clave == "" {
			continue
		}
		opciones = append(opciones, modelos.Opcion{Valor: e.Clave, Etiqueta: e.Clave + " - " + e.Nombre})
	}

	return opciones
}

// Situaciones devuelve las situaciones distintas presentes en las estaciones, ordenadas
func Situaciones(estaciones []modelos.Estacion) []string {
	situaciones := make([]string, 0)

	l.From(estaciones).
		SelectT(func(e modelos.Estacion) string { return e.Situacion }).
		WhereT(func(s string) bool { return strings.TrimSpace(s) != "" }).
		Distinct().
		OrderByT(func(s string) string { return s }).
		ToSlice(&situaciones)

	return situaciones
}

// OpcionesSituacion arma el selector de situación con TODAS al principio
func OpcionesSituacion(estaciones []modelos.Estacion) []modelos.Opcion {
	opciones := []modelos.Opcion{{Valor: helpers.Todas, Etiqueta: helpers.Todas}}

	for _, s := range Situaciones(estaciones) {
		opciones = append(opciones, modelos.Opcion{Valor: s, Etiqueta: s})
	}

	return opciones
}

// Filtrar aplica los tres filtros de la búsqueda sin modificar la lista original
func Filtrar(estaciones []modelos.Estacion, f Filtro) []modelos.Estacion {
	consulta := l.From(DeMunicipio(estaciones, f.Municipio))

	if !helpers.EsCentinela(f.Clave) {
		consulta = consulta.WhereT(func(e modelos.Estacion) bool { return e.Clave == f.Clave })
	}

	if !helpers.EsCentinela(f.Situacion) {
		consulta = consulta.WhereT(func(e modelos.Estacion) bool { return e.Situacion == f.Situacion })
	}

	filtradas := make([]modelos.Estacion, 0)
	consulta.ToSlice(&filtradas)

	return filtradas
}
