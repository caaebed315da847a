package catalogo

import (
	"strings"
	"visor-estaciones/helpers"
	"visor-estaciones/modelos"

	l "github.com/ahmetb/go-linq/v3"
)

// Catalogo es la lista de estaciones en memoria. No se modifica después de cargarse.
type Catalogo struct {
	estaciones []modelos.Estacion
}

func Nuevo(estaciones []modelos.Estacion) *Catalogo {
	return &Catalogo{estaciones: estaciones}
}

func (c *Catalogo) Total() int {
	return len(c.estaciones)
}

// Estados devuelve los nombres de estado distintos, en mayúsculas y ordenados
func (c *Catalogo) Estados() []string {
	estados := make([]string, 0)

	l.From(c.estaciones).
		SelectT(func(e modelos.Estacion) string { return strings.ToUpper(strings.TrimSpace(e.Estado)) }).
		WhereT(func(e string) bool { return e != "" }).
		Distinct().
		OrderByT(func(e string) string { return e }).
		ToSlice(&estados)

	return estados
}

// Filtro son los parámetros de consulta del catálogo. Vacíos o centinelas no filtran.
type Filtro struct {
	Estado    string
	Municipio string
	Clave     string
	Situacion string
}

func (c *Catalogo) Filtrar(f Filtro) []modelos.Estacion {
	consulta := l.From(c.estaciones)

	if !helpers.EsCentinela(f.Estado) {
		consulta = consulta.WhereT(func(e modelos.Estacion) bool { return e.Estado != "" && strings.EqualFold(e.Estado, f.Estado) })
	}
	if !helpers.EsCentinela(f.Municipio) {
		consulta = consulta.WhereT(func(e modelos.Estacion) bool {
			return e.Municipio != "" && strings.EqualFold(e.Municipio, f.Municipio)
		})
	}
	if !helpers.EsCentinela(f.Clave) {
		consulta = consulta.WhereT(func(e modelos.Estacion) bool { return e.Clave == f.Clave })
	}
	if !helpers.EsCentinela(f.Situacion) {
		consulta = consulta.WhereT(func(e modelos.Estacion) bool {
			return e.Situacion != "" && strings.EqualFold(e.Situacion, f.Situacion)
		})
	}

	filtradas := make([]modelos.Estacion, 0)
	consulta.ToSlice(&filtradas)

	return filtradas
}
