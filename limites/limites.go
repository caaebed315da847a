// Package limites sirve los polígonos de estados y municipios a partir de archivos GeoJSON en WGS84.
package limites

import (
	"fmt"
	"os"
	"strings"
	"visor-estaciones/helpers"

	l "github.com/ahmetb/go-linq/v3"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

const (
	propiedadNombre = "NOMGEO"
	propiedadClave  = "CVE_ENT"
)

type Limites struct {
	estados    *geojson.FeatureCollection
	municipios *geojson.FeatureCollection
	log        *logger.Entry
}

func Cargar(rutaEstados, rutaMunicipios string) (*Limites, error) {
	estados, err := leer(rutaEstados)
	if err != nil {
		return nil, err
	}

	municipios, err := leer(rutaMunicipios)
	if err != nil {
		return nil, err
	}

	lim := Nuevo(estados, municipios)
	lim.log.WithField("category", "carga").Infof("[%d] estados y [%d] municipios cargados", len(estados.Features), len(municipios.Features))
	return lim, nil
}

func Nuevo(estados, municipios *geojson.FeatureCollection) *Limites {
	return &Limites{estados: estados, municipios: municipios, log: logger.WithField("component", "limites")}
}

func leer(ruta string) (*geojson.FeatureCollection, error) {
	b, err := os.ReadFile(ruta)
	if err != nil {
		return nil, errors.Wrapf(err, "no se pudo leer %s", ruta)
	}

	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		return nil, errors.Wrapf(err, "GeoJSON inválido en %s", ruta)
	}
	return fc, nil
}

func propiedad(f *geojson.Feature, nombre string) string {
	v, ok := f.Properties[nombre]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func contiene(f *geojson.Feature, texto string) bool {
	return strings.Contains(strings.ToUpper(propiedad(f, propiedadNombre)), strings.ToUpper(texto))
}

func coleccion(features []*geojson.Feature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		fc.Append(f)
	}
	return fc
}

// Estados devuelve los estados cuyo NOMGEO contiene estado. TODOS o vacío devuelve todos.
func (lim *Limites) Estados(estado string) *geojson.FeatureCollection {
	if helpers.EsCentinela(estado) {
		lim.log.WithField("category", "estados").Debugf("Todos los estados: %d", len(lim.estados.Features))
		return coleccion(lim.estados.Features)
	}

	var features []*geojson.Feature
	l.From(lim.estados.Features).
		WhereT(func(f *geojson.Feature) bool { return contiene(f, estado) }).
		ToSlice(&features)

	lim.log.WithField("category", "estados").Debugf("Estados filtrados por [%s]: %d", estado, len(features))
	return coleccion(features)
}

// Municipios devuelve los municipios del primer estado que coincide con estado y, si se pide,
// solo los que contienen municipio. Un estado desconocido da una colección vacía.
func (lim *Limites) Municipios(estado, municipio string) *geojson.FeatureCollection {
	features := lim.municipios.Features

	if !helpers.EsCentinela(estado) {
		coincidencia := l.From(lim.estados.Features).
			FirstWithT(func(f *geojson.Feature) bool { return contiene(f, estado) })

		if coincidencia == nil {
			lim.log.WithField("category", "municipios").Debugf("Estado [%s] no encontrado", estado)
			return geojson.NewFeatureCollection()
		}

		clave := propiedad(coincidencia.(*geojson.Feature), propiedadClave)
		var delEstado []*geojson.Feature
		l.From(features).
			WhereT(func(f *geojson.Feature) bool { return propiedad(f, propiedadClave) == clave }).
			ToSlice(&delEstado)
		features = delEstado

		lim.log.WithField("category", "municipios").Debugf("Filtrado por estado [%s] con código [%s]: %d", estado, clave, len(features))
	}

	if !helpers.EsCentinela(municipio) {
		var coinciden []*geojson.Feature
		l.From(features).
			WhereT(func(f *geojson.Feature) bool { return contiene(f, municipio) }).
			ToSlice(&coinciden)
		features = coinciden

		lim.log.WithField("category", "municipios").Debugf("Municipios después de filtrar [%s]: %d", municipio, len(features))
	}

	return coleccion(features)
}

func nombres(fc *geojson.FeatureCollection) []string {
	resultado := make([]string, 0)
	l.From(fc.Features).
		SelectT(func(f *geojson.Feature) string { return propiedad(f, propiedadNombre) }).
		Distinct().
		OrderByT(func(n string) string { return n }).
		ToSlice(&resultado)
	return resultado
}

// NombresEstados lista los NOMGEO distintos de los estados
func (lim *Limites) NombresEstados() []string {
	return nombres(lim.estados)
}

// NombresMunicipios lista los NOMGEO distintos de los municipios
func (lim *Limites) NombresMunicipios() []string {
	return nombres(lim.municipios)
}

// MunicipiosPorEstado cuenta los municipios de cada CVE_ENT
func (lim *Limites) MunicipiosPorEstado() map[string]int {
	conteo := make(map[string]int)
	for _, f := range lim.municipios.Features {
		conteo[propiedad(f, propiedadClave)]++
	}
	return conteo
}

func (lim *Limites) TotalMunicipios() int {
	return len(lim.municipios.Features)
}
