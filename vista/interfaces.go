// Package vista es el modelo de vista del visor de estaciones: los selectores en cascada,
// la búsqueda, el mapa, las estadísticas, la descarga y el formulario de sugerencias.
package vista

import (
	"context"
	"visor-estaciones/api"
	"visor-estaciones/mapa"
	"visor-estaciones/modelos"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb/geojson"
)

// Fuente es la API de estaciones. *api.Cliente la implementa.
type Fuente interface {
	ObtenerEstados(ctx context.Context) ([]string, error)
	ObtenerEstaciones(ctx context.Context, estado string) ([]modelos.Estacion, error)
	ObtenerGeoJSONEstados(ctx context.Context, estado string) (*geojson.FeatureCollection, error)
	ObtenerGeoJSONMunicipios(ctx context.Context, estado, municipio string) (*geojson.FeatureCollection, error)
	Descargar(ctx context.Context, ruta string) (*api.Archivo, error)
	EnviarSugerencia(ctx context.Context, s modelos.Sugerencia) error
}

// Mapa es donde se dibujan marcadores y polígonos. *mapa.Lienzo lo implementa.
type Mapa interface {
	AgregarMarcador(posicion s2.LatLng, icono mapa.Icono, popup string, alClic func()) *mapa.Marcador
	AgregarPoligonos(datos *geojson.FeatureCollection, estilo mapa.Estilo) *mapa.Poligonos
	Quitar(capa mapa.Capa)
	AjustarVista(limites s2.Rect)
}

type Aviso int

const (
	AvisoDescarga Aviso = iota
	AvisoError
)

func (a Aviso) String() string {
	if a == AvisoDescarga {
		return "Descarga completada"
	}
	return "No se pudo descargar el archivo"
}

// Notificador muestra al usuario alertas bloqueantes y avisos breves
type Notificador interface {
	Alerta(mensaje string)
	Aviso(a Aviso)
}

// Guardador entrega al usuario el archivo descargado
type Guardador interface {
	Guardar(nombre string, contenido []byte) error
}
