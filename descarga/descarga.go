// Package descarga obtiene los TXT del SMN de las estaciones pedidas, los convierte a CSV y los
// entrega como un CSV único o como un ZIP.
package descarga

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"
	"visor-estaciones/catalogo"
	"visor-estaciones/helpers"
	"visor-estaciones/modelos"

	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

var (
	ErrSinEstaciones = errors.New("ninguna estación cumple los filtros")
	ErrSinDatos      = errors.New("ningún archivo con datos")
)

// Mensajes de la respuesta 404
const (
	MensajeSinEstaciones = "No se encontraron estaciones"
	MensajeSinDatos      = "No se encontro el tipo de dato solicitado."
)

const (
	TipoCSV = "text/csv; charset=utf-8"
	TipoZIP = "application/zip"
)

// Peticion son los parámetros de /api/descargar_csv
type Peticion struct {
	Estado    string
	Municipio string
	Clave     string
	Data      string
	Situacion string
}

type Resultado struct {
	Nombre        string
	TipoContenido string
	Contenido     []byte
}

type Opciones struct {
	// Workers es cuántos archivos se piden a la vez
	Workers int
	Tiempo  time.Duration
	// Cache es la carpeta donde se guardan los TXT ya descargados. Vacía desactiva la cache.
	Cache string
	HTTP  *http.Client
}

type Descargador struct {
	catalogo *catalogo.Catalogo
	http     *http.Client
	workers  int
	cache    string
	log      *logger.Entry
}

func Nuevo(c *catalogo.Catalogo, o Opciones) *Descargador {
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.HTTP == nil {
		o.HTTP = &http.Client{Timeout: o.Tiempo}
	}

	return &Descargador{
		catalogo: c,
		http:     o.HTTP,
		workers:  o.Workers,
		cache:    o.Cache,
		log:      logger.WithField("component", "descarga"),
	}
}

// tarea es un archivo a pedir. indice conserva el orden estación × tipo del resultado.
type tarea struct {
	indice   int
	estacion modelos.Estacion
	tipo     modelos.TipoDato
	url      string
}

type archivo struct {
	nombre    string
	contenido string
}

// tiposPedidos traduce el parámetro data. TODOS pide todas las series.
func tiposPedidos(data string) []modelos.TipoDato {
	if strings.EqualFold(data, string(modelos.TodosLosTipos)) {
		return modelos.TiposDato
	}
	return []modelos.TipoDato{modelos.TipoDato(strings.ToLower(data))}
}

// Preparar filtra el catálogo, baja y convierte cada serie disponible y arma el archivo final
func (d *Descargador) Preparar(ctx context.Context, p Peticion) (*Resultado, error) {
	if p.Data == "" {
		p.Data = string(modelos.Diarios)
	}

	estaciones := d.catalogo.Filtrar(catalogo.Filtro{
		Estado:    p.Estado,
		Municipio: p.Municipio,
		Clave:     p.Clave,
		Situacion: p.Situacion,
	})
	if len(estaciones) == 0 {
		return nil, ErrSinEstaciones
	}

	tareas := make([]tarea, 0)
	for _, e := range estaciones {
		for _, tipo := range tiposPedidos(p.Data) {
			url := strings.TrimSpace(e.URL(tipo))
			if url == "" {
				continue
			}
			tareas = append(tareas, tarea{indice: len(tareas), estacion: e, tipo: tipo, url: url})
		}
	}

	d.log.WithField("category", "preparar").Infof("[%d] estaciones y [%d] archivos para [%s]", len(estaciones), len(tareas), p.Data)

	archivos := d.bajar(ctx, tareas)
	if len(archivos) == 0 {
		return nil, ErrSinDatos
	}

	return empaquetar(nombreBase(p), archivos)
}

// bajar reparte las tareas entre los workers. Los archivos que fallan se registran y se omiten.
func (d *Descargador) bajar(ctx context.Context, tareas []tarea) []archivo {
	wWg, eWg := sync.WaitGroup{}, sync.WaitGroup{}
	wWg.Add(d.workers)
	eWg.Add(1)

	tareasCh := make(chan tarea, d.workers*10)
	errosCh := make(chan error)
	resultados := make([]*archivo, len(tareas))

	go func(ch <-chan error) {
		for err := range ch {
			d.log.WithField("category", "bajar").Warn(err)
		}
		eWg.Done()
	}(errosCh)

	for i := 0; i < d.workers; i++ {
		go func() {
			defer wWg.Done()
			for t := range tareasCh {
				res := d.procesar(ctx, t)
				if res.IsError() {
					errosCh <- errors.Wrapf(res.UnwrapError(), "estación [%s] tipo [%s]", t.estacion.Clave, t.tipo)
					continue
				}

				a := res.Unwrap()
				resultados[t.indice] = &a
			}
		}()
	}

	for _, t := range tareas {
		tareasCh <- t
	}

	close(tareasCh)
	wWg.Wait()
	close(errosCh)
	eWg.Wait()

	archivos := make([]archivo, 0, len(resultados))
	for _, a := range resultados {
		if a != nil {
			archivos = append(archivos, *a)
		}
	}
	return archivos
}

// nombreBase arma ESTADO_MUNICIPIO_CLAVE_DATA con los centinelas para lo que no se pidió
func nombreBase(p Peticion) string {
	parte := func(v, respaldo string) string {
		if v == "" {
			v = respaldo
		}
		return strings.ToUpper(strings.ReplaceAll(v, " ", "_"))
	}

	return strings.Join([]string{
		parte(p.Estado, helpers.EstadosTodos),
		parte(p.Municipio, helpers.MunicipiosTodos),
		parte(p.Clave, helpers.EstacionesTodas),
		strings.ToUpper(p.Data),
	}, "_")
}

// nombreArchivo es el nombre de la serie dentro del ZIP
func nombreArchivo(e modelos.Estacion, tipo modelos.TipoDato) string {
	municipio := e.Municipio
	if municipio == "" {
		municipio = "MUNICIPIO"
	}
	return strings.ReplaceAll(municipio, " ", "_") + "_" + e.Clave + "_" + string(tipo) + ".csv"
}
