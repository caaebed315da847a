package vista

import (
	"context"
	"sync"
	"visor-estaciones/filtros"
	"visor-estaciones/helpers"
	"visor-estaciones/mapa"
	"visor-estaciones/modelos"

	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

var (
	ErrOpcionInvalida        = errors.New("la opción no está disponible en el selector")
	ErrSelectorDeshabilitado = errors.New("el selector está deshabilitado")
	ErrFiltrosIncompletos    = errors.New("faltan filtros por seleccionar")
	ErrSinResultados         = errors.New("sin estaciones para los filtros")
)

// MensajeSinResultados es la alerta de una búsqueda vacía
const MensajeSinResultados = "No se encontraron estaciones para los filtros seleccionados."

// Controlador es dueño de todo el estado de la vista. Sus métodos pueden llamarse desde varias
// goroutines; las peticiones a la Fuente se hacen sin sostener el candado.
type Controlador struct {
	fuente     Fuente
	mapa       Mapa
	avisos     Notificador
	archivos   Guardador
	secuencias *Secuenciador
	log        *logger.Entry

	mu             sync.Mutex
	estado         Selector
	municipio      Selector
	estacion       Selector
	tipoDato       Selector
	situacion      Selector
	marcadores     []*mapa.Marcador
	capaEstados    *mapa.Poligonos
	capaMunicipios *mapa.Poligonos
	filtradas      []modelos.Estacion
	estadisticas   filtros.Estadisticas
	ficha          Ficha
	descarga       Boton
}

func NuevoControlador(fuente Fuente, m Mapa, avisos Notificador, archivos Guardador) *Controlador {
	c := &Controlador{
		fuente:     fuente,
		mapa:       m,
		avisos:     avisos,
		archivos:   archivos,
		secuencias: NuevoSecuenciador(),
		log:        logger.WithField("component", "vista"),
		estado:     nuevoSelector(marcadorEstado, false),
		municipio:  nuevoSelector(marcadorMunicipio, true),
		estacion:   nuevoSelector(marcadorEstacion, true),
		tipoDato:   selectorTipoDato(),
		situacion:  Selector{Opciones: filtros.OpcionesSituacion(nil), Valor: helpers.Todas},
		descarga:   Boton{Etiqueta: etiquetaDescargar, Deshabilitado: true},
	}
	return c
}

func selectorTipoDato() Selector {
	s := nuevoSelector(marcadorTipoDato, true)
	for _, t := range modelos.TiposDato {
		s.Opciones = append(s.Opciones, modelos.Opcion{Valor: string(t), Etiqueta: t.Etiqueta()})
	}
	s.Opciones = append(s.Opciones, modelos.Opcion{Valor: string(modelos.TodosLosTipos), Etiqueta: modelos.TodosLosTipos.Etiqueta()})
	return s
}

// Instantanea es una copia del estado visible de la vista
type Instantanea struct {
	Estado       Selector
	Municipio    Selector
	Estacion     Selector
	TipoDato     Selector
	Situacion    Selector
	Estaciones   []modelos.Estacion
	Estadisticas filtros.Estadisticas
	Ficha        Ficha
	Descarga     Boton
	Marcadores   int
}

func (c *Controlador) Instantanea() Instantanea {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Instantanea{
		Estado:       c.estado.copia(),
		Municipio:    c.municipio.copia(),
		Estacion:     c.estacion.copia(),
		TipoDato:     c.tipoDato.copia(),
		Situacion:    c.situacion.copia(),
		Estaciones:   append([]modelos.Estacion(nil), c.filtradas...),
		Estadisticas: c.estadisticas,
		Ficha:        c.ficha,
		Descarga:     c.descarga,
		Marcadores:   len(c.marcadores),
	}
}

func (c *Controlador) seleccion() filtros.Seleccion {
	return filtros.Seleccion{
		Estado:    c.estado.Valor,
		Municipio: c.municipio.Valor,
		Estacion:  c.estacion.Valor,
		TipoDato:  c.tipoDato.Valor,
		Situacion: c.situacion.Valor,
	}
}

// CargarEstados llena el selector de estados con los que publica la API
func (c *Controlador) CargarEstados(ctx context.Context) error {
	estados, err := c.fuente.ObtenerEstados(ctx)
	if err != nil {
		c.log.WithField("category", "estados").Error(err)
		c.avisos.Alerta("Error al cargar estados.")
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.estado.reiniciar(marcadorEstado)
	for _, e := range estados {
		c.estado.Opciones = append(c.estado.Opciones, modelos.Opcion{Valor: e, Etiqueta: e})
	}

	c.log.WithField("category", "estados").Infof("[%d] estados cargados", len(estados))
	return nil
}

// CambiarEstado reinicia los selectores dependientes y, si hay estado, llena los municipios
func (c *Controlador) CambiarEstado(ctx context.Context, estado string) error {
	c.mu.Lock()
	if !c.estado.Contiene(estado) {
		c.mu.Unlock()
		return errors.Wrapf(ErrOpcionInvalida, "estado [%s]", estado)
	}

	c.estado.Valor = estado
	c.municipio.reiniciar(marcadorMunicipio)
	c.municipio.Deshabilitado = estado == ""
	c.estacion.reiniciar(marcadorEstacion)
	c.estacion.Deshabilitado = true
	c.tipoDato.Valor = ""
	c.tipoDato.Deshabilitado = true

	n := c.secuencias.Emitir(CategoriaMunicipios)
	c.secuencias.Invalidar(CategoriaEstaciones, CategoriaBusqueda, CategoriaCapas)
	c.mu.Unlock()

	if estado == "" {
		return nil
	}

	estaciones, err := c.fuente.ObtenerEstaciones(ctx, estado)
	if err != nil {
		c.log.WithField("category", "municipios").Errorf("Error al cargar municipios: %v", err)
		if c.secuencias.Vigente(CategoriaMunicipios, n) {
			c.avisos.Alerta("Hubo un error al obtener municipios del estado seleccionado.")
		}
		return errors.Wrapf(err, "municipios de [%s]", estado)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.secuencias.Vigente(CategoriaMunicipios, n) {
		c.log.WithField("category", "municipios").Debugf("Respuesta obsoleta para [%s] descartada", estado)
		return nil
	}

	c.municipio.Opciones = append(c.municipio.Opciones, filtros.OpcionesMunicipios(estaciones)...)
	c.situacion = Selector{Opciones: filtros.OpcionesSituacion(estaciones), Valor: helpers.Todas}

	return nil
}

// CambiarMunicipio reinicia el selector de estación y lo llena con las del municipio
func (c *Controlador) CambiarMunicipio(ctx context.Context, municipio string) error {
	c.mu.Lock()
	if !c.municipio.Contiene(municipio) {
		c.mu.Unlock()
		return errors.Wrapf(ErrOpcionInvalida, "municipio [%s]", municipio)
	}

	c.municipio.Valor = municipio
	c.estacion.reiniciar(marcadorEstacion)
	c.tipoDato.Valor = ""
	c.tipoDato.Deshabilitado = true

	if municipio == "" {
		c.estacion.Deshabilitado = true
		c.secuencias.Invalidar(CategoriaEstaciones)
		c.mu.Unlock()
		return nil
	}

	estado := c.estado.Valor
	n := c.secuencias.Emitir(CategoriaEstaciones)
	c.mu.Unlock()

	estaciones, err := c.fuente.ObtenerEstaciones(ctx, estado)
	if err != nil {
		c.log.WithField("category", "estaciones").Errorf("Error al cargar estaciones: %v", err)
		if c.secuencias.Vigente(CategoriaEstaciones, n) {
			c.avisos.Alerta("Hubo un error al obtener las estaciones del municipio seleccionado.")
		}
		return errors.Wrapf(err, "estaciones de [%s]", municipio)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.secuencias.Vigente(CategoriaEstaciones, n) {
		c.log.WithField("category", "estaciones").Debugf("Respuesta obsoleta para [%s] descartada", municipio)
		return nil
	}

	c.estacion.Opciones = append(c.estacion.Opciones, filtros.OpcionesEstaciones(filtros.DeMunicipio(estaciones, municipio))...)
	c.estacion.Deshabilitado = false

	return nil
}

// CambiarEstacion habilita el tipo de dato solo si hay una estación elegida
func (c *Controlador) CambiarEstacion(estacion string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.estacion.Contiene(estacion) {
		return errors.Wrapf(ErrOpcionInvalida, "estación [%s]", estacion)
	}

	c.estacion.Valor = estacion
	c.tipoDato.Deshabilitado = estacion == ""
	if estacion == "" {
		c.tipoDato.Valor = ""
	}

	return nil
}

func (c *Controlador) CambiarTipoDato(tipo string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tipoDato.Deshabilitado && tipo != "" {
		return errors.Wrap(ErrSelectorDeshabilitado, "tipo de dato")
	}
	if !c.tipoDato.Contiene(tipo) {
		return errors.Wrapf(ErrOpcionInvalida, "tipo de dato [%s]", tipo)
	}

	c.tipoDato.Valor = tipo
	return nil
}

func (c *Controlador) CambiarSituacion(situacion string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.situacion.Contiene(situacion) {
		return errors.Wrapf(ErrOpcionInvalida, "situación [%s]", situacion)
	}

	c.situacion.Valor = situacion
	return nil
}

// MostrarDetalle pone la estación en la ficha de detalle
func (c *Controlador) MostrarDetalle(e modelos.Estacion) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ficha = fichaDe(e)
}
