package vista

import (
	"context"
	"fmt"
	"html"
	"strings"
	"visor-estaciones/filtros"
	"visor-estaciones/helpers"
	"visor-estaciones/mapa"
	"visor-estaciones/modelos"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// validar devuelve el mensaje para el primer selector obligatorio que falta, o vacío
func validar(s filtros.Seleccion) string {
	switch {
	case s.Estado == "":
		return "Por favor selecciona un estado."
	case s.Municipio == "":
		return "Selecciona un municipio o 'TODOS' antes de continuar."
	case s.Estacion == "":
		return "Selecciona una estación o la opción 'TODAS' antes de continuar."
	case s.TipoDato == "":
		return "Selecciona un tipo de dato antes de continuar."
	default:
		return ""
	}
}

// Buscar consulta las estaciones del estado, aplica los filtros y actualiza mapa, estadísticas
// y ficha. Sin los cuatro selectores obligatorios no se hace ninguna petición.
func (c *Controlador) Buscar(ctx context.Context) error {
	c.mu.Lock()
	sel := c.seleccion()
	c.mu.Unlock()

	if mensaje := validar(sel); mensaje != "" {
		c.avisos.Alerta(mensaje)
		return errors.Wrap(ErrFiltrosIncompletos, mensaje)
	}

	n := c.secuencias.Emitir(CategoriaBusqueda)

	estaciones, err := c.fuente.ObtenerEstaciones(ctx, sel.Estado)
	if err != nil {
		c.log.WithField("category", "busqueda").Error(err)
		if c.secuencias.Vigente(CategoriaBusqueda, n) {
			c.avisos.Alerta("Hubo un error al obtener estaciones.")
		}
		return err
	}

	filtradas := filtros.Filtrar(estaciones, filtros.Filtro{
		Municipio: sel.Municipio,
		Clave:     sel.Estacion,
		Situacion: sel.Situacion,
	})

	c.mu.Lock()
	if !c.secuencias.Vigente(CategoriaBusqueda, n) {
		c.mu.Unlock()
		c.log.WithField("category", "busqueda").Debug("Resultado de búsqueda obsoleto descartado")
		return nil
	}

	c.filtradas = filtradas
	c.estadisticas = filtros.Calcular(filtradas)
	c.descarga.Deshabilitado = !c.estadisticas.PermiteDescarga()

	if len(filtradas) == 0 {
		c.quitarMarcadores()
		c.ficha = Ficha{Mensaje: "No se encontraron estaciones"}
		c.mu.Unlock()

		c.avisos.Alerta(MensajeSinResultados)
		return ErrSinResultados
	}

	c.mostrarEnMapa(filtradas)
	c.ficha = fichaDe(filtradas[0])
	capas := c.liberarCapas()
	c.mu.Unlock()

	c.log.WithField("category", "busqueda").Infof("Pintando polígonos de [%s] [%s]", sel.Estado, sel.Municipio)
	if err := c.pintarCapas(ctx, sel.Estado, sel.Municipio, capas); err != nil {
		c.log.WithField("category", "capas").Warnf("Error al cargar capas: %v", err)
	}

	return nil
}

// quitarMarcadores retira todos los marcadores del mapa. Requiere el candado.
func (c *Controlador) quitarMarcadores() {
	for _, m := range c.marcadores {
		c.mapa.Quitar(m)
	}
	c.marcadores = nil
}

// mostrarEnMapa reemplaza los marcadores y encuadra la vista en ellos. Requiere el candado.
func (c *Controlador) mostrarEnMapa(estaciones []modelos.Estacion) {
	c.quitarMarcadores()

	posiciones := make([]s2.LatLng, 0, len(estaciones))

	for _, e := range estaciones {
		if !e.Lat.Definida || !e.Lon.Definida {
			c.log.WithField("category", "mapa").Debugf("La estación [%s] no tiene coordenadas", e.Clave)
			continue
		}

		icono := mapa.IconoInoperante
		if e.Operando() {
			icono = mapa.IconoOperando
		}

		estacion := e
		posicion := s2.LatLngFromDegrees(e.Lat.Valor, e.Lon.Valor)
		m := c.mapa.AgregarMarcador(posicion, icono, popup(e), func() { c.MostrarDetalle(estacion) })

		c.marcadores = append(c.marcadores, m)
		posiciones = append(posiciones, posicion)
	}

	if len(posiciones) > 0 {
		c.mapa.AjustarVista(mapa.LimitesDePuntos(posiciones))
	}
}

func popup(e modelos.Estacion) string {
	return fmt.Sprintf("<b>%s</b><br>Clave: %s<br>Municipio: %s<br>Situación: %s<br>",
		html.EscapeString(e.Nombre),
		html.EscapeString(e.Clave),
		html.EscapeString(e.Municipio),
		html.EscapeString(e.Situacion))
}

// CargarCapas dibuja el polígono del estado y, según municipio, el de todos sus municipios
// (TODOS) o el de uno solo. Las capas anteriores se retiran antes de pedir las nuevas.
func (c *Controlador) CargarCapas(ctx context.Context, estado, municipio string) error {
	c.mu.Lock()
	n := c.liberarCapas()
	c.mu.Unlock()

	return c.pintarCapas(ctx, estado, municipio, n)
}

// liberarCapas retira las capas y emite el turno de las siguientes. Requiere el candado.
func (c *Controlador) liberarCapas() uint64 {
	c.reemplazarCapa(&c.capaEstados, nil)
	c.reemplazarCapa(&c.capaMunicipios, nil)
	return c.secuencias.Emitir(CategoriaCapas)
}

// pintarCapas pide los polígonos y los dibuja solo si el turno n sigue vigente
func (c *Controlador) pintarCapas(ctx context.Context, estado, municipio string, n uint64) error {
	estado = helpers.ValorORespaldo(estado, helpers.Todos)

	estados, err := c.fuente.ObtenerGeoJSONEstados(ctx, estado)
	if err != nil {
		return err
	}

	var municipios *geojson.FeatureCollection
	estilo := mapa.EstiloMunicipio
	var errMunicipios error

	switch m := strings.TrimSpace(municipio); {
	case m == "" || strings.EqualFold(m, "NINGUNO"):
		c.log.WithField("category", "capas").Debug("Municipio vacío, no se pintan municipios")
	case strings.EqualFold(m, helpers.Todos):
		estilo = mapa.EstiloMunicipios
		municipios, errMunicipios = c.fuente.ObtenerGeoJSONMunicipios(ctx, estado, "")
	default:
		municipios, errMunicipios = c.fuente.ObtenerGeoJSONMunicipios(ctx, estado, municipio)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.secuencias.Vigente(CategoriaCapas, n) {
		c.log.WithField("category", "capas").Debug("Capas obsoletas descartadas")
		return nil
	}

	if estados != nil && len(estados.Features) > 0 {
		c.reemplazarCapa(&c.capaEstados, c.mapa.AgregarPoligonos(estados, mapa.EstiloEstado))
	}
	if errMunicipios == nil && municipios != nil && len(municipios.Features) > 0 {
		c.reemplazarCapa(&c.capaMunicipios, c.mapa.AgregarPoligonos(municipios, estilo))
	}

	switch {
	case c.capaMunicipios != nil:
		c.mapa.AjustarVista(c.capaMunicipios.Limites())
	case c.capaEstados != nil:
		c.mapa.AjustarVista(c.capaEstados.Limites())
	}

	return errMunicipios
}

// reemplazarCapa libera la capa actual antes de asignar la nueva. Requiere el candado.
func (c *Controlador) reemplazarCapa(actual **mapa.Poligonos, nueva *mapa.Poligonos) {
	if *actual != nil {
		c.mapa.Quitar(*actual)
	}
	*actual = nueva
}
