// Package api es el cliente HTTP de la API de estaciones climatológicas.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
	"visor-estaciones/helpers"
	"visor-estaciones/jsonHelpers"
	"visor-estaciones/modelos"

	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

const (
	rutaEstados           = "/api/estados"
	rutaEstaciones        = "/api/estaciones"
	rutaEstadosGeoJSON    = "/api/estados_geojson"
	rutaMunicipiosGeoJSON = "/api/municipios_geojson"
	rutaSugerencia        = "/api/enviar_sugerencia"
)

type Cliente struct {
	base string
	http *http.Client
	log  *logger.Entry
}

// NuevoCliente crea un cliente contra base. Un tiempo cero deja las peticiones sin límite.
func NuevoCliente(base string, tiempo time.Duration) *Cliente {
	return NuevoClienteHTTP(base, &http.Client{Timeout: tiempo})
}

func NuevoClienteHTTP(base string, c *http.Client) *Cliente {
	return &Cliente{
		base: strings.TrimRight(base, "/"),
		http: c,
		log:  logger.WithField("component", "api"),
	}
}

type respuestaEstados struct {
	Estados []string `json:"estados"`
}

type respuestaEstaciones struct {
	Total      int                `json:"total"`
	Estaciones []modelos.Estacion `json:"estaciones"`
}

func (c *Cliente) ObtenerEstados(ctx context.Context) ([]string, error) {
	r, err := obtenerJson[respuestaEstados](ctx, c, rutaEstados)
	if err != nil {
		return nil, errors.Wrap(err, "Error al obtener estados")
	}
	return r.Estados, nil
}

// ObtenerEstaciones trae las estaciones del estado. Vacío o TODOS piden el catálogo completo.
func (c *Cliente) ObtenerEstaciones(ctx context.Context, estado string) ([]modelos.Estacion, error) {
	ruta := rutaEstaciones
	if estado != "" && estado != helpers.Todos {
		ruta += "?estado=" + helpers.EscaparComponente(estado)
	}

	r, err := obtenerJson[respuestaEstaciones](ctx, c, ruta)
	if err != nil {
		return nil, errors.Wrap(err, "Error al obtener estaciones")
	}

	c.log.WithField("category", "estaciones").Debugf("[%d] estaciones recibidas para [%s]", len(r.Estaciones), estado)
	return r.Estaciones, nil
}

func (c *Cliente) ObtenerGeoJSONEstados(ctx context.Context, estado string) (*geojson.FeatureCollection, error) {
	ruta := rutaEstadosGeoJSON
	if estado != "" && estado != helpers.Todos {
		ruta += "?estado=" + helpers.EscaparComponente(estado)
	}

	fc, err := obtenerJson[geojson.FeatureCollection](ctx, c, ruta)
	if err != nil {
		return nil, errors.Wrap(err, "Error al obtener el polígono del estado")
	}
	return &fc, nil
}

// ObtenerGeoJSONMunicipios trae los municipios del estado; con municipio vacío, todos ellos
func (c *Cliente) ObtenerGeoJSONMunicipios(ctx context.Context, estado, municipio string) (*geojson.FeatureCollection, error) {
	ruta := rutaMunicipiosGeoJSON + "?estado=" + helpers.EscaparComponente(estado)
	if municipio != "" {
		ruta += "&municipio=" + helpers.EscaparComponente(municipio)
	}

	fc, err := obtenerJson[geojson.FeatureCollection](ctx, c, ruta)
	if err != nil {
		return nil, errors.Wrap(err, "Error al obtener los polígonos de municipios")
	}
	return &fc, nil
}

// ErrorRespuesta es una respuesta no exitosa de la API junto con su detalle, si vino alguno
type ErrorRespuesta struct {
	Estado  int
	Detalle string
}

func (e *ErrorRespuesta) Error() string {
	if e.Detalle == "" {
		return http.StatusText(e.Estado)
	}
	return e.Detalle
}

type respuestaSugerencia struct {
	Detail json.RawMessage `json:"detail"`
}

func (c *Cliente) EnviarSugerencia(ctx context.Context, s modelos.Sugerencia) error {
	cuerpo, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "no se pudo serializar la sugerencia")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+rutaSugerencia, bytes.NewReader(cuerpo))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer res.Body.Close()

	c.log.WithField("category", "sugerencia").Debugf("Respuesta recibida - Status: %d", res.StatusCode)

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}

	r, err := jsonHelpers.DeserializarCuerpo[respuestaSugerencia](res.Body)
	if err != nil {
		return &ErrorRespuesta{Estado: res.StatusCode}
	}

	return &ErrorRespuesta{Estado: res.StatusCode, Detalle: textoDetalle(r.Detail)}
}

// textoDetalle acepta el detalle como cadena o, en las validaciones, como lista de objetos
func textoDetalle(crudo json.RawMessage) string {
	if len(crudo) == 0 || string(crudo) == "null" {
		return ""
	}

	if texto, err := jsonHelpers.DeserializarJson[string](crudo); err == nil {
		return texto
	}
	return string(crudo)
}

func (c *Cliente) obtener(ctx context.Context, ruta string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+ruta, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	c.log.WithField("category", "http").Tracef("GET %s", ruta)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return res, nil
}

func obtenerJson[Destino any](ctx context.Context, c *Cliente, ruta string) (Destino, error) {
	var vacio Destino

	res, err := c.obtener(ctx, ruta)
	if err != nil {
		return vacio, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, res.Body)
		return vacio, &ErrorRespuesta{Estado: res.StatusCode}
	}

	destino, err := jsonHelpers.DeserializarCuerpo[Destino](res.Body)
	if err != nil {
		return vacio, errors.Wrapf(err, "respuesta inválida de %s", ruta)
	}
	return destino, nil
}
