// Package catalogo carga el catálogo de estaciones climatológicas desde el KML del SMN.
package catalogo

import (
	"encoding/xml"
	"io"
	"os"
	"strings"
	"visor-estaciones/modelos"

	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

type simpleData struct {
	Nombre string `xml:"name,attr"`
	Valor  string `xml:",chardata"`
}

type placemark struct {
	Datos []simpleData `xml:"ExtendedData>SchemaData>SimpleData"`
}

// Cargar lee el KML de ruta
func Cargar(ruta string) (*Catalogo, error) {
	f, err := os.Open(ruta)
	if err != nil {
		return nil, errors.Wrapf(err, "no se pudo abrir el catálogo %s", ruta)
	}
	defer f.Close()

	c, err := Leer(f)
	if err != nil {
		return nil, errors.Wrapf(err, "catálogo %s", ruta)
	}

	logger.WithField("component", "catalogo").Infof("[%d] estaciones cargadas de %s", len(c.estaciones), ruta)
	return c, nil
}

// Leer recorre todos los Placemark del documento, sin importar en qué carpeta estén.
// Los que no traen ESTADO se descartan.
func Leer(r io.Reader) (*Catalogo, error) {
	decoder := xml.NewDecoder(r)
	estaciones := make([]modelos.Estacion, 0)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "KML inválido")
		}

		inicio, ok := token.(xml.StartElement)
		if !ok || inicio.Name.Local != "Placemark" {
			continue
		}

		var p placemark
		if err := decoder.DecodeElement(&p, &inicio); err != nil {
			return nil, errors.Wrap(err, "Placemark inválido")
		}

		if e, ok := aEstacion(p); ok {
			estaciones = append(estaciones, e)
		}
	}

	return Nuevo(estaciones), nil
}

func aEstacion(p placemark) (modelos.Estacion, bool) {
	datos := make(map[string]string, len(p.Datos))
	for _, d := range p.Datos {
		datos[d.Nombre] = strings.TrimSpace(d.Valor)
	}

	if datos["ESTADO"] == "" {
		return modelos.Estacion{}, false
	}

	medida := func(campo string) modelos.Medida {
		m, err := modelos.NuevaMedida(datos[campo])
		if err != nil {
			logger.WithField("component", "catalogo").Debugf("Estación [%s]: %v", datos["CLAVE"], err)
		}
		return m
	}

	return modelos.Estacion{
		Clave:            datos["CLAVE"],
		Nombre:           datos["NOMBRE"],
		Estado:           datos["ESTADO"],
		Municipio:        datos["MUNICIPIO"],
		Organismo:        datos["ORG_CUENCA"],
		Cuenca:           datos["CUENCA"],
		TipoEst:          datos["TIPO_EST"],
		Inicio:           datos["INICIO"],
		MasReciente:      datos["MAS_RECIENTE"],
		Lat:              medida("LATITUD"),
		Lon:              medida("LONGITUD"),
		Alt:              medida("ALTITUD"),
		Diarios:          datos["DIARIOS"],
		Mensuales:        datos["MENSUALES"],
		Normales19611990: datos["NORMALES_1961_1990"],
		Normales19712000: datos["NORMALES_1971_2000"],
		Normales19812010: datos["NORMALES_1981_2010"],
		Normales19912020: datos["NORMALES_1991_2020"],
		Extremos:         datos["EXTREMOS"],
		Situacion:        datos["SITUACION"],
	}, true
}
