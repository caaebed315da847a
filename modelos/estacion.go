package modelos

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"visor-estaciones/jsonHelpers"

	"github.com/pkg/errors"
)

const SituacionOperando = "OPERANDO"

type Estacion struct {
	Clave       string `json:"clave"`
	Nombre      string `json:"nombre"`
	Estado      string `json:"estado"`
	Municipio   string `json:"municipio"`
	Organismo   string `json:"organismo"`
	Cuenca      string `json:"cuenca"`
	TipoEst     string `json:"tipo_est"`
	Inicio      string `json:"inicio"`
	MasReciente string `json:"mas_reciente"`
	Lat         Medida `json:"lat"`
	Lon         Medida `json:"lon"`
	Alt         Medida `json:"alt"`

	// URLs de las series publicadas por el SMN; vacía cuando la estación no tiene ese tipo
	Diarios          string `json:"diarios"`
	Mensuales        string `json:"mensuales"`
	Normales19611990 string `json:"normales_1961_1990"`
	Normales19712000 string `json:"normales_1971_2000"`
	Normales19812010 string `json:"normales_1981_2010"`
	Normales19912020 string `json:"normales_1991_2020"`
	Extremos         string `json:"extremos"`

	Situacion string `json:"situacion"`
}

func (e Estacion) Operando() bool {
	return e.Situacion == SituacionOperando
}

// URL devuelve la dirección de la serie del tipo pedido, o vacío si no existe
func (e Estacion) URL(tipo TipoDato) string {
	switch tipo {
	case Diarios:
		return e.Diarios
	case Mensuales:
		return e.Mensuales
	case Normales19611990:
		return e.Normales19611990
	case Normales19712000:
		return e.Normales19712000
	case Normales19812010:
		return e.Normales19812010
	case Normales19912020:
		return e.Normales19912020
	case Extremos:
		return e.Extremos
	default:
		return ""
	}
}

func (e Estacion) Tiene(tipo TipoDato) bool {
	return strings.TrimSpace(e.URL(tipo)) != ""
}

// TiposDisponibles lista, en orden fijo, los tipos de dato que publica la estación
func (e Estacion) TiposDisponibles() []TipoDato {
	tipos := make([]TipoDato, 0, len(TiposDato))
	for _, t := range TiposDato {
		if e.Tiene(t) {
			tipos = append(tipos, t)
		}
	}
	return tipos
}

// Medida conserva el texto original de una coordenada o altitud del catálogo.
// En JSON se acepta tanto cadena como número.
type Medida struct {
	Texto    string
	Valor    float64
	Definida bool
}

func NuevaMedida(texto string) (Medida, error) {
	texto = strings.TrimSpace(texto)
	if texto == "" {
		return Medida{}, nil
	}

	valor, err := strconv.ParseFloat(texto, 64)
	if err != nil {
		return Medida{Texto: texto}, errors.Wrapf(err, "medida inválida %q", texto)
	}

	return Medida{Texto: texto, Valor: valor, Definida: true}, nil
}

func (m Medida) String() string {
	return m.Texto
}

func (m Medida) MarshalJSON() ([]byte, error) {
	if m.Texto == "" {
		return []byte("null"), nil
	}
	return json.Marshal(m.Texto)
}

func (m *Medida) UnmarshalJSON(datos []byte) error {
	datos = bytes.TrimSpace(datos)
	if bytes.Equal(datos, []byte("null")) {
		*m = Medida{}
		return nil
	}

	texto := string(datos)
	if len(datos) > 0 && datos[0] == '"' {
		var err error
		if texto, err = jsonHelpers.DeserializarJson[string](datos); err != nil {
			return err
		}
	}

	// Un texto no numérico se conserva para mostrarlo pero no se ubica en el mapa
	*m, _ = NuevaMedida(texto)
	return nil
}
