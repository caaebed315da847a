package modelos

import "strings"

type TipoDato string

const (
	Diarios          TipoDato = "diarios"
	Mensuales        TipoDato = "mensuales"
	Normales19611990 TipoDato = "normales_1961_1990"
	Normales19712000 TipoDato = "normales_1971_2000"
	Normales19812010 TipoDato = "normales_1981_2010"
	Normales19912020 TipoDato = "normales_1991_2020"
	Extremos         TipoDato = "extremos"

	// TodosLosTipos pide todas las series disponibles
	TodosLosTipos TipoDato = "TODOS"
)

var TiposDato = []TipoDato{
	Diarios,
	Mensuales,
	Normales19611990,
	Normales19712000,
	Normales19812010,
	Normales19912020,
	Extremos,
}

func (t TipoDato) EsNormal() bool {
	return strings.HasPrefix(string(t), "normales_")
}

// Periodo devuelve el periodo de una normal climatológica, p.ej. "1961-1990"
func (t TipoDato) Periodo() string {
	if !t.EsNormal() {
		return ""
	}
	return strings.ReplaceAll(strings.TrimPrefix(string(t), "normales_"), "_", "-")
}

func (t TipoDato) Etiqueta() string {
	switch {
	case t == TodosLosTipos:
		return "Todos"
	case t.EsNormal():
		return "Normales " + t.Periodo()
	case t == "":
		return ""
	default:
		s := string(t)
		return strings.ToUpper(s[:1]) + s[1:]
	}
}

// Opcion es una entrada de un selector: el valor enviado y el texto mostrado
type Opcion struct {
	Valor    string `json:"valor"`
	Etiqueta string `json:"etiqueta"`
}

type Sugerencia struct {
	Nombre  string `json:"nombre"`
	Mensaje string `json:"mensaje"`
}
