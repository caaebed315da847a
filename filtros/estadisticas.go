package filtros

import (
	"visor-estaciones/modelos"

	l "github.com/ahmetb/go-linq/v3"
)

type Estadisticas struct {
	Total        int `json:"total"`
	Operativas   int `json:"operativas"`
	Inoperativas int `json:"inoperativas"`
	Municipios   int `json:"municipios"`
}

// Calcular resume la lista filtrada. Toda situación distinta de OPERANDO cuenta como inoperativa.
func Calcular(estaciones []modelos.Estacion) Estadisticas {
	operativas := l.From(estaciones).CountWithT(func(e modelos.Estacion) bool { return e.Operando() })

	municipios := l.From(estaciones).
		SelectT(func(e modelos.Estacion) string { return e.Municipio }).
		Distinct().
		Count()

	return Estadisticas{
		Total:        len(estaciones),
		Operativas:   operativas,
		Inoperativas: len(estaciones) - operativas,
		Municipios:   municipios,
	}
}

func (e Estadisticas) PermiteDescarga() bool {
	return e.Total > 0
}
