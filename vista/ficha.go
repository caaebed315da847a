package vista

import (
	"fmt"
	"strings"
	"visor-estaciones/mapa"
	"visor-estaciones/modelos"
)

// Ficha es el panel de detalle. Sin estación muestra solo el mensaje.
type Ficha struct {
	Estacion *modelos.Estacion
	Mensaje  string
}

func fichaDe(e modelos.Estacion) Ficha {
	return Ficha{Estacion: &e}
}

func guion(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func (f Ficha) Panel() mapa.Panel {
	if f.Estacion == nil {
		return mapa.Panel{Titulo: "Estación", Nota: f.Mensaje}
	}

	e := f.Estacion

	clase := "bg-danger"
	if e.Operando() {
		clase = "bg-success"
	}

	panel := mapa.Panel{
		Titulo: e.Nombre,
		Campos: []mapa.Campo{
			{Nombre: "Clave", Valor: e.Clave},
			{Nombre: "Estado", Valor: e.Estado},
			{Nombre: "Municipio", Valor: e.Municipio},
			{Nombre: "Situación", Valor: e.Situacion, Clase: clase},
			{Nombre: "Organismo de cuenca", Valor: guion(e.Organismo)},
			{Nombre: "Cuenca", Valor: guion(e.Cuenca)},
			{Nombre: "Latitud", Valor: fmt.Sprintf("%s°", e.Lat)},
			{Nombre: "Longitud", Valor: fmt.Sprintf("%s°", e.Lon)},
			{Nombre: "Altitud", Valor: fmt.Sprintf("%s msnm", e.Alt)},
			{Nombre: "Fecha histórica", Valor: guion(e.Inicio)},
			{Nombre: "Fecha más reciente", Valor: guion(e.MasReciente)},
		},
	}

	for _, t := range e.TiposDisponibles() {
		panel.Lista = append(panel.Lista, t.Etiqueta())
	}
	if len(panel.Lista) == 0 {
		panel.Nota = "No tiene datos disponibles."
	}

	return panel
}

func (e Instantanea) panelEstadisticas() mapa.Panel {
	return mapa.Panel{
		Titulo: "Estadísticas",
		Campos: []mapa.Campo{
			{Nombre: "Total de estaciones", Valor: fmt.Sprint(e.Estadisticas.Total)},
			{Nombre: "Operativas", Valor: fmt.Sprint(e.Estadisticas.Operativas), Clase: "bg-success"},
			{Nombre: "Inoperativas", Valor: fmt.Sprint(e.Estadisticas.Inoperativas), Clase: "bg-danger"},
			{Nombre: "Municipios", Valor: fmt.Sprint(e.Estadisticas.Municipios)},
		},
	}
}

// Pagina arma los paneles laterales de la página del mapa
func (e Instantanea) Pagina(titulo string) mapa.Pagina {
	return mapa.Pagina{
		Titulo:  titulo,
		Paneles: []mapa.Panel{e.panelEstadisticas(), e.Ficha.Panel()},
	}
}
