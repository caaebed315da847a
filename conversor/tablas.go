package conversor

import (
	"regexp"
	"strings"
	"visor-estaciones/modelos"
)

const tituloNormal = "NORMAL CLIMATOLÓGICA"

var (
	// tabs o dos o más espacios
	separador = regexp.MustCompile(`\t+|\s{2,}`)

	emision     = regexp.MustCompile(`(?i)EMISI[ÓO]N\s*:?\s*(\d{2}/\d{2}/\d{4})`)
	inicioFecha = regexp.MustCompile(`(?i)^\s*FECHA\b`)
	unidad      = regexp.MustCompile(`\(([^)]*)\)`)
)

var encabezadosExtremos = []string{
	"MES", "Año Inicio", "Año Final", "Núm Años",
	"Valor Máx.", "Fecha Máx.", "Se ha Rep.",
	"Valor Mín.", "Fecha Mín.", "Se ha Rep.",
	"Valor Medio", "Desv Estándar",
}

func escribirMetadatos(w *escritor, titulo string, lineas []string) {
	w.fila(titulo, "")
	for _, clave := range clavesMetadatos {
		w.fila(clave, buscarValor(lineas, 60, clave, true))
	}
	w.fila()
}

// Normales convierte una normal climatológica del periodo dado, p.ej. "1961-1990".
// Cada tabla empieza en una línea MESES y sus columnas van separadas por tabs o varios espacios.
func Normales(lineas []string, periodo string) (string, error) {
	w := nuevoEscritor()
	escribirMetadatos(w, tituloNormal+" "+periodo, lineas)

	for i := 0; i < len(lineas); {
		linea := strings.TrimSpace(lineas[i])
		if !strings.HasPrefix(linea, "MESES") {
			i++
			continue
		}

		titulo := anteriorNoVacia(lineas, i)
		if titulo != "" && !strings.Contains(titulo, ":") && !strings.HasPrefix(titulo, tituloNormal) {
			w.fila(titulo, "")
		}

		encabezados := separador.Split(linea, -1)
		w.fila(append([]string{"VARIABLE"}, encabezados[1:]...)...)
		i++

		for i < len(lineas) {
			actual := strings.TrimSpace(lineas[i])
			if actual == "" || strings.HasPrefix(actual, "MESES") {
				break
			}
			w.fila(separador.Split(actual, -1)...)
			i++
		}

		w.fila()
	}

	return w.texto()
}

// Extremos convierte los valores extremos. El encabezado de dos renglones del TXT se reemplaza
// por uno fijo.
func Extremos(lineas []string) (string, error) {
	w := nuevoEscritor()
	escribirMetadatos(w, "VALORES EXTREMOS", lineas)

	esSeccion := func(s string) bool {
		return empiezaConAlguno(strings.ToUpper(s), "TEMPERATURA", "PRECIPITACIÓN", "EVAPORACIÓN")
	}

	for i := 0; i < len(lineas); {
		linea := strings.TrimSpace(lineas[i])

		if empiezaConAlguno(strings.ToUpper(linea), "TEMPERATURA MÁXIMA", "TEMPERATURA MÍNIMA", "PRECIPITACIÓN", "EVAPORACIÓN") {
			w.fila(linea, "")
			i++
			continue
		}

		if !strings.HasPrefix(linea, "MES") {
			i++
			continue
		}

		w.fila(encabezadosExtremos...)
		i += 2

		for i < len(lineas) && strings.TrimSpace(lineas[i]) != "" && !esSeccion(lineas[i]) {
			w.fila(separador.Split(strings.TrimSpace(lineas[i]), -1)...)
			i++
		}

		w.fila()
	}

	return w.texto()
}

// Diarios convierte el registro diario. Los metadatos salen de la estación del catálogo, salvo
// la fecha de emisión, y las unidades del renglón siguiente a FECHA se agregan a cada columna.
func Diarios(lineas []string, e modelos.Estacion) (string, error) {
	fecha := ""
	limite := len(lineas)
	if limite > 60 {
		limite = 60
	}
	for _, ln := range lineas[:limite] {
		if m := emision.FindStringSubmatch(ln); m != nil {
			fecha = m[1]
			break
		}
	}

	w := nuevoEscritor()
	w.fila("REGISTRO DIARIO HISTÓRICO", "")
	w.fila("EMISIÓN", fecha)
	w.fila("ESTACIÓN", e.Clave)
	w.fila("NOMBRE", strings.TrimSpace(e.Nombre))
	w.fila("ESTADO", e.Estado)
	w.fila("MUNICIPIO", e.Municipio)
	w.fila("SITUACIÓN", e.Situacion)
	w.fila("CVE-OMM", "")
	w.fila("LATITUD", strings.TrimSpace(e.Lat.Texto+" °"))
	w.fila("LONGITUD", strings.TrimSpace(e.Lon.Texto+" °"))
	w.fila("ALTITUD", strings.TrimSpace(e.Alt.Texto+" msnm"))
	w.fila()

	conEncabezado := false
	for i := 0; i < len(lineas); {
		linea := strings.TrimSpace(lineas[i])

		if !conEncabezado && inicioFecha.MatchString(linea) {
			columnas := palabra.FindAllString(lineas[i], -1)

			var unidades []string
			if i+1 < len(lineas) {
				for _, m := range unidad.FindAllStringSubmatch(lineas[i+1], -1) {
					unidades = append(unidades, m[1])
				}
			}

			encabezado := make([]string, 0, len(columnas))
			for idx, col := range columnas {
				if idx == 0 && strings.HasPrefix(strings.ToUpper(col), "FECHA") {
					encabezado = append(encabezado, col)
					continue
				}

				u := ""
				if idx-1 >= 0 && idx-1 < len(unidades) {
					u = strings.TrimSpace(unidades[idx-1])
				}
				if u == "" {
					encabezado = append(encabezado, col)
				} else {
					encabezado = append(encabezado, col+" ("+u+")")
				}
			}

			w.fila(encabezado...)
			conEncabezado = true
			if len(unidades) > 0 {
				i += 2
			} else {
				i++
			}
			continue
		}

		if conEncabezado && linea != "" {
			w.fila(palabra.FindAllString(lineas[i], -1)...)
		}
		i++
	}

	return w.texto()
}
