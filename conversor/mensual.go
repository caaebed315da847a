package conversor

import (
	"regexp"
	"strings"
)

const tituloMensual = "ESTADÍSTICA MENSUAL"

var palabra = regexp.MustCompile(`\S+`)

// tituloIgnorado indica los títulos institucionales que preceden a las tablas y no las nombran
func tituloIgnorado(titulo string) bool {
	switch titulo {
	case "COMISIÓN NACIONAL DEL AGUA",
		"COORDINACIÓN GENERAL DEL SERVICIO METEOROLÓGICO NACIONAL",
		"BASE DE DATOS CLIMATOLÓGICA NACIONAL",
		tituloMensual:
		return true
	default:
		return false
	}
}

// expandirTabs reemplaza cada tabulador por espacios hasta la siguiente columna múltiplo de ancho
func expandirTabs(s string, ancho int) []rune {
	salida := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\t' {
			espacios := ancho - len(salida)%ancho
			for i := 0; i < espacios; i++ {
				salida = append(salida, ' ')
			}
			continue
		}
		salida = append(salida, r)
	}
	return salida
}

// columnas devuelve las etiquetas del encabezado y la columna donde empieza cada una
func columnas(encabezado string) ([]string, []int) {
	h := string(expandirTabs(strings.TrimRight(encabezado, "\n"), 8))

	etiquetas := make([]string, 0)
	inicios := make([]int, 0)
	for _, m := range palabra.FindAllStringIndex(h, -1) {
		etiquetas = append(etiquetas, h[m[0]:m[1]])
		inicios = append(inicios, utf8Inicio(h, m[0]))
	}

	return etiquetas, inicios
}

// utf8Inicio convierte un índice de byte en índice de rune
func utf8Inicio(s string, byteIdx int) int {
	return len([]rune(s[:byteIdx]))
}

// cortar parte la fila por las columnas del encabezado
func cortar(linea string, inicios []int) []string {
	s := expandirTabs(strings.TrimRight(linea, "\n"), 8)

	ultimo := inicios[len(inicios)-1] + 1
	for len(s) < ultimo {
		s = append(s, ' ')
	}

	campos := make([]string, len(inicios))
	for i, inicio := range inicios {
		fin := len(s)
		if i+1 < len(inicios) {
			fin = inicios[i+1]
		}
		campos[i] = strings.TrimSpace(string(s[inicio:fin]))
	}

	return campos
}

// Mensual convierte la estadística mensual. Cada tabla empieza en una línea AÑO y sus columnas
// se cortan por la posición de las etiquetas del encabezado.
func Mensual(lineas []string) (string, error) {
	w := nuevoEscritor()

	w.fila(tituloMensual, "")
	for _, clave := range clavesMetadatos {
		w.fila(clave, buscarValor(lineas, 120, clave, false))
	}
	w.fila()

	for i := 0; i < len(lineas); {
		if !strings.HasPrefix(strings.TrimSpace(lineas[i]), "AÑO") {
			i++
			continue
		}

		if titulo := anteriorNoVacia(lineas, i); !tituloIgnorado(titulo) && !strings.Contains(titulo, ":") {
			w.fila(titulo, "")
		}

		etiquetas, inicios := columnas(lineas[i])
		w.fila(etiquetas...)
		i++

		for i < len(lineas) {
			actual := strings.TrimSpace(lineas[i])
			if actual == "" || strings.HasPrefix(actual, "AÑO") {
				break
			}
			w.fila(cortar(lineas[i], inicios)...)
			i++
		}

		w.fila()
	}

	return w.texto()
}
