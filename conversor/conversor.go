// Package conversor transforma los TXT climatológicos del SMN en CSV con un bloque de metadatos
// seguido de las tablas de datos.
package conversor

import (
	"bytes"
	"encoding/csv"
	"strings"
	"unicode/utf8"
	"visor-estaciones/modelos"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

// Claves de metadatos que se buscan en el encabezado de normales y extremos, en orden de salida
var clavesMetadatos = []string{
	"EMISIÓN", "ESTACIÓN", "NOMBRE", "ESTADO", "MUNICIPIO",
	"SITUACIÓN", "CVE-OMM", "LATITUD", "LONGITUD", "ALTITUD",
}

var ErrTipoDesconocido = errors.New("tipo de dato sin conversor")

// Decodificar devuelve el texto del archivo. Lo que no es UTF-8 válido se lee como ISO-8859-1.
func Decodificar(contenido []byte) (string, error) {
	if utf8.Valid(contenido) {
		return string(contenido), nil
	}

	decodificado, err := charmap.ISO8859_1.NewDecoder().Bytes(contenido)
	if err != nil {
		return "", errors.Wrap(err, "no se pudo decodificar el archivo")
	}
	return string(decodificado), nil
}

// Lineas separa el texto en líneas sin sus terminadores. Acepta \n, \r\n y \r.
func Lineas(texto string) []string {
	if texto == "" {
		return nil
	}

	texto = strings.ReplaceAll(texto, "\r\n", "\n")
	texto = strings.ReplaceAll(texto, "\r", "\n")
	texto = strings.TrimSuffix(texto, "\n")

	return strings.Split(texto, "\n")
}

// Convertir elige el conversor del tipo de dato
func Convertir(tipo modelos.TipoDato, lineas []string, e modelos.Estacion) (string, error) {
	switch {
	case tipo == modelos.Mensuales:
		return Mensual(lineas)
	case tipo.EsNormal():
		return Normales(lineas, tipo.Periodo())
	case tipo == modelos.Extremos:
		return Extremos(lineas)
	case tipo == modelos.Diarios:
		return Diarios(lineas, e)
	default:
		return "", errors.Wrapf(ErrTipoDesconocido, "[%s]", tipo)
	}
}

// escritor acumula filas CSV con fin de línea CRLF
type escritor struct {
	buf bytes.Buffer
	csv *csv.Writer
}

func nuevoEscritor() *escritor {
	e := &escritor{}
	e.csv = csv.NewWriter(&e.buf)
	e.csv.UseCRLF = true
	return e
}

func (e *escritor) fila(campos ...string) {
	// csv.Writer solo falla si falla el buffer, que no falla
	_ = e.csv.Write(campos)
}

func (e *escritor) texto() (string, error) {
	e.csv.Flush()
	if err := e.csv.Error(); err != nil {
		return "", errors.WithStack(err)
	}
	return e.buf.String(), nil
}

// buscarValor busca en las primeras limite líneas la que empieza con clave y devuelve lo que sigue
// al primer ':'. Con mayusculas la comparación se hace sobre la línea en mayúsculas.
func buscarValor(lineas []string, limite int, clave string, mayusculas bool) string {
	if len(lineas) < limite {
		limite = len(lineas)
	}

	for _, ln := range lineas[:limite] {
		s := strings.TrimSpace(ln)
		comparada := s
		if mayusculas {
			comparada = strings.ToUpper(s)
		}

		if strings.HasPrefix(comparada, clave) {
			partes := strings.SplitN(s, ":", 2)
			return strings.TrimSpace(partes[len(partes)-1])
		}
	}

	return ""
}

// anteriorNoVacia devuelve la línea no vacía que precede a idx, ya recortada
func anteriorNoVacia(lineas []string, idx int) string {
	for j := idx - 1; j >= 0; j-- {
		if s := strings.TrimSpace(lineas[j]); s != "" {
			return s
		}
	}
	return ""
}

func empiezaConAlguno(s string, prefijos ...string) bool {
	for _, p := range prefijos {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
