package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"visor-estaciones/jsonHelpers"

	"github.com/pkg/errors"
)

const (
	mensajeSinDatos  = "No se encontraron estaciones con datos del tipo seleccionado."
	nombreCSV        = "estaciones.csv"
	nombreZIP        = "estaciones.zip"
	tipoContenidoZIP = "application/zip"
)

var ErrDescarga = errors.New("error al descargar archivo")

// ErrorDescarga conserva el fallo de red o lectura detrás de ErrDescarga
type ErrorDescarga struct {
	Causa error
}

func (e *ErrorDescarga) Error() string {
	return ErrDescarga.Error() + ": " + e.Causa.Error()
}

func (e *ErrorDescarga) Unwrap() []error {
	return []error{ErrDescarga, e.Causa}
}

// ErrorSinDatos es la respuesta 404 de la descarga. Mensaje viene del campo error del cuerpo.
type ErrorSinDatos struct {
	Mensaje string
}

func (e *ErrorSinDatos) Error() string {
	return e.Mensaje
}

type Archivo struct {
	Nombre        string
	TipoContenido string
	Contenido     []byte
}

type respuestaError struct {
	Error string `json:"error"`
}

// Descargar pide el archivo de ruta, que ya incluye la cadena de consulta
func (c *Cliente) Descargar(ctx context.Context, ruta string) (*Archivo, error) {
	c.log.WithField("category", "descarga").Infof("URL generada: %s", ruta)

	res, err := c.obtener(ctx, ruta)
	if err != nil {
		return nil, &ErrorDescarga{Causa: err}
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		r, err := jsonHelpers.DeserializarCuerpo[respuestaError](res.Body)
		if err != nil {
			return nil, errors.Wrap(ErrDescarga, "respuesta 404 ilegible")
		}
		if r.Error == "" {
			r.Error = mensajeSinDatos
		}
		return nil, &ErrorSinDatos{Mensaje: r.Error}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, errors.Wrapf(ErrDescarga, "status %d", res.StatusCode)
	}

	contenido, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &ErrorDescarga{Causa: errors.WithStack(err)}
	}

	tipo := res.Header.Get("Content-Type")
	archivo := &Archivo{
		Nombre:        NombreArchivo(res.Header.Get("Content-Disposition"), tipo),
		TipoContenido: tipo,
		Contenido:     contenido,
	}

	tamanoKB := 1024
	c.log.WithField("category", "descarga").Infof("El archivo %s fue descargado. Tamaño %dKB", archivo.Nombre, len(contenido)/tamanoKB)

	return archivo, nil
}

// NombreArchivo toma el nombre de Content-Disposition o, sin él, uno por defecto según el tipo
func NombreArchivo(disposicion, tipoContenido string) string {
	if strings.Contains(disposicion, "filename=") {
		return strings.ReplaceAll(strings.Split(disposicion, "filename=")[1], `"`, "")
	}
	if strings.Contains(tipoContenido, tipoContenidoZIP) {
		return nombreZIP
	}
	return nombreCSV
}
