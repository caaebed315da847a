package descarga

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"visor-estaciones/conversor"

	"github.com/MisterKaiou/go-functional/result"
	"github.com/MisterKaiou/go-functional/unit"
	"github.com/pkg/errors"
)

// bom marca los CSV como UTF-8 para las hojas de cálculo
var bom = []byte{0xEF, 0xBB, 0xBF}

var ErrArchivoVacio = errors.New("archivo vacío o incorrecto")

// minimoLineas es el tamaño mínimo de un TXT con datos
const minimoLineas = 5

// procesar baja, valida y convierte una serie
func (d *Descargador) procesar(ctx context.Context, t tarea) result.Of[archivo] {
	texto := result.Bind(d.obtener(ctx, t), func(b []byte) result.Of[string] {
		return result.FromTupleOf(conversor.Decodificar(b))
	})

	lineas := result.Bind(texto, func(s string) result.Of[[]string] {
		lineas := conversor.Lineas(s)
		if strings.TrimSpace(s) == "" || len(lineas) < minimoLineas {
			return result.FromTupleOf[[]string](nil, errors.Wrap(ErrArchivoVacio, t.url))
		}
		return result.FromTupleOf(lineas, nil)
	})

	csv := result.Bind(lineas, func(l []string) result.Of[string] {
		return result.FromTupleOf(conversor.Convertir(t.tipo, l, t.estacion))
	})

	return result.Map(csv, func(c string) archivo {
		return archivo{nombre: nombreArchivo(t.estacion, t.tipo), contenido: c}
	})
}

// obtener devuelve el TXT desde la cache o desde el SMN. Lo bajado se guarda en la cache.
// Los fallos de la cache solo se registran, la serie sigue con lo bajado.
func (d *Descargador) obtener(ctx context.Context, t tarea) result.Of[[]byte] {
	logCache := d.log.WithField("category", "cache")

	if d.cache != "" {
		existe, err := archivoExiste(d.rutaCache(t))
		if err != nil {
			logCache.Warnf("No se pudo revisar la cache de [%s] [%s]: %v", t.estacion.Clave, t.tipo, err)
		}
		if existe {
			logCache.Debugf("El archivo de [%s] [%s] ya fue descargado. Saltando descarga...", t.estacion.Clave, t.tipo)
			return result.FromTupleOf(os.ReadFile(d.rutaCache(t)))
		}
	}

	bytesArq := d.bajarRemoto(ctx, t.url)
	if d.cache == "" || bytesArq.IsError() {
		return bytesArq
	}

	guardado := guardarCache(d.cache, d.rutaCache(t), bytesArq.Unwrap())
	if guardado.IsError() {
		logCache.Warnf("No se pudo guardar [%s] [%s] en la cache: %v", t.estacion.Clave, t.tipo, guardado.UnwrapError())
	}

	return bytesArq
}

func (d *Descargador) bajarRemoto(ctx context.Context, url string) result.Of[[]byte] {
	req := result.FromTupleOf(http.NewRequestWithContext(ctx, http.MethodGet, url, nil))

	res := result.Bind(req, func(r *http.Request) result.Of[*http.Response] {
		return result.FromTupleOf(d.http.Do(r))
	})

	return result.Bind(res, func(r *http.Response) result.Of[[]byte] {
		defer r.Body.Close()

		if r.StatusCode != http.StatusOK {
			_, _ = io.Copy(io.Discard, r.Body)
			return result.FromTupleOf[[]byte](nil, errors.Errorf("archivo no disponible en %s: status %d", url, r.StatusCode))
		}

		b, err := io.ReadAll(r.Body)
		if err == nil {
			d.log.WithField("category", "bajar").Debugf("%s descargado. Tamaño %dKB", url, len(b)/1024)
		}
		return result.FromTupleOf(b, errors.WithStack(err))
	})
}

func (d *Descargador) rutaCache(t tarea) string {
	return filepath.Join(d.cache, t.estacion.Clave+"_"+string(t.tipo)+".txt")
}

func archivoExiste(ruta string) (bool, error) {
	_, err := os.Stat(ruta)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

func guardarCache(carpeta, ruta string, contenido []byte) result.Of[unit.Unit] {
	res := result.FromTupleOf(unit.Unit{}, os.RemoveAll(ruta))

	res = result.Bind(res, func(u unit.Unit) result.Of[unit.Unit] {
		return result.FromTupleOf(u, os.MkdirAll(carpeta, 0750))
	})
	return result.Bind(res, func(u unit.Unit) result.Of[unit.Unit] {
		return result.FromTupleOf(u, os.WriteFile(ruta, contenido, 0666))
	})
}

// empaquetar entrega un CSV si hay un solo archivo y un ZIP si hay varios
func empaquetar(base string, archivos []archivo) (*Resultado, error) {
	if len(archivos) == 1 {
		return &Resultado{
			Nombre:        base + ".csv",
			TipoContenido: TipoCSV,
			Contenido:     append(append([]byte{}, bom...), archivos[0].contenido...),
		}, nil
	}

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	for _, a := range archivos {
		header := &zip.FileHeader{Name: a.nombre, Method: zip.Deflate}

		headerWriter, err := writer.CreateHeader(header)
		if err != nil {
			return nil, errors.Wrapf(err, "no se pudo agregar %s", a.nombre)
		}

		if _, err := headerWriter.Write(append(append([]byte{}, bom...), a.contenido...)); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, errors.WithStack(err)
	}

	return &Resultado{Nombre: base + ".zip", TipoContenido: TipoZIP, Contenido: buf.Bytes()}, nil
}
