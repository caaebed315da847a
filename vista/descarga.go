package vista

import (
	"context"
	"visor-estaciones/api"
	"visor-estaciones/filtros"

	"github.com/pkg/errors"
)

// Descargar pide el CSV o ZIP con la selección actual y lo entrega al Guardador.
// El botón vuelve a su estado normal al terminar, con éxito o sin él.
func (c *Controlador) Descargar(ctx context.Context) error {
	c.mu.Lock()
	if c.descarga.Deshabilitado {
		c.mu.Unlock()
		return errors.Wrap(ErrSelectorDeshabilitado, "descarga")
	}
	sel := c.seleccion()
	c.descarga = Boton{Etiqueta: etiquetaDescargando, Deshabilitado: true}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.descarga = Boton{Etiqueta: etiquetaDescargar, Deshabilitado: !c.estadisticas.PermiteDescarga()}
		c.mu.Unlock()
	}()

	ruta := filtros.RutaDescarga(sel)
	c.log.WithField("category", "descarga").Debugf("Descargando [%s]", ruta)

	archivo, err := c.fuente.Descargar(ctx, ruta)
	if err != nil {
		var sinDatos *api.ErrorSinDatos
		if errors.As(err, &sinDatos) {
			c.avisos.Alerta(sinDatos.Mensaje)
			return err
		}

		c.log.WithField("category", "descarga").Errorf("Error al descargar: %v", err)
		c.avisos.Aviso(AvisoError)
		return err
	}

	if err := c.archivos.Guardar(archivo.Nombre, archivo.Contenido); err != nil {
		c.log.WithField("category", "descarga").Errorf("Error al guardar [%s]: %v", archivo.Nombre, err)
		c.avisos.Aviso(AvisoError)
		return err
	}

	c.avisos.Aviso(AvisoDescarga)
	return nil
}
