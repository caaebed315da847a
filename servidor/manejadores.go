package servidor

import (
	"context"
	"net/http"
	"strings"
	"time"
	"visor-estaciones/catalogo"
	"visor-estaciones/descarga"
	"visor-estaciones/modelos"
	"visor-estaciones/sugerencias"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

func (s *Servidor) manejarEstados(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"estados": s.catalogo.Estados()})
}

func (s *Servidor) manejarEstaciones(c *gin.Context) {
	estaciones := s.catalogo.Filtrar(catalogo.Filtro{
		Estado:    c.Query("estado"),
		Municipio: c.Query("municipio"),
		Clave:     c.Query("clave"),
	})

	c.JSON(http.StatusOK, gin.H{"total": len(estaciones), "estaciones": estaciones})
}

func (s *Servidor) manejarEstadosGeoJSON(c *gin.Context) {
	estado := c.DefaultQuery("estado", "TODOS")
	s.log.WithField("category", "geojson").Debugf("/api/estados_geojson estado recibido: %s", estado)

	c.JSON(http.StatusOK, s.limites.Estados(estado))
}

func (s *Servidor) manejarMunicipiosGeoJSON(c *gin.Context) {
	estado := c.DefaultQuery("estado", "TODOS")
	municipio := c.DefaultQuery("municipio", "TODOS")
	s.log.WithField("category", "geojson").Debugf("/api/municipios_geojson estado: %s, municipio: %s", estado, municipio)

	c.JSON(http.StatusOK, s.limites.Municipios(estado, municipio))
}

func (s *Servidor) manejarDebugEstados(c *gin.Context) {
	estados := s.limites.NombresEstados()
	c.JSON(http.StatusOK, gin.H{"total": len(estados), "estados": estados})
}

func (s *Servidor) manejarDebugMunicipios(c *gin.Context) {
	municipios := s.limites.NombresMunicipios()

	ejemplo := municipios
	if len(ejemplo) > 50 {
		ejemplo = ejemplo[:50]
	}

	c.JSON(http.StatusOK, gin.H{"total": len(municipios), "ejemplo": ejemplo})
}

func (s *Servidor) manejarDebugMunicipiosPorEstado(c *gin.Context) {
	c.JSON(http.StatusOK, s.limites.MunicipiosPorEstado())
}

func (s *Servidor) manejarDebugTotalMunicipios(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"total": s.limites.TotalMunicipios()})
}

func (s *Servidor) manejarDescarga(c *gin.Context) {
	p := descarga.Peticion{
		Estado:    c.Query("estado"),
		Municipio: c.Query("municipio"),
		Clave:     c.Query("clave"),
		Data:      c.DefaultQuery("data", "DIARIOS"),
		Situacion: c.Query("situacion"),
	}

	r, err := s.descargador.Preparar(c.Request.Context(), p)
	switch {
	case errors.Is(err, descarga.ErrSinEstaciones):
		c.JSON(http.StatusNotFound, gin.H{"error": descarga.MensajeSinEstaciones})
		return
	case errors.Is(err, descarga.ErrSinDatos):
		c.JSON(http.StatusNotFound, gin.H{"error": descarga.MensajeSinDatos})
		return
	case err != nil:
		s.log.WithField("category", "descarga").Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+r.Nombre)
	c.Data(http.StatusOK, r.TipoContenido, r.Contenido)
}

func (s *Servidor) manejarSugerencia(c *gin.Context) {
	var sug modelos.Sugerencia
	if err := c.ShouldBindJSON(&sug); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Cuerpo inválido: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, err := s.sugerencias.Guardar(ctx, sug)
	switch {
	case errors.Is(err, sugerencias.ErrCamposVacios):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	case err != nil:
		s.log.WithField("category", "sugerencias").Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "No se pudo guardar la sugerencia"})
		return
	}

	s.log.WithField("category", "sugerencias").Infof("Sugerencia [%d] recibida de [%s]", id, strings.TrimSpace(sug.Nombre))
	c.JSON(http.StatusOK, gin.H{"ok": true, "mensaje": "Sugerencia recibida"})
}
