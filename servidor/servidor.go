// Package servidor expone la API REST de estaciones climatológicas con gin.
package servidor

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"
	"visor-estaciones/catalogo"
	"visor-estaciones/config"
	"visor-estaciones/descarga"
	"visor-estaciones/limites"
	"visor-estaciones/sugerencias"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

type Servidor struct {
	cfg         config.Config
	catalogo    *catalogo.Catalogo
	limites     *limites.Limites
	descargador *descarga.Descargador
	sugerencias *sugerencias.Almacen
	engine      *gin.Engine
	log         *logger.Entry
}

// Dependencias son los almacenes que atiende el servidor
type Dependencias struct {
	Catalogo    *catalogo.Catalogo
	Limites     *limites.Limites
	Descargador *descarga.Descargador
	Sugerencias *sugerencias.Almacen
}

func Nuevo(cfg config.Config, d Dependencias) *Servidor {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(registroPeticiones())
	engine.Use(corsMiddleware())

	s := &Servidor{
		cfg:         cfg,
		catalogo:    d.Catalogo,
		limites:     d.Limites,
		descargador: d.Descargador,
		sugerencias: d.Sugerencias,
		engine:      engine,
		log:         logger.WithField("component", "servidor"),
	}
	s.registrarRutas()
	return s
}

// Engine expone el router de gin (para pruebas)
func (s *Servidor) Engine() *gin.Engine {
	return s.engine
}

// Run levanta el servidor y bloquea hasta que ctx se cancela
func (s *Servidor) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	s.log.WithField("category", "http").Infof("API escuchando en %s", s.cfg.ListenAddr())

	select {
	case err := <-errCh:
		return errors.WithStack(err)
	case <-ctx.Done():
		s.log.WithField("category", "http").Info("Cerrando el servidor")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Servidor) registrarRutas() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api")
	{
		api.GET("/estados", s.manejarEstados)
		api.GET("/estaciones", s.manejarEstaciones)
		api.GET("/estados_geojson", s.manejarEstadosGeoJSON)
		api.GET("/municipios_geojson", s.manejarMunicipiosGeoJSON)
		api.GET("/descargar_csv", s.manejarDescarga)
		api.POST("/enviar_sugerencia", s.manejarSugerencia)

		api.GET("/debug_estados", s.manejarDebugEstados)
		api.GET("/debug_municipios_all", s.manejarDebugMunicipios)
		api.GET("/debug_municipios_por_estado", s.manejarDebugMunicipiosPorEstado)
		api.GET("/debug_total_municipios", s.manejarDebugTotalMunicipios)
	}

	s.registrarEstaticos()
}

// registrarEstaticos sirve la página del visor si la carpeta existe
func (s *Servidor) registrarEstaticos() {
	if s.cfg.StaticDir == "" {
		return
	}
	if _, err := os.Stat(s.cfg.StaticDir); err != nil {
		s.log.WithField("category", "estaticos").Debugf("Sin archivos estáticos en %s", s.cfg.StaticDir)
		return
	}

	indice := filepath.Join(s.cfg.StaticDir, "index.html")
	inicio := func(c *gin.Context) { c.File(indice) }

	s.engine.Static("/static", s.cfg.StaticDir)
	s.engine.GET("/", inicio)
	s.engine.HEAD("/", inicio)
}

// registroPeticiones escribe cada petición en el log con su estado y latencia
func registroPeticiones() gin.HandlerFunc {
	log := logger.WithField("component", "servidor").WithField("category", "http")

	return func(c *gin.Context) {
		inicio := time.Now()
		ruta := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			ruta = ruta + "?" + raw
		}

		c.Next()

		log.Infof("[%s] %s %s %d %v %s",
			c.Request.Method,
			ruta,
			c.ClientIP(),
			c.Writer.Status(),
			time.Since(inicio),
			c.Errors.String(),
		)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Expose-Headers", "Content-Disposition")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
