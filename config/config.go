// Package config lee la configuración del servidor desde el entorno, opcionalmente desde un .env.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	Port              int
	KMLPath           string
	EstadosGeoJSON    string
	MunicipiosGeoJSON string
	SugerenciasDB     string
	DescargaWorkers   int
	DescargaTimeout   time.Duration
	CacheDir          string
	StaticDir         string
}

func Load() (Config, error) {
	_ = godotenv.Load() // el .env es opcional

	cfg := Config{
		Port:              8000,
		KMLPath:           "data/doc.kml",
		EstadosGeoJSON:    "data/estados.geojson",
		MunicipiosGeoJSON: "data/municipios.geojson",
		SugerenciasDB:     "data/sugerencias.db",
		DescargaWorkers:   4,
		DescargaTimeout:   30 * time.Second,
		StaticDir:         "static",
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 {
			return cfg, errors.Errorf("PORT inválido: %s", portStr)
		}
		cfg.Port = port
	}

	cadenas := map[string]*string{
		"KML_PATH":           &cfg.KMLPath,
		"ESTADOS_GEOJSON":    &cfg.EstadosGeoJSON,
		"MUNICIPIOS_GEOJSON": &cfg.MunicipiosGeoJSON,
		"SUGERENCIAS_DB":     &cfg.SugerenciasDB,
		"CACHE_DIR":          &cfg.CacheDir,
		"STATIC_DIR":         &cfg.StaticDir,
	}
	for nombre, destino := range cadenas {
		if v := os.Getenv(nombre); v != "" {
			*destino = v
		}
	}

	if workersStr := os.Getenv("DESCARGA_WORKERS"); workersStr != "" {
		workers, err := strconv.Atoi(workersStr)
		if err != nil || workers <= 0 {
			return cfg, errors.Errorf("DESCARGA_WORKERS inválido: %s", workersStr)
		}
		cfg.DescargaWorkers = workers
	}

	if tiempoStr := os.Getenv("DESCARGA_TIMEOUT"); tiempoStr != "" {
		tiempo, err := time.ParseDuration(tiempoStr)
		if err != nil || tiempo <= 0 {
			return cfg, errors.Errorf("DESCARGA_TIMEOUT inválido: %s", tiempoStr)
		}
		cfg.DescargaTimeout = tiempo
	}

	return cfg, nil
}

// ListenAddr devuelve la dirección host:puerto del servidor HTTP
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
