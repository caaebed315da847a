package modelos

import (
	"time"

	"github.com/sirupsen/logrus"
)

type Parametros struct {
	Servir    *ParametrosServir     `arg:"subcommand:servir" help:"Levanta la API de estaciones climatológicas"`
	Estados   *ParametrosEstados    `arg:"subcommand:estados" help:"Lista los estados disponibles en la API"`
	Buscar    *ParametrosBusqueda   `arg:"subcommand:buscar" help:"Busca estaciones con los filtros en cascada y dibuja el mapa"`
	Descargar *ParametrosDescarga   `arg:"subcommand:descargar" help:"Descarga el CSV o ZIP de las estaciones filtradas"`
	Sugerir   *ParametrosSugerencia `arg:"subcommand:sugerir" help:"Envía una sugerencia al equipo del visor"`

	API        string        `arg:"-a, --api, env:VISOR_API_URL" placeholder:"URL" help:"Dirección base de la API de estaciones"`
	Tiempo     time.Duration `arg:"-t, --tiempo" placeholder:"DURACIÓN" help:"Tiempo máximo por petición a la API. 0 para esperar indefinidamente"`
	Verbosidad logrus.Level  `arg:"-v, --verbosidad" placeholder:"NIVEL" help:"Cuántos logs se muestran. En orden de criticidad (0 a 6): panic > fatal > error > warn > info > debug > trace"`
}

type ParametrosServir struct{}

type ParametrosEstados struct{}

// Filtros son los valores de los selectores en cascada. Se aceptan el valor o el texto de cada opción
type Filtros struct {
	Estado    string `arg:"positional, required" placeholder:"ESTADO" help:"Estado a consultar. Ej: VERACRUZ"`
	Municipio string `arg:"-m, --municipio" default:"TODOS" placeholder:"MUNICIPIO" help:"Municipio o TODOS"`
	Estacion  string `arg:"-e, --estacion" default:"TODAS" placeholder:"CLAVE" help:"Clave de la estación o TODAS"`
	Dato      string `arg:"-d, --dato" default:"diarios" placeholder:"TIPO" help:"Tipo de dato: diarios, mensuales, normales_1961_1990, normales_1971_2000, normales_1981_2010, normales_1991_2020, extremos o TODOS"`
	Situacion string `arg:"-s, --situacion" placeholder:"SITUACIÓN" help:"Filtra por situación de la estación, p.ej. OPERANDO. TODAS para no filtrar"`
}

type ParametrosBusqueda struct {
	Filtros
	HTML string `arg:"--html" placeholder:"ARCHIVO" help:"Si se indica, escribe el mapa con los resultados en este archivo HTML"`
}

type ParametrosDescarga struct {
	Filtros
	Salida string `arg:"-o, --salida" default:"./descargas/" placeholder:"CAMINO" help:"Carpeta donde se guarda el archivo descargado"`
}

type ParametrosSugerencia struct {
	Nombre  string `arg:"positional, required" placeholder:"NOMBRE"`
	Mensaje string `arg:"positional, required" placeholder:"MENSAJE"`
}
