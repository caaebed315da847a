package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"visor-estaciones/api"
	"visor-estaciones/catalogo"
	"visor-estaciones/config"
	"visor-estaciones/descarga"
	"visor-estaciones/filtros"
	"visor-estaciones/limites"
	"visor-estaciones/mapa"
	"visor-estaciones/modelos"
	"visor-estaciones/servidor"
	"visor-estaciones/sugerencias"
	"visor-estaciones/vista"

	"github.com/alexflint/go-arg"
	nested "github.com/antonfisher/nested-logrus-formatter"
	logger "github.com/sirupsen/logrus"
)

const apiPorDefecto = "http://localhost:8000"

func main() {
	args := modelos.Parametros{API: apiPorDefecto, Verbosidad: logger.WarnLevel}
	p := arg.MustParse(&args)
	logger.SetLevel(args.Verbosidad)
	logger.SetFormatter(&nested.Formatter{
		HideKeys:    true,
		FieldsOrder: []string{"component", "category"},
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cliente := api.NuevoCliente(args.API, args.Tiempo)

	var err error
	switch {
	case args.Servir != nil:
		err = servir(ctx)
	case args.Estados != nil:
		err = listarEstados(ctx, cliente)
	case args.Buscar != nil:
		err = buscar(ctx, cliente, *args.Buscar)
	case args.Descargar != nil:
		err = descargar(ctx, cliente, *args.Descargar)
	case args.Sugerir != nil:
		err = sugerir(ctx, cliente, *args.Sugerir)
	default:
		p.Fail("Falta el subcomando")
	}

	salirSiError(err)
}

func salirSiError(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}

func servir(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	cat, err := catalogo.Cargar(cfg.KMLPath)
	if err != nil {
		return err
	}

	lim, err := limites.Cargar(cfg.EstadosGeoJSON, cfg.MunicipiosGeoJSON)
	if err != nil {
		return err
	}

	almacen, err := sugerencias.Abrir(cfg.SugerenciasDB)
	if err != nil {
		return err
	}
	defer almacen.Cerrar()

	descargador := descarga.Nuevo(cat, descarga.Opciones{
		Workers: cfg.DescargaWorkers,
		Tiempo:  cfg.DescargaTimeout,
		Cache:   cfg.CacheDir,
	})

	srv := servidor.Nuevo(cfg, servidor.Dependencias{
		Catalogo:    cat,
		Limites:     lim,
		Descargador: descargador,
		Sugerencias: almacen,
	})

	return srv.Run(ctx)
}

func listarEstados(ctx context.Context, cliente *api.Cliente) error {
	estados, err := cliente.ObtenerEstados(ctx)
	if err != nil {
		return err
	}

	for _, e := range estados {
		fmt.Println(e)
	}
	return nil
}

func seleccion(f modelos.Filtros) filtros.Seleccion {
	return filtros.Seleccion{
		Estado:    f.Estado,
		Municipio: f.Municipio,
		Estacion:  f.Estacion,
		TipoDato:  f.Dato,
		Situacion: f.Situacion,
	}
}

// prepararVista carga los estados y recorre la cascada con los filtros de la línea de comandos
func prepararVista(ctx context.Context, cliente *api.Cliente, f modelos.Filtros, archivos vista.Guardador) (*vista.Controlador, *mapa.Lienzo, error) {
	lienzo := mapa.NuevoLienzo()
	c := vista.NuevoControlador(cliente, lienzo, vista.NuevoNotificadorLog(), archivos)

	if err := c.CargarEstados(ctx); err != nil {
		return nil, nil, err
	}
	if err := c.Seleccionar(ctx, seleccion(f)); err != nil {
		return nil, nil, err
	}
	if err := c.Buscar(ctx); err != nil {
		return nil, nil, err
	}

	return c, lienzo, nil
}

func buscar(ctx context.Context, cliente *api.Cliente, params modelos.ParametrosBusqueda) error {
	c, lienzo, err := prepararVista(ctx, cliente, params.Filtros, vista.Directorio{Ruta: "."})
	if err != nil {
		return err
	}

	inst := c.Instantanea()
	est := inst.Estadisticas
	fmt.Printf("Total: %d  Operativas: %d  Inoperativas: %d  Municipios: %d\n",
		est.Total, est.Operativas, est.Inoperativas, est.Municipios)

	for _, e := range inst.Estaciones {
		fmt.Printf("%s\t%s\t%s\t%s\n", e.Clave, e.Nombre, e.Municipio, e.Situacion)
	}

	if params.HTML == "" {
		return nil
	}

	titulo := "Estaciones de " + strings.ToUpper(params.Estado)
	if err := lienzo.GuardarHTML(params.HTML, inst.Pagina(titulo)); err != nil {
		return err
	}

	logger.Infof("Mapa escrito en %s", params.HTML)
	return nil
}

func descargar(ctx context.Context, cliente *api.Cliente, params modelos.ParametrosDescarga) error {
	c, _, err := prepararVista(ctx, cliente, params.Filtros, vista.Directorio{Ruta: params.Salida})
	if err != nil {
		return err
	}

	return c.Descargar(ctx)
}

func sugerir(ctx context.Context, cliente *api.Cliente, params modelos.ParametrosSugerencia) error {
	f := vista.NuevoFormulario(cliente)
	f.Llenar(params.Nombre, params.Mensaje)

	err := f.Enviar(ctx)
	fmt.Println(f.Resultado().Texto)
	return err
}
