package vista

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"visor-estaciones/api"
	"visor-estaciones/filtros"
	"visor-estaciones/helpers"
	"visor-estaciones/mapa"
	"visor-estaciones/modelos"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func medida(v float64, texto string) modelos.Medida {
	return modelos.Medida{Texto: texto, Valor: v, Definida: true}
}

func estacionesVeracruz() []modelos.Estacion {
	return []modelos.Estacion{
		{Clave: "30075", Nombre: "XALAPA", Estado: "VERACRUZ", Municipio: "Xalapa", Situacion: "OPERANDO", Lat: medida(19.53, "19.53"), Lon: medida(-96.91, "-96.91"), Diarios: "http://smn/30075.txt"},
		{Clave: "30012", Nombre: "COATEPEC", Estado: "VERACRUZ", Municipio: "Coatepec", Situacion: "SUSPENDIDA", Lat: medida(19.45, "19.45"), Lon: medida(-96.95, "-96.95")},
		{Clave: "30200", Nombre: "XALAPA (SMN)", Estado: "VERACRUZ", Municipio: "XALAPA", Situacion: "OPERANDO", Lat: medida(19.51, "19.51"), Lon: medida(-96.92, "-96.92")},
		{Clave: "30150", Nombre: "ACTOPAN", Estado: "VERACRUZ", Municipio: "Actopan", Situacion: "SUSPENDIDA"},
	}
}

func estacionesOaxaca() []modelos.Estacion {
	return []modelos.Estacion{
		{Clave: "20001", Nombre: "OAXACA", Estado: "OAXACA", Municipio: "Oaxaca de Juárez", Situacion: "OPERANDO", Lat: medida(17.06, "17.06"), Lon: medida(-96.72, "-96.72")},
	}
}

func cuadro(oeste, sur, este, norte float64) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Polygon{orb.Ring{
		{oeste, sur}, {este, sur}, {este, norte}, {oeste, norte}, {oeste, sur},
	}}))
	return fc
}

type fuenteFalsa struct {
	mu sync.Mutex

	estaciones    map[string][]modelos.Estacion
	errEstaciones error
	antes         func(estado string)
	pedidos       int

	municipiosPedidos []string
	antesCapas        func(municipio string)

	archivo     *api.Archivo
	errDescarga error
	alDescargar func()
	rutas       []string
	errSugerir  error
	sugerencias []modelos.Sugerencia
}

func nuevaFuente() *fuenteFalsa {
	return &fuenteFalsa{
		estaciones: map[string][]modelos.Estacion{
			"VERACRUZ": estacionesVeracruz(),
			"OAXACA":   estacionesOaxaca(),
		},
		archivo: &api.Archivo{Nombre: "VERACRUZ_MUNICIPIOS_TODOS_ESTACIONES_TODAS_DIARIOS.csv", Contenido: []byte("a,b\r\n")},
	}
}

func (f *fuenteFalsa) llamadas() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pedidos
}

func (f *fuenteFalsa) ObtenerEstados(ctx context.Context) ([]string, error) {
	return []string{"OAXACA", "VERACRUZ"}, nil
}

func (f *fuenteFalsa) ObtenerEstaciones(ctx context.Context, estado string) ([]modelos.Estacion, error) {
	f.mu.Lock()
	f.pedidos++
	antes := f.antes
	f.mu.Unlock()

	if antes != nil {
		antes(estado)
	}
	if f.errEstaciones != nil {
		return nil, f.errEstaciones
	}
	return f.estaciones[estado], nil
}

func (f *fuenteFalsa) ObtenerGeoJSONEstados(ctx context.Context, estado string) (*geojson.FeatureCollection, error) {
	return cuadro(-98.7, 17.1, -93.6, 22.5), nil
}

func (f *fuenteFalsa) ObtenerGeoJSONMunicipios(ctx context.Context, estado, municipio string) (*geojson.FeatureCollection, error) {
	f.mu.Lock()
	f.municipiosPedidos = append(f.municipiosPedidos, municipio)
	antes := f.antesCapas
	f.mu.Unlock()

	if antes != nil {
		antes(municipio)
	}
	return cuadro(-97, 19.4, -96.8, 19.6), nil
}

func (f *fuenteFalsa) Descargar(ctx context.Context, ruta string) (*api.Archivo, error) {
	f.rutas = append(f.rutas, ruta)
	if f.alDescargar != nil {
		f.alDescargar()
	}
	if f.errDescarga != nil {
		return nil, f.errDescarga
	}
	return f.archivo, nil
}

func (f *fuenteFalsa) EnviarSugerencia(ctx context.Context, s modelos.Sugerencia) error {
	f.sugerencias = append(f.sugerencias, s)
	return f.errSugerir
}

// lienzoContado cuenta las capas retiradas del lienzo
type lienzoContado struct {
	*mapa.Lienzo
	quitadas int
}

func (l *lienzoContado) Quitar(capa mapa.Capa) {
	l.quitadas++
	l.Lienzo.Quitar(capa)
}

type guardadorFalso struct {
	nombre    string
	contenido []byte
	err       error
}

func (g *guardadorFalso) Guardar(nombre string, contenido []byte) error {
	g.nombre, g.contenido = nombre, contenido
	return g.err
}

type entorno struct {
	c      *Controlador
	fuente *fuenteFalsa
	lienzo *lienzoContado
	avisos *NotificadorLog
	salida *guardadorFalso
}

func nuevoEntorno(t *testing.T) entorno {
	t.Helper()

	e := entorno{
		fuente: nuevaFuente(),
		lienzo: &lienzoContado{Lienzo: mapa.NuevoLienzo()},
		avisos: NuevoNotificadorLog(),
		salida: &guardadorFalso{},
	}
	e.c = NuevoControlador(e.fuente, e.lienzo, e.avisos, e.salida)

	if err := e.c.CargarEstados(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return e
}

func (e entorno) seleccionar(t *testing.T, s filtros.Seleccion) {
	t.Helper()
	if err := e.c.Seleccionar(context.Background(), s); err != nil {
		t.Fatalf("unexpected error selecting %+v: %v", s, err)
	}
}

func etiquetas(opciones []modelos.Opcion) []string {
	r := make([]string, 0, len(opciones))
	for _, o := range opciones {
		r = append(r, o.Etiqueta)
	}
	return r
}

func TestCargarEstados(t *testing.T) {
	e := nuevoEntorno(t)

	got := etiquetas(e.c.Instantanea().Estado.Opciones)
	want := []string{marcadorEstado, "OAXACA", "VERACRUZ"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCambiarEstadoLlenaMunicipios(t *testing.T) {
	e := nuevoEntorno(t)

	if err := e.c.CambiarEstado(context.Background(), "VERACRUZ"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inst := e.c.Instantanea()
	got := etiquetas(inst.Municipio.Opciones)
	want := append([]string{marcadorMunicipio, helpers.Todos}, filtros.Municipios(estacionesVeracruz())...)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if inst.Municipio.Deshabilitado {
		t.Error("expected municipio enabled")
	}
	if !inst.Estacion.Deshabilitado || !inst.TipoDato.Deshabilitado {
		t.Error("expected estación and tipo de dato disabled")
	}

	got = etiquetas(inst.Situacion.Opciones)
	want = []string{helpers.Todas, "OPERANDO", "SUSPENDIDA"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected situations %v, got %v", want, got)
	}
}

func TestCambiarEstadoInvalido(t *testing.T) {
	e := nuevoEntorno(t)

	err := e.c.CambiarEstado(context.Background(), "JALISCO")
	if !errors.Is(err, ErrOpcionInvalida) {
		t.Errorf("expected ErrOpcionInvalida, got %v", err)
	}
	if e.fuente.llamadas() != 0 {
		t.Errorf("expected no fetch, got %d", e.fuente.llamadas())
	}
}

func TestCambiarEstadoMismoEstadoReinicia(t *testing.T) {
	e := nuevoEntorno(t)
	e.seleccionar(t, filtros.Seleccion{Estado: "VERACRUZ", Municipio: "xalapa", Estacion: "30075", TipoDato: "diarios"})

	primera := e.c.Instantanea().Municipio.Opciones

	if err := e.c.CambiarEstado(context.Background(), "VERACRUZ"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inst := e.c.Instantanea()
	if inst.Municipio.Valor != "" || inst.Estacion.Valor != "" || inst.TipoDato.Valor != "" {
		t.Errorf("expected dependent selectors reset, got %q %q %q", inst.Municipio.Valor, inst.Estacion.Valor, inst.TipoDato.Valor)
	}
	if len(inst.Estacion.Opciones) != 1 || !inst.Estacion.Deshabilitado {
		t.Errorf("expected estación with only the placeholder, got %+v", inst.Estacion)
	}
	if !reflect.DeepEqual(inst.Municipio.Opciones, primera) {
		t.Errorf("expected same municipios, got %v", etiquetas(inst.Municipio.Opciones))
	}
}

func TestCambiarEstadoVacio(t *testing.T) {
	e := nuevoEntorno(t)
	e.seleccionar(t, filtros.Seleccion{Estado: "VERACRUZ", Municipio: helpers.Todos})

	antes := e.fuente.llamadas()
	if err := e.c.CambiarEstado(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inst := e.c.Instantanea()
	if !inst.Municipio.Deshabilitado || len(inst.Municipio.Opciones) != 1 {
		t.Errorf("expected municipio disabled and empty, got %+v", inst.Municipio)
	}
	if e.fuente.llamadas() != antes {
		t.Error("expected no fetch for empty state")
	}
}

func TestCambiarMunicipioSinDistinguirMayusculas(t *testing.T) {
	e := nuevoEntorno(t)
	e.seleccionar(t, filtros.Seleccion{Estado: "VERACRUZ", Municipio: "xalapa"})

	inst := e.c.Instantanea()
	got := etiquetas(inst.Estacion.Opciones)
	want := []string{marcadorEstacion, helpers.Todas, "30075 - XALAPA", "30200 - XALAPA (SMN)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if inst.Estacion.Deshabilitado {
		t.Error("expected estación enabled")
	}
}

func TestCambiarTipoDatoDeshabilitado(t *testing.T) {
	e := nuevoEntorno(t)

	if err := e.c.CambiarEstado(context.Background(), "VERACRUZ"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := e.c.CambiarTipoDato("diarios")
	if !errors.Is(err, ErrSelectorDeshabilitado) {
		t.Errorf("expected ErrSelectorDeshabilitado, got %v", err)
	}
}

func TestCambiarEstacionVaciaDeshabilitaTipo(t *testing.T) {
	e := nuevoEntorno(t)
	e.seleccionar(t, filtros.Seleccion{Estado: "VERACRUZ", TipoDato: "diarios"})

	if err := e.c.CambiarEstacion(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inst := e.c.Instantanea()
	if !inst.TipoDato.Deshabilitado || inst.TipoDato.Valor != "" {
		t.Errorf("expected tipo de dato reset, got %+v", inst.TipoDato)
	}
}

func TestSeleccionarResuelveEtiquetas(t *testing.T) {
	e := nuevoEntorno(t)
	e.seleccionar(t, filtros.Seleccion{Estado: "veracruz", Municipio: "XALAPA", Estacion: "30200 - XALAPA (SMN)", TipoDato: "Normales 1961-1990", Situacion: "operando"})

	got := e.c.seleccion()
	want := filtros.Seleccion{Estado: "VERACRUZ", Municipio: "xalapa", Estacion: "30200", TipoDato: "normales_1961_1990", Situacion: "OPERANDO"}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	err := e.c.Seleccionar(context.Background(), filtros.Seleccion{Estado: "VERACRUZ", Municipio: "Perote"})
	if !errors.Is(err, ErrOpcionInvalida) {
		t.Errorf("expected ErrOpcionInvalida, got %v", err)
	}
}

func TestCambiarEstadoRespuestaObsoleta(t *testing.T) {
	e := nuevoEntorno(t)

	iniciada := make(chan struct{})
	liberar := make(chan struct{})
	e.fuente.antes = func(estado string) {
		if estado == "OAXACA" {
			close(iniciada)
			<-liberar
		}
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := e.c.CambiarEstado(context.Background(), "OAXACA"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}()

	<-iniciada
	if err := e.c.CambiarEstado(context.Background(), "VERACRUZ"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(liberar)
	wg.Wait()

	inst := e.c.Instantanea()
	if inst.Estado.Valor != "VERACRUZ" {
		t.Errorf("expected VERACRUZ, got %s", inst.Estado.Valor)
	}
	for _, o := range inst.Municipio.Opciones {
		if o.Etiqueta == "Oaxaca de Juárez" {
			t.Fatal("stale municipios from OAXACA were applied")
		}
	}
	if len(inst.Municipio.Opciones) != 2+len(filtros.Municipios(estacionesVeracruz())) {
		t.Errorf("unexpected municipios %v", etiquetas(inst.Municipio.Opciones))
	}
}

func TestBuscarRespuestaObsoleta(t *testing.T) {
	e := nuevoEntorno(t)
	e.seleccionar(t, filtros.Seleccion{Estado: "VERACRUZ", Municipio: helpers.Todos, Estacion: helpers.Todas, TipoDato: "diarios"})

	iniciada := make(chan struct{})
	liberar := make(chan struct{})
	primera := true
	e.fuente.antes = func(estado string) {
		if primera {
			primera = false
			close(iniciada)
			<-liberar
		}
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := e.c.Buscar(context.Background()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}()

	<-iniciada
	if err := e.c.Buscar(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	quitadas := e.lienzo.quitadas

	// la búsqueda lenta recibe otra lista, que no debe aplicarse
	e.fuente.estaciones["VERACRUZ"] = estacionesVeracruz()[:1]
	close(liberar)
	wg.Wait()

	inst := e.c.Instantanea()
	if inst.Estadisticas.Total != 4 {
		t.Errorf("expected stats of the newest search, got %+v", inst.Estadisticas)
	}
	if n := len(e.lienzo.Marcadores()); n != 3 {
		t.Errorf("expected 3 markers, got %d", n)
	}
	if n := len(e.lienzo.Poligonos()); n != 2 {
		t.Errorf("expected 2 polygon layers, got %d", n)
	}
	if e.lienzo.quitadas != quitadas {
		t.Errorf("expected the stale search to leave the map alone, got %d removals after %d", e.lienzo.quitadas, quitadas)
	}
}

func TestCargarCapasRespuestaObsoleta(t *testing.T) {
	e := nuevoEntorno(t)

	iniciada := make(chan struct{})
	liberar := make(chan struct{})
	e.fuente.antesCapas = func(municipio string) {
		if municipio == "xalapa" {
			close(iniciada)
			<-liberar
		}
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := e.c.CargarCapas(context.Background(), "VERACRUZ", "xalapa"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}()

	<-iniciada
	if err := e.c.CargarCapas(context.Background(), "VERACRUZ", helpers.Todos); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(liberar)
	wg.Wait()

	poligonos := e.lienzo.Poligonos()
	if len(poligonos) != 2 {
		t.Fatalf("expected state and municipios layers, got %d", len(poligonos))
	}
	if poligonos[1].Estilo != mapa.EstiloMunicipios {
		t.Errorf("expected the newest all-municipios layer, got %+v", poligonos[1].Estilo)
	}
}

func TestBuscarSinFiltrosNoConsulta(t *testing.T) {
	tests := []struct {
		name    string
		sel     *filtros.Seleccion
		mensaje string
	}{
		{"sin estado", nil, "Por favor selecciona un estado."},
		{"sin municipio", &filtros.Seleccion{Estado: "VERACRUZ"}, "Selecciona un municipio o 'TODOS' antes de continuar."},
		{"sin estacion", &filtros.Seleccion{Estado: "VERACRUZ", Municipio: helpers.Todos}, "Selecciona una estación o la opción 'TODAS' antes de continuar."},
		{"sin tipo", &filtros.Seleccion{Estado: "VERACRUZ", Municipio: helpers.Todos, Estacion: helpers.Todas}, "Selecciona un tipo de dato antes de continuar."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := nuevoEntorno(t)
			ctx := context.Background()

			if tt.sel != nil {
				if err := e.c.CambiarEstado(ctx, tt.sel.Estado); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if tt.sel.Municipio != "" {
					if err := e.c.CambiarMunicipio(ctx, tt.sel.Municipio); err != nil {
						t.Fatalf("unexpected error: %v", err)
					}
				}
				if tt.sel.Estacion != "" {
					if err := e.c.CambiarEstacion(tt.sel.Estacion); err != nil {
						t.Fatalf("unexpected error: %v", err)
					}
				}
			}

			antes := e.fuente.llamadas()
			err := e.c.Buscar(ctx)

			if !errors.Is(err, ErrFiltrosIncompletos) {
				t.Errorf("expected ErrFiltrosIncompletos, got %v", err)
			}
			if e.fuente.llamadas() != antes {
				t.Errorf("expected no fetch, got %d new", e.fuente.llamadas()-antes)
			}
			alertas := e.avisos.Alertas()
			if len(alertas) != 1 || alertas[0] != tt.mensaje {
				t.Errorf("expected alert %q, got %v", tt.mensaje, alertas)
			}
		})
	}
}

func TestBuscarPintaMarcadores(t *testing.T) {
	e := nuevoEntorno(t)
	e.seleccionar(t, filtros.Seleccion{Estado: "VERACRUZ", Municipio: helpers.Todos, Estacion: helpers.Todas, TipoDato: "diarios"})

	if err := e.c.Buscar(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inst := e.c.Instantanea()
	if inst.Estadisticas != (filtros.Estadisticas{Total: 4, Operativas: 2, Inoperativas: 2, Municipios: 4}) {
		t.Errorf("unexpected stats %+v", inst.Estadisticas)
	}

	marcadores := e.lienzo.Marcadores()
	if len(marcadores) != 3 || inst.Marcadores != 3 {
		t.Fatalf("expected 3 markers, got %d", len(marcadores))
	}

	verdes := 0
	for _, m := range marcadores {
		if m.Icono == mapa.IconoOperando {
			verdes++
		}
	}
	if verdes != inst.Estadisticas.Operativas {
		t.Errorf("expected %d green markers, got %d", inst.Estadisticas.Operativas, verdes)
	}

	if inst.Ficha.Estacion == nil || inst.Ficha.Estacion.Clave != "30075" {
		t.Errorf("expected first station in detail, got %+v", inst.Ficha)
	}
	if inst.Descarga.Deshabilitado {
		t.Error("expected download enabled")
	}

	poligonos := e.lienzo.Poligonos()
	if len(poligonos) != 2 {
		t.Fatalf("expected state and municipios layers, got %d", len(poligonos))
	}
	if poligonos[1].Estilo != mapa.EstiloMunicipios {
		t.Errorf("expected all-municipios style, got %+v", poligonos[1].Estilo)
	}
	if !reflect.DeepEqual(e.fuente.municipiosPedidos, []string{""}) {
		t.Errorf("expected all municipios requested, got %v", e.fuente.municipiosPedidos)
	}
	if e.lienzo.Vista() != poligonos[1].Limites() {
		t.Error("expected view fitted to the municipios layer")
	}
}

func TestBuscarMunicipioUnico(t *testing.T) {
	e := nuevoEntorno(t)
	e.seleccionar(t, filtros.Seleccion{Estado: "VERACRUZ", Municipio: "xalapa", Estacion: helpers.Todas, TipoDato: "diarios"})

	if err := e.c.Buscar(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(e.lienzo.Marcadores()) != 2 {
		t.Errorf("expected 2 markers, got %d", len(e.lienzo.Marcadores()))
	}
	if !reflect.DeepEqual(e.fuente.municipiosPedidos, []string{"xalapa"}) {
		t.Errorf("expected xalapa requested, got %v", e.fuente.municipiosPedidos)
	}
	if p := e.lienzo.Poligonos(); len(p) != 2 || p[1].Estilo != mapa.EstiloMunicipio {
		t.Errorf("expected single municipio layer, got %+v", p)
	}
}

func TestBuscarReemplazaCapas(t *testing.T) {
	e := nuevoEntorno(t)
	e.seleccionar(t, filtros.Seleccion{Estado: "VERACRUZ", Municipio: helpers.Todos, Estacion: helpers.Todas, TipoDato: "diarios"})

	for i := 0; i < 3; i++ {
		if err := e.c.Buscar(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if n := len(e.lienzo.Poligonos()); n != 2 {
		t.Errorf("expected 2 polygon layers, got %d", n)
	}
	if n := len(e.lienzo.Marcadores()); n != 3 {
		t.Errorf("expected 3 markers, got %d", n)
	}
	// dos búsquedas repetidas: 3 marcadores y 2 capas retirados en cada una
	if e.lienzo.quitadas != 10 {
		t.Errorf("expected 10 removed layers, got %d", e.lienzo.quitadas)
	}
}

func TestBuscarSinResultados(t *testing.T) {
	e := nuevoEntorno(t)
	e.seleccionar(t, filtros.Seleccion{Estado: "VERACRUZ", Municipio: helpers.Todos, Estacion: helpers.Todas, TipoDato: "diarios"})
	if err := e.c.Buscar(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e.seleccionar(t, filtros.Seleccion{Estado: "VERACRUZ", Municipio: "coatepec", Estacion: helpers.Todas, TipoDato: "diarios", Situacion: "OPERANDO"})
	err := e.c.Buscar(context.Background())

	if !errors.Is(err, ErrSinResultados) {
		t.Fatalf("expected ErrSinResultados, got %v", err)
	}

	inst := e.c.Instantanea()
	if len(e.lienzo.Marcadores()) != 0 || inst.Marcadores != 0 {
		t.Errorf("expected markers cleared, got %d", len(e.lienzo.Marcadores()))
	}
	if inst.Ficha.Estacion != nil || inst.Ficha.Mensaje != "No se encontraron estaciones" {
		t.Errorf("unexpected detail %+v", inst.Ficha)
	}
	if !inst.Descarga.Deshabilitado || inst.Estadisticas != (filtros.Estadisticas{}) {
		t.Errorf("expected download disabled and zero stats, got %+v %+v", inst.Descarga, inst.Estadisticas)
	}

	alertas := e.avisos.Alertas()
	if len(alertas) != 1 || alertas[0] != MensajeSinResultados {
		t.Errorf("unexpected alerts %v", alertas)
	}
}

func TestBuscarErrorFuente(t *testing.T) {
	e := nuevoEntorno(t)
	e.seleccionar(t, filtros.Seleccion{Estado: "VERACRUZ", Municipio: helpers.Todos, Estacion: helpers.Todas, TipoDato: "diarios"})

	e.fuente.errEstaciones = errors.New("connection refused")
	if err := e.c.Buscar(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	alertas := e.avisos.Alertas()
	if len(alertas) != 1 || alertas[0] != "Hubo un error al obtener estaciones." {
		t.Errorf("unexpected alerts %v", alertas)
	}
}

func TestClicMarcadorMuestraDetalle(t *testing.T) {
	e := nuevoEntorno(t)
	e.seleccionar(t, filtros.Seleccion{Estado: "VERACRUZ", Municipio: helpers.Todos, Estacion: helpers.Todas, TipoDato: "diarios"})
	if err := e.c.Buscar(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e.lienzo.Marcadores()[1].Clic()

	ficha := e.c.Instantanea().Ficha
	if ficha.Estacion == nil || ficha.Estacion.Clave != "30012" {
		t.Errorf("expected COATEPEC in detail, got %+v", ficha)
	}
}

func TestPopupEscapado(t *testing.T) {
	got := popup(modelos.Estacion{Nombre: "<script>", Clave: "1", Municipio: "A&B", Situacion: "OPERANDO"})
	want := "<b>&lt;script&gt;</b><br>Clave: 1<br>Municipio: A&amp;B<br>Situación: OPERANDO<br>"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSecuenciador(t *testing.T) {
	s := NuevoSecuenciador()

	a := s.Emitir(CategoriaBusqueda)
	b := s.Emitir(CategoriaBusqueda)
	c := s.Emitir(CategoriaCapas)

	if s.Vigente(CategoriaBusqueda, a) || !s.Vigente(CategoriaBusqueda, b) {
		t.Error("only the latest search should be current")
	}
	if !s.Vigente(CategoriaCapas, c) {
		t.Error("categories should be independent")
	}

	s.Invalidar(CategoriaCapas)
	if s.Vigente(CategoriaCapas, c) {
		t.Error("expected layers request invalidated")
	}
}
