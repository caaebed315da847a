package servidor

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"visor-estaciones/api"
	"visor-estaciones/config"
	"visor-estaciones/filtros"
	"visor-estaciones/mapa"
	"visor-estaciones/vista"
)

func TestVisorContraServidor(t *testing.T) {
	srv := httptest.NewServer(nuevoServidorDePrueba(t, config.Config{}).Engine())
	defer srv.Close()

	ctx := context.Background()
	cliente := api.NuevoCliente(srv.URL, 0)
	lienzo := mapa.NuevoLienzo()
	avisos := vista.NuevoNotificadorLog()
	salida := t.TempDir()

	c := vista.NuevoControlador(cliente, lienzo, avisos, vista.Directorio{Ruta: salida})

	if err := c.CargarEstados(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Seleccionar(ctx, filtros.Seleccion{Estado: "veracruz", Municipio: "xalapa", Estacion: "TODAS", TipoDato: "diarios"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Buscar(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inst := c.Instantanea()
	if inst.Estadisticas != (filtros.Estadisticas{Total: 2, Operativas: 1, Inoperativas: 1, Municipios: 2}) {
		t.Errorf("unexpected stats %+v", inst.Estadisticas)
	}
	if len(lienzo.Marcadores()) != 2 {
		t.Errorf("expected 2 markers, got %d", len(lienzo.Marcadores()))
	}
	if len(lienzo.Poligonos()) != 2 {
		t.Errorf("expected state and municipio layers, got %d", len(lienzo.Poligonos()))
	}

	if err := c.Descargar(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(salida, "VERACRUZ_XALAPA_ESTACIONES_TODAS_DIARIOS.zip")); err != nil {
		t.Errorf("expected downloaded zip: %v", err)
	}
	if len(avisos.Alertas()) != 0 {
		t.Errorf("unexpected alerts %v", avisos.Alertas())
	}

	f := vista.NuevoFormulario(cliente)
	f.Llenar("Ana", "Agregar Sonora")
	if err := f.Enviar(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Resultado().Resultado != vista.ResultadoExito {
		t.Errorf("unexpected form result %+v", f.Resultado())
	}

	f.Llenar(" ", "Hola")
	f.Enviar(ctx)
	if f.Resultado().Texto != "Por favor completa todos los campos." {
		t.Errorf("unexpected form result %+v", f.Resultado())
	}
}

func TestVisorDescargaSinDatos(t *testing.T) {
	srv := httptest.NewServer(nuevoServidorDePrueba(t, config.Config{}).Engine())
	defer srv.Close()

	ctx := context.Background()
	avisos := vista.NuevoNotificadorLog()
	c := vista.NuevoControlador(api.NuevoCliente(srv.URL, 0), mapa.NuevoLienzo(), avisos, vista.Directorio{Ruta: t.TempDir()})

	if err := c.CargarEstados(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Seleccionar(ctx, filtros.Seleccion{Estado: "OAXACA", Municipio: "TODOS", Estacion: "TODAS", TipoDato: "diarios"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Buscar(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.Descargar(ctx); err == nil {
		t.Fatal("expected error")
	}

	alertas := avisos.Alertas()
	if len(alertas) != 1 || alertas[0] != "No se encontro el tipo de dato solicitado." {
		t.Errorf("expected the server message as alert, got %v", alertas)
	}
	if len(avisos.Avisos()) != 0 {
		t.Errorf("expected no toast, got %v", avisos.Avisos())
	}
}
