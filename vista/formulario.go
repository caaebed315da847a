package vista

import (
	"context"
	"strings"
	"sync"
	"visor-estaciones/api"
	"visor-estaciones/modelos"

	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

var ErrCamposVacios = errors.New("campos vacíos")

const MensajeCamposVacios = "Por favor completa todos los campos."

type Resultado int

const (
	ResultadoNinguno Resultado = iota
	ResultadoEnviando
	ResultadoExito
	ResultadoError
)

// Mensaje es el texto mostrado bajo el formulario
type Mensaje struct {
	Texto     string
	Resultado Resultado
}

// Formulario es el formulario de sugerencias con sus dos campos obligatorios
type Formulario struct {
	fuente Fuente
	log    *logger.Entry

	mu      sync.Mutex
	nombre  string
	mensaje string
	estado  Mensaje
}

func NuevoFormulario(fuente Fuente) *Formulario {
	return &Formulario{fuente: fuente, log: logger.WithField("component", "sugerencias")}
}

func (f *Formulario) Llenar(nombre, mensaje string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nombre = nombre
	f.mensaje = mensaje
}

func (f *Formulario) Campos() modelos.Sugerencia {
	f.mu.Lock()
	defer f.mu.Unlock()

	return modelos.Sugerencia{Nombre: f.nombre, Mensaje: f.mensaje}
}

func (f *Formulario) Resultado() Mensaje {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.estado
}

func (f *Formulario) informar(texto string, r Resultado) {
	f.mu.Lock()
	f.estado = Mensaje{Texto: texto, Resultado: r}
	f.mu.Unlock()
}

// Enviar valida los campos y manda la sugerencia. Con éxito el formulario queda vacío.
func (f *Formulario) Enviar(ctx context.Context) error {
	s := f.Campos()
	s.Nombre = strings.TrimSpace(s.Nombre)
	s.Mensaje = strings.TrimSpace(s.Mensaje)

	if s.Nombre == "" || s.Mensaje == "" {
		f.informar(MensajeCamposVacios, ResultadoError)
		return ErrCamposVacios
	}

	f.informar("Enviando sugerencia...", ResultadoEnviando)
	f.log.WithField("category", "envio").Debugf("Enviando sugerencia de [%s]", s.Nombre)

	err := f.fuente.EnviarSugerencia(ctx, s)
	if err == nil {
		f.mu.Lock()
		f.nombre, f.mensaje = "", ""
		f.estado = Mensaje{Texto: "¡Gracias por tu sugerencia! Se ha enviado correctamente.", Resultado: ResultadoExito}
		f.mu.Unlock()
		return nil
	}

	var respuesta *api.ErrorRespuesta
	if errors.As(err, &respuesta) {
		detalle := respuesta.Detalle
		if detalle == "" {
			detalle = "No se pudo enviar el mensaje."
		}
		f.informar("Error: "+detalle, ResultadoError)
		return err
	}

	f.log.WithField("category", "envio").Errorf("Error en la solicitud: %v", err)
	f.informar("Ocurrió un error al enviar la sugerencia: "+errors.Cause(err).Error(), ResultadoError)
	return err
}
