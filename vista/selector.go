package vista

import (
	"strings"
	"visor-estaciones/modelos"
)

const (
	marcadorEstado    = "Seleccionar estado"
	marcadorMunicipio = "Seleccionar municipio"
	marcadorEstacion  = "Seleccionar estación"
	marcadorTipoDato  = "Seleccionar tipo de dato"
)

// Selector es el estado de un desplegable: sus opciones, el valor elegido y si está habilitado
type Selector struct {
	Opciones      []modelos.Opcion
	Valor         string
	Deshabilitado bool
}

func nuevoSelector(marcador string, deshabilitado bool) Selector {
	return Selector{
		Opciones:      []modelos.Opcion{{Valor: "", Etiqueta: marcador}},
		Deshabilitado: deshabilitado,
	}
}

// reiniciar deja solo la opción por defecto
func (s *Selector) reiniciar(marcador string) {
	s.Opciones = []modelos.Opcion{{Valor: "", Etiqueta: marcador}}
	s.Valor = ""
}

func (s Selector) Contiene(valor string) bool {
	for _, o := range s.Opciones {
		if o.Valor == valor {
			return true
		}
	}
	return false
}

// Resolver busca la opción que corresponde a un texto escrito por el usuario: primero el valor
// exacto y luego valor o etiqueta sin distinguir mayúsculas.
func (s Selector) Resolver(texto string) (string, bool) {
	if s.Contiene(texto) {
		return texto, true
	}

	texto = strings.TrimSpace(texto)
	for _, o := range s.Opciones {
		if o.Valor != "" && (strings.EqualFold(o.Valor, texto) || strings.EqualFold(o.Etiqueta, texto)) {
			return o.Valor, true
		}
	}

	return "", false
}

func (s Selector) copia() Selector {
	s.Opciones = append([]modelos.Opcion(nil), s.Opciones...)
	return s
}

// Boton es el botón de descarga
type Boton struct {
	Etiqueta      string
	Deshabilitado bool
}

const (
	etiquetaDescargar   = "Descargar"
	etiquetaDescargando = "Descargando..."
)
