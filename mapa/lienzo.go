// Package mapa guarda en memoria las capas dibujadas sobre el mapa y las escribe como una
// página Leaflet estática.
package mapa

import (
	"sync"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb/geojson"
)

// Vista inicial: Veracruz centrado
var (
	CentroInicial = s2.LatLngFromDegrees(19.4978, -96.9379)
	ZoomInicial   = 7
)

type Icono int

const (
	IconoOperando Icono = iota
	IconoInoperante
)

func (i Icono) URL() string {
	if i == IconoOperando {
		return "https://maps.google.com/mapfiles/ms/icons/green-dot.png"
	}
	return "https://maps.google.com/mapfiles/ms/icons/red-dot.png"
}

type Estilo struct {
	Color   string  `json:"color"`
	Grosor  int     `json:"weight"`
	Relleno float64 `json:"fillOpacity"`
}

var (
	EstiloEstado     = Estilo{Color: "blue", Grosor: 5, Relleno: 0.07}
	EstiloMunicipios = Estilo{Color: "yellow", Grosor: 2, Relleno: 0.08}
	EstiloMunicipio  = Estilo{Color: "yellow", Grosor: 4, Relleno: 0.2}
)

// Capa es cualquier elemento agregado al lienzo
type Capa interface {
	Limites() s2.Rect
	identificador() int
}

type Marcador struct {
	id       int
	Posicion s2.LatLng
	Icono    Icono
	Popup    string
	alClic   func()
}

func (m *Marcador) Limites() s2.Rect {
	return s2.RectFromLatLng(m.Posicion)
}

// Clic ejecuta el manejador del marcador, como lo haría el usuario en el mapa
func (m *Marcador) Clic() {
	if m.alClic != nil {
		m.alClic()
	}
}

func (m *Marcador) identificador() int {
	if m == nil {
		return 0
	}
	return m.id
}

type Poligonos struct {
	id      int
	Datos   *geojson.FeatureCollection
	Estilo  Estilo
	limites s2.Rect
}

func (p *Poligonos) Limites() s2.Rect {
	return p.limites
}

func (p *Poligonos) identificador() int {
	if p == nil {
		return 0
	}
	return p.id
}

type Lienzo struct {
	mu        sync.Mutex
	siguiente int
	capas     []Capa
	vista     s2.Rect
}

func NuevoLienzo() *Lienzo {
	return &Lienzo{vista: s2.EmptyRect()}
}

func (l *Lienzo) AgregarMarcador(posicion s2.LatLng, icono Icono, popup string, alClic func()) *Marcador {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.siguiente++
	m := &Marcador{id: l.siguiente, Posicion: posicion, Icono: icono, Popup: popup, alClic: alClic}
	l.capas = append(l.capas, m)
	return m
}

func (l *Lienzo) AgregarPoligonos(datos *geojson.FeatureCollection, estilo Estilo) *Poligonos {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.siguiente++
	p := &Poligonos{id: l.siguiente, Datos: datos, Estilo: estilo, limites: LimitesDeColeccion(datos)}
	l.capas = append(l.capas, p)
	return p
}

// Quitar retira la capa del lienzo. Quitar una capa que ya no está no hace nada.
func (l *Lienzo) Quitar(capa Capa) {
	if capa == nil || capa.identificador() == 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i, c := range l.capas {
		if c.identificador() == capa.identificador() {
			l.capas = append(l.capas[:i], l.capas[i+1:]...)
			return
		}
	}
}

// AjustarVista encuadra el mapa en los límites dados. Un rectángulo vacío se ignora.
func (l *Lienzo) AjustarVista(limites s2.Rect) {
	if limites.IsEmpty() {
		return
	}

	l.mu.Lock()
	l.vista = limites
	l.mu.Unlock()
}

func (l *Lienzo) Vista() s2.Rect {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.vista
}

func (l *Lienzo) Marcadores() []*Marcador {
	l.mu.Lock()
	defer l.mu.Unlock()

	marcadores := make([]*Marcador, 0, len(l.capas))
	for _, c := range l.capas {
		if m, ok := c.(*Marcador); ok {
			marcadores = append(marcadores, m)
		}
	}
	return marcadores
}

func (l *Lienzo) Poligonos() []*Poligonos {
	l.mu.Lock()
	defer l.mu.Unlock()

	poligonos := make([]*Poligonos, 0)
	for _, c := range l.capas {
		if p, ok := c.(*Poligonos); ok {
			poligonos = append(poligonos, p)
		}
	}
	return poligonos
}
