package mapa

import (
	"bytes"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

type Campo struct {
	Nombre string
	Valor  string
	Clase  string
}

// Panel es un recuadro lateral de la página: estadísticas, ficha de la estación, etc.
type Panel struct {
	Titulo string
	Campos []Campo
	Lista  []string
	Nota   string
}

type Pagina struct {
	Titulo  string
	Paneles []Panel
}

type marcadorJS struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Icono string  `json:"icono"`
	Popup string  `json:"popup"`
}

type capaJS struct {
	Datos  *geojson.FeatureCollection `json:"datos"`
	Estilo Estilo                     `json:"estilo"`
}

type datosJS struct {
	Centro     [2]float64     `json:"centro"`
	Zoom       int            `json:"zoom"`
	Limites    *[2][2]float64 `json:"limites"`
	Marcadores []marcadorJS   `json:"marcadores"`
	Capas      []capaJS       `json:"capas"`
}

var plantilla = template.Must(template.New("mapa").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
   <meta charset="UTF-8"/>
   <title>{{ .Titulo }}</title>
   <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"/>
   <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
   <style>
      body { font-family: Arial, sans-serif; margin: 0; display: flex; height: 100vh; }
      #map { flex: 1; }
      aside { width: 320px; overflow-y: auto; padding: 10px; background: #f7f7f7; }
      .panel { background: #fff; border: 1px solid #ddd; border-radius: 5px; padding: 10px; margin-bottom: 10px; }
      .bg-success { color: #fff; background: #198754; padding: 2px 6px; border-radius: 4px; }
      .bg-danger { color: #fff; background: #dc3545; padding: 2px 6px; border-radius: 4px; }
      .text-muted { color: #888; }
   </style>
</head>
<body>
   <aside>
      <h3>{{ .Titulo }}</h3>
      {{ range .Paneles }}
      <div class="panel">
         <h4>{{ .Titulo }}</h4>
         {{ range .Campos }}
            <p><strong>{{ .Nombre }}:</strong> {{ if .Clase }}<span class="{{ .Clase }}">{{ .Valor }}</span>{{ else }}{{ .Valor }}{{ end }}</p>
         {{ end }}
         {{ if .Lista }}<ul>{{ range .Lista }}<li>{{ . }}</li>{{ end }}</ul>{{ end }}
         {{ if .Nota }}<p class="text-muted">{{ .Nota }}</p>{{ end }}
      </div>
      {{ end }}
      <small class="text-muted">Generado: {{ .Generado }}</small>
   </aside>
   <div id="map"></div>
   <script>
      const datos = {{ .Datos }};
      const map = L.map("map").setView(datos.centro, datos.zoom);
      L.tileLayer("https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png", {
         attribution: '&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors',
      }).addTo(map);

      datos.capas.forEach((c) => {
         L.geoJSON(c.datos, {
            style: c.estilo,
            onEachFeature: (f, l) => {
               const nombre = (f.properties && f.properties.NOMGEO) || "(sin nombre)";
               l.bindPopup("<b>" + nombre + "</b>");
            },
         }).addTo(map);
      });

      datos.marcadores.forEach((m) => {
         const icon = L.icon({ iconUrl: m.icono, iconSize: [32, 32], iconAnchor: [16, 32], popupAnchor: [0, -32] });
         L.marker([m.lat, m.lon], { icon }).addTo(map).bindPopup(m.popup);
      });

      if (datos.limites) {
         map.fitBounds(datos.limites);
      }
   </script>
</body>
</html>
`))

// EscribirHTML escribe la página con las capas vivas del lienzo y los paneles dados
func (l *Lienzo) EscribirHTML(w io.Writer, p Pagina) error {
	datos := datosJS{
		Centro:     [2]float64{CentroInicial.Lat.Degrees(), CentroInicial.Lng.Degrees()},
		Zoom:       ZoomInicial,
		Marcadores: make([]marcadorJS, 0),
		Capas:      make([]capaJS, 0),
	}

	for _, m := range l.Marcadores() {
		datos.Marcadores = append(datos.Marcadores, marcadorJS{
			Lat:   m.Posicion.Lat.Degrees(),
			Lon:   m.Posicion.Lng.Degrees(),
			Icono: m.Icono.URL(),
			Popup: m.Popup,
		})
	}

	for _, c := range l.Poligonos() {
		datos.Capas = append(datos.Capas, capaJS{Datos: c.Datos, Estilo: c.Estilo})
	}

	if vista := l.Vista(); !vista.IsEmpty() {
		esquinas := Esquinas(vista)
		datos.Limites = &esquinas
	}

	err := plantilla.Execute(w, struct {
		Pagina
		Generado string
		Datos    datosJS
	}{
		Pagina:   p,
		Generado: time.Now().Format("02/01/2006 15:04:05"),
		Datos:    datos,
	})

	return errors.Wrap(err, "no se pudo generar el HTML del mapa")
}

func (l *Lienzo) GuardarHTML(ruta string, p Pagina) error {
	var buf bytes.Buffer

	if err := l.EscribirHTML(&buf, p); err != nil {
		return err
	}

	return errors.WithStack(os.WriteFile(ruta, buf.Bytes(), 0644))
}
