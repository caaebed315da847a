package mapa

import (
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LimitesDePuntos devuelve el rectángulo que contiene a todas las posiciones
func LimitesDePuntos(posiciones []s2.LatLng) s2.Rect {
	limites := s2.EmptyRect()
	for _, p := range posiciones {
		limites = limites.AddPoint(p)
	}
	return limites
}

// LimitesDeColeccion devuelve el rectángulo de todas las geometrías de la colección,
// vacío si no hay ninguna.
func LimitesDeColeccion(fc *geojson.FeatureCollection) s2.Rect {
	if fc == nil {
		return s2.EmptyRect()
	}

	var caja orb.Bound
	hay := false

	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}

		b := f.Geometry.Bound()
		if !hay {
			caja, hay = b, true
			continue
		}
		caja = caja.Union(b)
	}

	if !hay {
		return s2.EmptyRect()
	}

	return s2.RectFromLatLng(s2.LatLngFromDegrees(caja.Min.Lat(), caja.Min.Lon())).
		AddPoint(s2.LatLngFromDegrees(caja.Max.Lat(), caja.Max.Lon()))
}

// Esquinas devuelve [[sur, oeste], [norte, este]] en grados, el formato de fitBounds
func Esquinas(r s2.Rect) [2][2]float64 {
	return [2][2]float64{
		{r.Lo().Lat.Degrees(), r.Lo().Lng.Degrees()},
		{r.Hi().Lat.Degrees(), r.Hi().Lng.Degrees()},
	}
}
