package vista

import "sync"

// Categoria agrupa las peticiones cuyo resultado se reemplaza entre sí
type Categoria int

const (
	CategoriaMunicipios Categoria = iota
	CategoriaEstaciones
	CategoriaBusqueda
	CategoriaCapas
)

func (c Categoria) String() string {
	switch c {
	case CategoriaMunicipios:
		return "municipios"
	case CategoriaEstaciones:
		return "estaciones"
	case CategoriaBusqueda:
		return "busqueda"
	case CategoriaCapas:
		return "capas"
	default:
		return "desconocida"
	}
}

// Secuenciador numera las peticiones por categoría. Solo la última emitida sigue vigente,
// así una respuesta lenta no pisa a una más nueva.
type Secuenciador struct {
	mu      sync.Mutex
	ultimos map[Categoria]uint64
}

func NuevoSecuenciador() *Secuenciador {
	return &Secuenciador{ultimos: make(map[Categoria]uint64)}
}

func (s *Secuenciador) Emitir(c Categoria) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ultimos[c]++
	return s.ultimos[c]
}

func (s *Secuenciador) Vigente(c Categoria, n uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ultimos[c] == n
}

// Invalidar deja obsoletas las peticiones en curso de las categorías dadas
func (s *Secuenciador) Invalidar(categorias ...Categoria) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range categorias {
		s.ultimos[c]++
	}
}
