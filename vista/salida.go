package vista

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/MisterKaiou/go-functional/result"
	"github.com/MisterKaiou/go-functional/unit"
	logger "github.com/sirupsen/logrus"
)

// NotificadorLog muestra alertas y avisos en el log y guarda el último de cada uno
type NotificadorLog struct {
	log *logger.Entry

	mu      sync.Mutex
	alertas []string
	avisos  []Aviso
}

func NuevoNotificadorLog() *NotificadorLog {
	return &NotificadorLog{log: logger.WithField("component", "avisos")}
}

func (n *NotificadorLog) Alerta(mensaje string) {
	n.mu.Lock()
	n.alertas = append(n.alertas, mensaje)
	n.mu.Unlock()

	n.log.WithField("category", "alerta").Warn(mensaje)
}

func (n *NotificadorLog) Aviso(a Aviso) {
	n.mu.Lock()
	n.avisos = append(n.avisos, a)
	n.mu.Unlock()

	if a == AvisoError {
		n.log.WithField("category", "aviso").Error(a)
		return
	}
	n.log.WithField("category", "aviso").Info(a)
}

func (n *NotificadorLog) Alertas() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.alertas...)
}

func (n *NotificadorLog) Avisos() []Aviso {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Aviso(nil), n.avisos...)
}

// Directorio guarda los archivos descargados en una carpeta, reemplazando los que ya existan
type Directorio struct {
	Ruta string
}

func (d Directorio) Guardar(nombre string, contenido []byte) error {
	destino := filepath.Join(d.Ruta, filepath.Base(nombre))

	res := result.FromTupleOf(unit.Unit{}, os.RemoveAll(destino))
	res = result.Bind(res, func(u unit.Unit) result.Of[unit.Unit] {
		return result.FromTupleOf(u, os.MkdirAll(d.Ruta, 0750))
	})
	res = result.Bind(res, func(u unit.Unit) result.Of[unit.Unit] {
		return result.FromTupleOf(u, os.WriteFile(destino, contenido, 0666))
	})

	if res.IsError() {
		return res.UnwrapError()
	}

	logger.WithField("component", "archivos").Infof("Archivo guardado en %s", destino)
	return nil
}
