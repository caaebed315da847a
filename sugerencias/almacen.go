// Package sugerencias guarda en SQLite las sugerencias enviadas desde el visor.
package sugerencias

import (
	"context"
	"database/sql"
	"strings"
	"time"
	"visor-estaciones/modelos"

	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

var ErrCamposVacios = errors.New("nombre y mensaje son obligatorios")

const esquema = `
	CREATE TABLE IF NOT EXISTS sugerencias (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nombre TEXT NOT NULL,
		mensaje TEXT NOT NULL,
		creada TIMESTAMP NOT NULL
	)
`

type Registro struct {
	ID      int64     `json:"id"`
	Nombre  string    `json:"nombre"`
	Mensaje string    `json:"mensaje"`
	Creada  time.Time `json:"creada"`
}

type Almacen struct {
	db  *sql.DB
	log *logger.Entry
}

// Abrir abre (o crea) la base en ruta y prepara la tabla
func Abrir(ruta string) (*Almacen, error) {
	db, err := sql.Open("sqlite", ruta)
	if err != nil {
		return nil, errors.Wrapf(err, "no se pudo abrir %s", ruta)
	}

	db.SetMaxOpenConns(1)

	pasos := []string{"PRAGMA journal_mode=WAL", esquema}
	for _, paso := range pasos {
		if _, err := db.Exec(paso); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "no se pudo preparar %s", ruta)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.WithStack(err)
	}

	a := &Almacen{db: db, log: logger.WithField("component", "sugerencias")}
	a.log.WithField("category", "db").Infof("Base de sugerencias lista: %s", ruta)
	return a, nil
}

func (a *Almacen) Guardar(ctx context.Context, s modelos.Sugerencia) (int64, error) {
	nombre, mensaje := strings.TrimSpace(s.Nombre), strings.TrimSpace(s.Mensaje)
	if nombre == "" || mensaje == "" {
		return 0, ErrCamposVacios
	}

	res, err := a.db.ExecContext(ctx,
		"INSERT INTO sugerencias (nombre, mensaje, creada) VALUES (?, ?, ?)",
		nombre, mensaje, time.Now().UTC())
	if err != nil {
		return 0, errors.Wrap(err, "no se pudo guardar la sugerencia")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.WithStack(err)
	}

	a.log.WithField("category", "db").Debugf("Sugerencia [%d] de [%s] guardada", id, nombre)
	return id, nil
}

// Listar devuelve las sugerencias de la más antigua a la más reciente
func (a *Almacen) Listar(ctx context.Context) ([]Registro, error) {
	filas, err := a.db.QueryContext(ctx, "SELECT id, nombre, mensaje, creada FROM sugerencias ORDER BY id")
	if err != nil {
		return nil, errors.Wrap(err, "no se pudieron leer las sugerencias")
	}
	defer filas.Close()

	registros := make([]Registro, 0)
	for filas.Next() {
		var r Registro
		if err := filas.Scan(&r.ID, &r.Nombre, &r.Mensaje, &r.Creada); err != nil {
			return nil, errors.WithStack(err)
		}
		registros = append(registros, r)
	}

	return registros, errors.WithStack(filas.Err())
}

func (a *Almacen) Cerrar() error {
	return a.db.Close()
}
