package vista

import (
	"context"
	"visor-estaciones/filtros"
	"visor-estaciones/helpers"

	"github.com/pkg/errors"
)

// Seleccionar recorre la cascada como lo haría el usuario: estado, municipio, estación, tipo
// de dato y situación. Cada valor se acepta como valor o como texto de la opción.
func (c *Controlador) Seleccionar(ctx context.Context, s filtros.Seleccion) error {
	resolver := func(sel func() Selector, texto, nombre string) (string, error) {
		c.mu.Lock()
		valor, ok := sel().Resolver(texto)
		c.mu.Unlock()

		if !ok {
			return "", errors.Wrapf(ErrOpcionInvalida, "%s [%s]", nombre, texto)
		}
		return valor, nil
	}

	estado, err := resolver(func() Selector { return c.estado }, s.Estado, "estado")
	if err != nil {
		return err
	}
	if err := c.CambiarEstado(ctx, estado); err != nil {
		return err
	}

	municipio, err := resolver(func() Selector { return c.municipio }, helpers.ValorORespaldo(s.Municipio, helpers.Todos), "municipio")
	if err != nil {
		return err
	}
	if err := c.CambiarMunicipio(ctx, municipio); err != nil {
		return err
	}

	estacion, err := resolver(func() Selector { return c.estacion }, helpers.ValorORespaldo(s.Estacion, helpers.Todas), "estación")
	if err != nil {
		return err
	}
	if err := c.CambiarEstacion(estacion); err != nil {
		return err
	}

	tipo, err := resolver(func() Selector { return c.tipoDato }, s.TipoDato, "tipo de dato")
	if err != nil {
		return err
	}
	if err := c.CambiarTipoDato(tipo); err != nil {
		return err
	}

	situacion, err := resolver(func() Selector { return c.situacion }, helpers.ValorORespaldo(s.Situacion, helpers.Todas), "situación")
	if err != nil {
		return err
	}
	return c.CambiarSituacion(situacion)
}
