// Package jsonHelpers decodifica JSON directo al tipo pedido.
package jsonHelpers

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// DeserializarJson decodifica un fragmento ya leído, como un json.RawMessage
func DeserializarJson[Destino any](datos []byte) (Destino, error) {
	var destino Destino
	if err := json.Unmarshal(datos, &destino); err != nil {
		return destino, errors.Wrapf(err, "JSON inválido para %T", destino)
	}
	return destino, nil
}

// DeserializarCuerpo lee un único documento JSON del lector, normalmente el cuerpo de una respuesta
func DeserializarCuerpo[Destino any](lector io.Reader) (Destino, error) {
	var destino Destino
	if err := json.NewDecoder(lector).Decode(&destino); err != nil {
		return destino, errors.Wrapf(err, "cuerpo JSON inválido para %T", destino)
	}
	return destino, nil
}
