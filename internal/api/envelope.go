package api

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/tiendalab/tienda-bff/internal/api/validation"
)

// Envelope wraps a successful upstream body.
type Envelope struct {
	Mensaje string          `json:"mensaje"`
	Datos   json.RawMessage `json:"datos"`
}

// ListEnvelope wraps a successful upstream collection. TotalKey names the
// count member, e.g. "total_productos"; members are emitted in the order
// mensaje, total, datos.
type ListEnvelope struct {
	Mensaje  string
	TotalKey string
	Total    int
	Datos    json.RawMessage
}

// MarshalJSON implements json.Marshaler.
func (e ListEnvelope) MarshalJSON() ([]byte, error) {
	mensaje, err := json.Marshal(e.Mensaje)
	if err != nil {
		return nil, err
	}
	key, err := json.Marshal(e.TotalKey)
	if err != nil {
		return nil, err
	}
	datos := e.Datos
	if len(datos) == 0 {
		datos = json.RawMessage("null")
	}

	var buf bytes.Buffer
	buf.WriteString(`{"mensaje":`)
	buf.Write(mensaje)
	buf.WriteByte(',')
	buf.Write(key)
	buf.WriteByte(':')
	buf.WriteString(strconv.Itoa(e.Total))
	buf.WriteString(`,"datos":`)
	buf.Write(datos)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ValidationEnvelope is returned with 422 when a request body fails its rules.
type ValidationEnvelope struct {
	Mensaje string            `json:"mensaje"`
	Errores validation.Errors `json:"errores"`
}

// LoginEnvelope wraps the upstream login reply, which carries the token.
type LoginEnvelope struct {
	Mensaje string          `json:"mensaje"`
	Token   json.RawMessage `json:"token"`
}
