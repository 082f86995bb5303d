package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ID identificador canónico de cualquier entidad.
// Los ids llegan como timestamps numéricos (altas locales antiguas) o como UUID de la base
// remota; se normalizan a texto en la frontera y toda comparación pasa por Equal.
type ID string

// IDFrom normaliza un valor de origen arbitrario (número, texto, json.Number) a ID.
func IDFrom(v any) ID {
	switch t := v.(type) {
	case nil:
		return ""
	case ID:
		return ID(strings.TrimSpace(string(t)))
	case string:
		return ID(strings.TrimSpace(t))
	case json.Number:
		return numberID(t.String())
	case int:
		return ID(strconv.Itoa(t))
	case int32:
		return ID(strconv.FormatInt(int64(t), 10))
	case int64:
		return ID(strconv.FormatInt(t, 10))
	case uint64:
		return ID(strconv.FormatUint(t, 10))
	case float64:
		return floatID(t)
	case float32:
		return floatID(float64(t))
	case fmt.Stringer:
		return ID(strings.TrimSpace(t.String()))
	default:
		return ID(strings.TrimSpace(fmt.Sprint(t)))
	}
}

func floatID(f float64) ID {
	if f == math.Trunc(f) && math.Abs(f) < 1e18 {
		return ID(strconv.FormatInt(int64(f), 10))
	}
	return ID(strconv.FormatFloat(f, 'f', -1, 64))
}

// numberID convierte la representación JSON de un número ("1.7e12", "42.0") a su forma entera si la tiene.
func numberID(s string) ID {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ID(s)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return floatID(f)
	}
	return ID(strings.TrimSpace(s))
}

// String implementa fmt.Stringer.
func (id ID) String() string { return string(id) }

// IsZero indica si el id está vacío.
func (id ID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

// Equal compara ids normalizados.
func (id ID) Equal(other ID) bool {
	return IDFrom(id) == IDFrom(other)
}

// UnmarshalJSON acepta tanto "42" como 42.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("id: %w", err)
		}
		*id = IDFrom(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = numberID(n.String())
	return nil
}
