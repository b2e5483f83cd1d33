package clients

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// FlexFloat decodes a number that providers send either as a JSON number or as
// a numeric string. null, "", missing and non-numeric strings leave it invalid
// so one bad field never fails the surrounding payload.
type FlexFloat struct {
	Value float64
	Valid bool
}

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = FlexFloat{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = FlexFloat{}
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			log.Debug().Str("value", s).Msg("ignoring non-numeric value")
			*f = FlexFloat{}
			return nil
		}
		*f = FlexFloat{Value: v, Valid: true}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexFloat{Value: v, Valid: true}
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Ptr returns nil when the value is absent
func (f FlexFloat) Ptr() *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}
