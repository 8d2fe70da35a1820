package pricing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// NumericText is a calculator field decoded from JSON. It accepts a string or
// a number and keeps the text, so the value still goes through SanitizeText.
type NumericText string

// UnmarshalJSON implements json.Unmarshaler. null decodes to empty text.
func (t *NumericText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = NumericText(s)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("numeric field: %w", err)
	}
	*t = NumericText(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}
