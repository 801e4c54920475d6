package lnd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	MSAT_PER_SAT = 1000
)

// MilliSatoshi decodes both the plain number and the "<n>msat" string forms
// Core Lightning has used over time. Amounts built in code encode as "<n>msat".
type MilliSatoshi uint64

func (m MilliSatoshi) String() string {
	return strconv.FormatUint(uint64(m), 10) + "msat"
}

func (m MilliSatoshi) ToSatoshis() uint64 {
	return uint64(m) / MSAT_PER_SAT
}

func (m MilliSatoshi) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *MilliSatoshi) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSuffix(s, "msat")
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid millisatoshi amount %s: %w", string(data), err)
	}
	*m = MilliSatoshi(v)
	return nil
}
