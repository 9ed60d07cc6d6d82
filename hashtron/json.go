package hashtron

import "encoding/json"

type view struct {
	Program [][2]uint32 `json:"program"`
	Bits    byte        `json:"bits"`
	Filter  []byte      `json:"filter,omitempty"`
}

// MarshalJSON serializes the hashtron program, bits and filter
func (h Hashtron) MarshalJSON() ([]byte, error) {
	return json.Marshal(view{
		Program: h.program,
		Bits:    h.bits,
		Filter:  h.filter,
	})
}

// UnmarshalJSON deserializes the hashtron program, bits and filter
func (h *Hashtron) UnmarshalJSON(b []byte) error {
	var v view
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	h.program = v.Program
	h.bits = v.Bits
	if h.bits == 0 {
		h.bits = 1
	}
	h.filter = v.Filter
	return nil
}
