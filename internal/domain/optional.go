package domain

import "encoding/json"

// OptionalID is a tri-state update instruction for optional relation fields.
// A field absent from the JSON body means "leave unchanged", an explicit null
// means "clear the relation", and a number means "set to that id". This
// removes the ambiguity of 0/undefined sentinels in partial updates.
type OptionalID struct {
	Present bool
	Valid   bool
	ID      int64
}

func (o *OptionalID) UnmarshalJSON(b []byte) error {
	o.Present = true
	if string(b) == "null" {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(b, &o.ID); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o OptionalID) MarshalJSON() ([]byte, error) {
	if !o.Present || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.ID)
}

// Unchanged reports that the field was not part of the update.
func (o OptionalID) Unchanged() bool { return !o.Present }

// Clear reports that the caller asked to drop the relation.
func (o OptionalID) Clear() bool { return o.Present && !o.Valid }
