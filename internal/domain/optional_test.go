package domain

import (
	"encoding/json"
	"testing"
)

func TestOptionalIDTriState(t *testing.T) {
	type patch struct {
		AprobadoPor OptionalID `json:"aprobado_por_id"`
	}

	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantValid   bool
		wantID      int64
	}{
		{"absent means unchanged", `{}`, false, false, 0},
		{"null clears the relation", `{"aprobado_por_id": null}`, true, false, 0},
		{"number sets the relation", `{"aprobado_por_id": 42}`, true, true, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p patch
			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if p.AprobadoPor.Present != tt.wantPresent {
				t.Errorf("Present = %v, want %v", p.AprobadoPor.Present, tt.wantPresent)
			}
			if p.AprobadoPor.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", p.AprobadoPor.Valid, tt.wantValid)
			}
			if p.AprobadoPor.ID != tt.wantID {
				t.Errorf("ID = %d, want %d", p.AprobadoPor.ID, tt.wantID)
			}
		})
	}
}

func TestOptionalIDHelpers(t *testing.T) {
	if !(OptionalID{}).Unchanged() {
		t.Error("zero value should report Unchanged")
	}
	if !(OptionalID{Present: true}).Clear() {
		t.Error("present without value should report Clear")
	}
	if (OptionalID{Present: true, Valid: true, ID: 7}).Clear() {
		t.Error("present with value should not report Clear")
	}
}

func TestOptionalIDRejectsNonNumeric(t *testing.T) {
	var o OptionalID
	if err := json.Unmarshal([]byte(`"abc"`), &o); err == nil {
		t.Error("expected error for non-numeric value")
	}
}

func TestOptionalIDMarshal(t *testing.T) {
	set, err := json.Marshal(OptionalID{Present: true, Valid: true, ID: 9})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(set) != "9" {
		t.Errorf("marshal set = %s, want 9", set)
	}

	cleared, err := json.Marshal(OptionalID{Present: true})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(cleared) != "null" {
		t.Errorf("marshal cleared = %s, want null", cleared)
	}
}
