package patch_test

import (
	"encoding/json"
	"testing"

	"github.com/pitchside/pitchside/internal/app/system/patch"
)

type doc struct {
	Name        patch.Field[string]  `json:"name"`
	Description patch.Field[string]  `json:"description"`
	MaxSize     patch.Field[int]     `json:"max_size"`
	Radius      patch.Field[float64] `json:"radius"`
}

func TestField_AbsentNullValue(t *testing.T) {
	var d doc
	input := `{"name":"pickup game","description":null,"max_size":10}`
	if err := json.Unmarshal([]byte(input), &d); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	// Set to a value
	if v, ok := d.Name.Value(); !ok || v != "pickup game" {
		t.Errorf("Name = (%q, %v), want (\"pickup game\", true)", v, ok)
	}

	// Explicit null: present but no value
	if !d.Description.Present() {
		t.Error("Description should be present")
	}
	if !d.Description.IsNull() {
		t.Error("Description should be null")
	}
	if _, ok := d.Description.Value(); ok {
		t.Error("null Description should have no value")
	}

	// Set numeric
	if v, ok := d.MaxSize.Value(); !ok || v != 10 {
		t.Errorf("MaxSize = (%d, %v), want (10, true)", v, ok)
	}

	// Absent entirely
	if d.Radius.Present() {
		t.Error("Radius should be absent")
	}
	if d.Radius.IsNull() {
		t.Error("absent Radius is not null")
	}
}

func TestField_ZeroValueIsAbsent(t *testing.T) {
	var f patch.Field[string]
	if f.Present() || f.IsNull() {
		t.Error("zero Field must be absent")
	}
}

func TestField_Constructors(t *testing.T) {
	s := patch.Set(42)
	if v, ok := s.Value(); !ok || v != 42 {
		t.Errorf("Set(42).Value() = (%d, %v)", v, ok)
	}

	n := patch.Null[int]()
	if !n.Present() || !n.IsNull() {
		t.Error("Null[int]() must be present and null")
	}
}
