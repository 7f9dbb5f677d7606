/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

import (
	"testing"
)

func TestArgString(t *testing.T) {
	call := Call{ID: "tc1", Name: "update", Args: map[string]any{"amount": "100"}}

	got, errMap := Arg[string](call, "amount")
	if errMap != nil {
		t.Fatalf("arg error: got = %v, wanted = nil", errMap)
	}
	if got != "100" {
		t.Errorf("amount: got = %q, wanted = %q", got, "100")
	}
}

func TestArgMissing(t *testing.T) {
	call := Call{Args: map[string]any{}}

	_, errMap := Arg[string](call, "amount")
	if errMap == nil {
		t.Fatal("missing arg: got = nil, wanted = error map")
	}
	if _, ok := errMap["error"]; !ok {
		t.Errorf("error map: got = %v, wanted = map with error key", errMap)
	}
}

func TestArgNumericConversion(t *testing.T) {
	// Providers decode every JSON number as float64.
	call := Call{Args: map[string]any{"count": float64(3)}}

	got, errMap := Arg[int](call, "count")
	if errMap != nil {
		t.Fatalf("arg error: got = %v, wanted = nil", errMap)
	}
	if got != 3 {
		t.Errorf("count: got = %d, wanted = 3", got)
	}

	got64, errMap := Arg[int64](call, "count")
	if errMap != nil {
		t.Fatalf("arg error: got = %v, wanted = nil", errMap)
	}
	if got64 != 3 {
		t.Errorf("count as int64: got = %d, wanted = 3", got64)
	}
}

func TestArgWrongType(t *testing.T) {
	call := Call{Args: map[string]any{"amount": 100.0}}

	if _, errMap := Arg[string](call, "amount"); errMap == nil {
		t.Error("wrong type: got = nil, wanted = error map")
	}
}

func TestOptionalArg(t *testing.T) {
	call := Call{Args: map[string]any{"method": "cash pickup"}}

	got, errMap := OptionalArg(call, "method", "bank deposit")
	if errMap != nil {
		t.Fatalf("optional arg error: got = %v, wanted = nil", errMap)
	}
	if got != "cash pickup" {
		t.Errorf("method: got = %q, wanted = %q", got, "cash pickup")
	}

	got, errMap = OptionalArg(call, "absent", "bank deposit")
	if errMap != nil {
		t.Fatalf("optional arg error: got = %v, wanted = nil", errMap)
	}
	if got != "bank deposit" {
		t.Errorf("default: got = %q, wanted = %q", got, "bank deposit")
	}
}

func TestDefineReflectsSchema(t *testing.T) {
	type args struct {
		Amount  string `json:"amount,omitempty" jsonschema:"description=Amount to send"`
		Country string `json:"country,omitempty" jsonschema:"description=Destination country"`
	}

	def := Define[args]("update_transfer_details", "Saves transfer details.")
	if def.Name != "update_transfer_details" {
		t.Errorf("name: got = %q, wanted = %q", def.Name, "update_transfer_details")
	}
	if def.Input == nil {
		t.Fatal("input schema: got = nil, wanted = reflected schema")
	}
	if _, ok := def.Input.Properties.Get("amount"); !ok {
		t.Error("input schema: missing amount property")
	}
	if _, ok := def.Input.Properties.Get("country"); !ok {
		t.Error("input schema: missing country property")
	}
}

func TestMap(t *testing.T) {
	tools := []Tool{
		{Def: Definition{Name: "a"}},
		{Def: Definition{Name: "b"}},
	}

	m := Map(tools)
	if len(m) != 2 {
		t.Fatalf("map size: got = %d, wanted = 2", len(m))
	}
	if _, ok := m["a"]; !ok {
		t.Error("map: missing tool a")
	}
}
