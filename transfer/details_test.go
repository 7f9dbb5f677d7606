/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package transfer

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeFillsSlots(t *testing.T) {
	var d Details

	changed := d.Merge(Update{Amount: "100", Country: "Mexico"})
	if diff := cmp.Diff([]string{SlotAmount, SlotCountry}, changed); diff != "" {
		t.Errorf("changed slots (-want +got):\n%s", diff)
	}
	if d.Amount != "100" || d.Country != "Mexico" {
		t.Errorf("details: got = %+v, wanted amount=100 country=Mexico", d)
	}
}

func TestMergeCorrectionOverwrites(t *testing.T) {
	d := Details{Amount: "100"}

	changed := d.Merge(Update{Amount: "200"})
	if diff := cmp.Diff([]string{SlotAmount}, changed); diff != "" {
		t.Errorf("changed slots (-want +got):\n%s", diff)
	}
	if d.Amount != "200" {
		t.Errorf("amount after correction: got = %q, wanted = %q", d.Amount, "200")
	}
}

func TestMergeEmptyLeavesSlots(t *testing.T) {
	d := Details{Amount: "100", Beneficiary: "Maria"}

	changed := d.Merge(Update{})
	if len(changed) != 0 {
		t.Errorf("changed slots: got = %v, wanted = none", changed)
	}
	if d.Amount != "100" || d.Beneficiary != "Maria" {
		t.Errorf("details: got = %+v, wanted unchanged", d)
	}
}

func TestMergeSameValueNotChanged(t *testing.T) {
	d := Details{Amount: "100"}

	if changed := d.Merge(Update{Amount: "100"}); len(changed) != 0 {
		t.Errorf("changed slots: got = %v, wanted = none", changed)
	}
}

func TestMissingOrder(t *testing.T) {
	d := Details{Country: "Mexico"}

	want := []string{SlotAmount, SlotBeneficiary, SlotMethod}
	if diff := cmp.Diff(want, d.Missing()); diff != "" {
		t.Errorf("missing slots (-want +got):\n%s", diff)
	}
}

func TestComplete(t *testing.T) {
	d := Details{Amount: "100", Country: "Mexico", Beneficiary: "Maria", Method: "cash pickup"}
	if !d.Complete() {
		t.Error("complete: got = false, wanted = true")
	}

	d.Method = ""
	if d.Complete() {
		t.Error("complete with missing method: got = true, wanted = false")
	}
}

func TestRecorded(t *testing.T) {
	d := Details{Amount: "100", Country: "Mexico"}

	want := `RECORDED: amount="100", country="Mexico", beneficiary="", method=""`
	if got := d.Recorded(); got != want {
		t.Errorf("recorded: got = %q, wanted = %q", got, want)
	}
}

func TestSummary(t *testing.T) {
	d := Details{Amount: "100", Country: "Mexico", Beneficiary: "Maria", Method: "cash pickup"}

	out, err := d.Summary()
	if err != nil {
		t.Fatalf("summary: got = %v, wanted = nil", err)
	}

	var round Details
	if err := json.Unmarshal([]byte(out), &round); err != nil {
		t.Fatalf("unmarshal summary: got = %v, wanted = nil", err)
	}
	if diff := cmp.Diff(d, round); diff != "" {
		t.Errorf("summary round trip (-want +got):\n%s", diff)
	}
}
