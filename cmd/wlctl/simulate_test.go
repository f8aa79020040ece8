package main

import (
	"encoding/json"
	"testing"

	"github.com/joshuapare/wearkit/device"
)

func TestSimulate(t *testing.T) {
	resetTestFlags()
	seed = 3
	simWrites = 500

	res, err := simulate(device.NewMemory(512))
	if err != nil {
		t.Fatalf("simulate() error = %v", err)
	}
	if res.Completed != 500 || res.Exhausted {
		t.Fatalf("completed %d writes, exhausted=%v", res.Completed, res.Exhausted)
	}
	if len(res.Counts) != 512 {
		t.Fatalf("counts cover %d bytes, want 512", len(res.Counts))
	}
	if res.MaxWrites >= 200 {
		t.Errorf("hottest byte took %d writes; wear is not spreading", res.MaxWrites)
	}

	resetTestFlags()
	mode = "sequential"
	simWrites = 500
	fixed, err := simulate(device.NewMemory(512))
	if err != nil {
		t.Fatalf("simulate() error = %v", err)
	}
	if fixed.MaxWrites < res.MaxWrites {
		t.Errorf("sequential hottest byte %d < wear-leveled %d", fixed.MaxWrites, res.MaxWrites)
	}
}

func TestSimulate_Budget(t *testing.T) {
	resetTestFlags()
	seed = 3
	simWrites = 500
	maxWrites = 300

	res, err := simulate(device.NewMemory(512))
	if err != nil {
		t.Fatalf("simulate() error = %v", err)
	}
	if !res.Exhausted {
		t.Fatal("budget not reported as exhausted")
	}
	if res.Completed >= 500 || res.TotalWrites != 300 {
		t.Errorf("completed=%d total=%d", res.Completed, res.TotalWrites)
	}
}

func TestSimulateCommand(t *testing.T) {
	resetTestFlags()
	noColor = true
	simSize = 256
	simWrites = 100
	simWidth = 32

	output, err := captureOutput(t, runSimulate)
	if err != nil {
		t.Fatalf("runSimulate() error = %v", err)
	}
	assertContains(t, output, []string{"Wear simulation", "Writes: 100 of 100", "000000 │", "0000e0 │"})

	jsonOut = true
	output, err = captureOutput(t, runSimulate)
	if err != nil {
		t.Fatalf("runSimulate() error = %v", err)
	}
	var res map[string]interface{}
	if err := json.Unmarshal([]byte(output), &res); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, output)
	}
	if res["completed"] != float64(100) {
		t.Errorf("completed = %v", res["completed"])
	}
}

func TestRenderHeatMap(t *testing.T) {
	got := renderHeatMap([]uint32{0, 1, 2, 4, 3}, 0x10, 4, false)
	want := "000010 │·░▒█\n000014 │▓\n·░▒▓█ 0 … 4 writes\n"
	if got != want {
		t.Errorf("renderHeatMap() =\n%q\nwant\n%q", got, want)
	}

	if lvl := heatLevel(1, 1000); lvl != 1 {
		t.Errorf("heatLevel(1, 1000) = %d, want 1", lvl)
	}
	if lvl := heatLevel(0, 0); lvl != 0 {
		t.Errorf("heatLevel(0, 0) = %d, want 0", lvl)
	}
}
