package orbitkit

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func TestStreamStates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "states.csv")
	stateChan := make(chan []State, 16)
	done := make(chan error, 1)
	go StreamStates(ExportConfig{Filename: path}, stateChan, done)

	fleet := newQuietFleet(Earth)
	fleet.Add(leoConfig())
	for i := 0; i < 3; i++ {
		fleet.Tick(0.5)
		stateChan <- fleet.Snapshot()
	}
	close(stateChan)
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	// Header plus one row per satellite per tick.
	if len(rows) != 1+3 {
		t.Fatalf("wrote %d rows", len(rows))
	}
	if rows[0][0] != "t" || rows[0][2] != "name" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[1][2] != "leo" || rows[1][9] != "false" {
		t.Fatalf("unexpected first state row %v", rows[1])
	}
}

func TestStreamStatesUseless(t *testing.T) {
	stateChan := make(chan []State, 1)
	done := make(chan error, 1)
	go StreamStates(ExportConfig{}, stateChan, done)
	stateChan <- []State{}
	close(stateChan)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}
