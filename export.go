package orbitkit

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// ExportConfig configures CSV streaming of fleet snapshots for an external
// renderer or plotter.
type ExportConfig struct {
	Filename string
}

// IsUseless returns whether this configuration would result in no output.
func (c ExportConfig) IsUseless() bool {
	return c.Filename == ""
}

// StreamStates consumes per-tick snapshots from the channel and writes one
// CSV row per satellite per tick until the channel is closed. It is meant to
// run in its own goroutine, fed by the fleet's driver:
//
//	stateChan := make(chan []orbitkit.State, 1000)
//	go orbitkit.StreamStates(conf, stateChan, done)
//	...
//	stateChan <- fleet.Snapshot()
//
// Any error is reported on done once the channel is drained.
func StreamStates(conf ExportConfig, stateChan <-chan []State, done chan<- error) {
	if conf.IsUseless() {
		for range stateChan {
		}
		done <- nil
		return
	}
	f, err := os.Create(conf.Filename)
	if err != nil {
		for range stateChan {
		}
		done <- err
		return
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err = w.Write([]string{"t", "index", "name", "x", "y", "z", "vx", "vy", "vz", "crashed", "status"}); err != nil {
		for range stateChan {
		}
		done <- err
		return
	}
	for states := range stateChan {
		for _, s := range states {
			row := []string{
				fmt.Sprintf("%f", s.T),
				strconv.Itoa(s.Index),
				s.Name,
				fmt.Sprintf("%f", s.R[0]), fmt.Sprintf("%f", s.R[1]), fmt.Sprintf("%f", s.R[2]),
				fmt.Sprintf("%f", s.V[0]), fmt.Sprintf("%f", s.V[1]), fmt.Sprintf("%f", s.V[2]),
				strconv.FormatBool(s.Crashed),
				s.Status,
			}
			if err = w.Write(row); err != nil {
				for range stateChan {
				}
				done <- err
				return
			}
		}
	}
	w.Flush()
	done <- w.Error()
}
