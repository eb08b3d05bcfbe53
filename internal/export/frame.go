package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Frame is one rendered instant of a packet. Spectrum and Frequencies are
// optional but must match Positions in length when present.
type Frame struct {
	Law         string    `json:"law"`
	Components  int       `json:"components"`
	C           float64   `json:"c"`
	Seed        int64     `json:"seed"`
	Time        float64   `json:"time"`
	Positions   []float64 `json:"positions"`
	Wave        []float64 `json:"wave"`
	Frequencies []float64 `json:"frequencies,omitempty"`
	Spectrum    []float64 `json:"spectrum,omitempty"`
}

func (f *Frame) check() error {
	if len(f.Wave) != len(f.Positions) {
		return fmt.Errorf("export: %d samples for %d positions", len(f.Wave), len(f.Positions))
	}
	if f.Spectrum != nil && (len(f.Spectrum) != len(f.Wave) || len(f.Frequencies) != len(f.Spectrum)) {
		return fmt.Errorf("export: spectrum has %d bins and %d frequencies for %d samples", len(f.Spectrum), len(f.Frequencies), len(f.Wave))
	}
	return nil
}

func WriteJSON(w io.Writer, f *Frame) error {
	if err := f.check(); err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(f)
}

// WriteCSV writes one row per grid point: position and displacement, plus
// bin frequency and power when the frame carries a spectrum.
func WriteCSV(w io.Writer, f *Frame) error {
	if err := f.check(); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"x", "y"}
	if f.Spectrum != nil {
		header = append(header, "frequency", "power")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for i := range f.Positions {
		row := []string{format(f.Positions[i]), format(f.Wave[i])}
		if f.Spectrum != nil {
			row = append(row, format(f.Frequencies[i]), format(f.Spectrum[i]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
