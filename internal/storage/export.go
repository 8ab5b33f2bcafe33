package storage

import (
	"encoding/json"
	"io"

	"github.com/go-gl/mathgl/mgl64"
)

type ExportData struct {
	Run     RunMetadata          `json:"run"`
	Times   []float64            `json:"times"`
	Frames  [][]mgl64.Vec3       `json:"frames"`
	History map[string][]float64 `json:"history"`
}

// ExportJSON writes a stored run, metadata, frames and metric history, as a
// single indented JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, times, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}
	history, _, err := s.LoadHistory(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{
		Run:     *meta,
		Times:   times,
		Frames:  frames,
		History: history,
	})
}
