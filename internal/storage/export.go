package storage

import (
	"encoding/json"
	"os"

	"github.com/halvard-os/rkcore/internal/dynamo"
)

type ExportData struct {
	Model      string             `json:"model"`
	Integrator string             `json:"integrator"`
	Controller string             `json:"controller"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	States     [][]float64        `json:"states"`
	Controls   [][]float64        `json:"controls"`
	Metrics    map[string]float64 `json:"metrics"`
}

func newExportData(model, integrator, controller string, dt, duration float64, result *dynamo.Result) ExportData {
	data := ExportData{
		Model:      model,
		Integrator: integrator,
		Controller: controller,
		Dt:         dt,
		Duration:   duration,
		Steps:      len(result.Times),
		Times:      result.Times,
		States:     make([][]float64, len(result.States)),
		Controls:   make([][]float64, len(result.Controls)),
		Metrics:    result.Metrics,
	}
	for i, s := range result.States {
		data.States[i] = s
	}
	for i, c := range result.Controls {
		data.Controls[i] = c
	}
	return data
}

func ExportJSON(path string, model, integrator, controller string, dt, duration float64, result *dynamo.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(newExportData(model, integrator, controller, dt, duration, result))
}

func ExportJSONStdout(model, integrator, controller string, dt, duration float64, result *dynamo.Result) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(newExportData(model, integrator, controller, dt, duration, result))
}
