package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// LoadPlanFile reads a plan from a .yaml/.yml or .json file.
func LoadPlanFile(path string) (BusinessPlanData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BusinessPlanData{}, fmt.Errorf("failed to read plan: %w", err)
	}
	plan, err := DecodePlan(data, filepath.Ext(path))
	if err != nil {
		return BusinessPlanData{}, fmt.Errorf("%s: %w", path, err)
	}
	return plan, nil
}

// DecodePlan decodes YAML when ext is .yaml or .yml, JSON otherwise.
func DecodePlan(data []byte, ext string) (BusinessPlanData, error) {
	var plan BusinessPlanData
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalStrict(data, &plan); err != nil {
			return BusinessPlanData{}, fmt.Errorf("invalid yaml plan: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&plan); err != nil {
			return BusinessPlanData{}, fmt.Errorf("invalid json plan: %w", err)
		}
	}
	return plan, nil
}
