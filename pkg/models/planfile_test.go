package models

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestDecodePlan_YAML(t *testing.T) {
	src := []byte(`
project_title: Bakery
legal_structure: PP
equipments:
  - name: Oven
    unit_price_excl_tax: 8000
    quantity: 1
    vat_rate: 19
    depreciation_duration: 5
products:
  - name: Bread
    unit_price: 1.5
    annual_quantity: 40000
manual_overrides:
  2:
    turnover: 70000
`)
	plan, err := DecodePlan(src, ".yml")
	require.NoError(t, err)
	assert.Equal(t, "Bakery", plan.ProjectTitle)
	assert.Equal(t, LegalStructurePP, plan.LegalStructure)
	require.Len(t, plan.Equipments, 1)
	assert.Equal(t, 8000.0, plan.Equipments[0].ExclTaxValue())
	require.Contains(t, plan.ManualOverrides, 2)
	require.NotNil(t, plan.ManualOverrides[2].Turnover)
	assert.Equal(t, 70000.0, *plan.ManualOverrides[2].Turnover)
}

func TestDecodePlan_RejectsUnknownFields(t *testing.T) {
	_, err := DecodePlan([]byte(`{"project_title": "x", "turnover": 1}`), ".json")
	assert.Error(t, err)

	_, err = DecodePlan([]byte("project_title: x\nturnover: 1\n"), ".yaml")
	assert.Error(t, err)
}

func TestLoadPlanFile_DemoRoundTrip(t *testing.T) {
	dir := t.TempDir()
	demo := DemoPlan()

	js, err := json.Marshal(demo)
	require.NoError(t, err)
	jsonPath := filepath.Join(dir, "plan.json")
	require.NoError(t, os.WriteFile(jsonPath, js, 0o644))

	ys, err := yaml.Marshal(demo)
	require.NoError(t, err)
	yamlPath := filepath.Join(dir, "plan.yaml")
	require.NoError(t, os.WriteFile(yamlPath, ys, 0o644))

	fromJSON, err := LoadPlanFile(jsonPath)
	require.NoError(t, err)
	fromYAML, err := LoadPlanFile(yamlPath)
	require.NoError(t, err)

	assert.Equal(t, demo, fromJSON)
	assert.Equal(t, demo.Equipments, fromYAML.Equipments)
	assert.Equal(t, demo.Funding, fromYAML.Funding)
	assert.Equal(t, demo.Loan, fromYAML.Loan)
	assert.Equal(t, demo.Narrative, fromYAML.Narrative)

	_, err = LoadPlanFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
