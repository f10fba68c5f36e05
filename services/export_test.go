package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chem-hand/pubchem"
)

func TestWriteCSV(t *testing.T) {
	rows := []map[string]interface{}{
		{"cid": 2244, "molecular_formula": "C9H8O4", "xlogp": 1.2},
		{"cid": 702, "iupac_name": "ethanol"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	// ID-Spalte steht vorn, der Rest alphabetisch; fehlende Werte bleiben leer.
	assert.Equal(t, []string{"cid", "iupac_name", "molecular_formula", "xlogp"}, records[0])
	assert.Equal(t, []string{"2244", "", "C9H8O4", "1.2"}, records[1])
	assert.Equal(t, []string{"702", "ethanol", "", ""}, records[2])
}

func TestWriteCSVListValues(t *testing.T) {
	rows := []map[string]interface{}{
		{"sid": 1, "synonyms": []string{"aspirin", "ASS"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"sid", "synonyms"}, records[0])
	assert.Equal(t, []string{"1", "aspirin|ASS"}, records[1])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Zero(t, buf.Len())
}

func TestWriteCompoundsCSVForcesCIDColumn(t *testing.T) {
	var record pubchem.CompoundRecord
	raw := `{"id":{"id":{"cid":702}},"props":[{"urn":{"label":"Molecular Formula"},"value":{"sval":"C2H6O"}}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &record))
	compound, err := pubchem.NewCompound(record)
	require.NoError(t, err)

	// cid wird auch dann ausgegeben, wenn es nicht angefragt wurde.
	var buf bytes.Buffer
	require.NoError(t, WriteCompoundsCSV(&buf, []*pubchem.Compound{compound}, "molecular_formula"))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"cid", "molecular_formula"}, records[0])
	assert.Equal(t, []string{"702", "C2H6O"}, records[1])
}

func TestWriteSubstancesCSVForcesSIDColumn(t *testing.T) {
	var record pubchem.SubstanceRecord
	raw := `{"sid":{"id":24864499},"source":{"db":{"name":"DTP.NCI","source_id":{"str":"761524"}}},"synonyms":["aspirin"]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &record))
	substance := pubchem.NewSubstance(record)

	var buf bytes.Buffer
	require.NoError(t, WriteSubstancesCSV(&buf, []*pubchem.Substance{substance}, "source_name"))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"sid", "source_name"}, records[0])
	assert.Equal(t, []string{"24864499", "DTP.NCI"}, records[1])
}
