package pubchem

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ethanolRecord ist ein minimaler, aber vollständiger 2D-Datensatz mit
// drei Schweratomen und zwei Bindungen (C-C-O).
const ethanolRecord = `{
	"id": {"id": {"cid": 702}},
	"atoms": {
		"aid": [1, 2, 3],
		"element": [8, 6, 6],
		"charge": [{"aid": 1, "value": -1}]
	},
	"bonds": {
		"aid1": [1, 2],
		"aid2": [2, 3],
		"order": [1, 1]
	},
	"coords": [{
		"type": [1, 5, 255],
		"aid": [1, 2, 3],
		"conformers": [{
			"x": [2.5369, 3.4030, 4.2690],
			"y": [0.25, -0.25, 0.25],
			"style": {"annotation": [3], "aid1": [2], "aid2": [1]}
		}]
	}],
	"charge": -1,
	"props": [
		{"urn": {"label": "Molecular Formula"}, "value": {"sval": "C2H6O"}},
		{"urn": {"label": "Molecular Weight"}, "value": {"sval": "46.07"}},
		{"urn": {"label": "SMILES", "name": "Absolute"}, "value": {"sval": "CCO"}},
		{"urn": {"label": "SMILES", "name": "Connectivity"}, "value": {"sval": "CCO"}},
		{"urn": {"label": "IUPAC Name", "name": "Preferred"}, "value": {"sval": "ethanol"}},
		{"urn": {"label": "Log P"}, "value": {"fval": -0.3}},
		{"urn": {"implementation": "E_NHDONORS"}, "value": {"ival": 1}}
	],
	"count": {"heavy_atom": 3, "covalent_unit": 1}
}`

func parseTestCompound(t *testing.T, raw string) *Compound {
	t.Helper()
	var record CompoundRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &record))
	compound, err := newCompound(record, nil)
	require.NoError(t, err)
	return compound
}

func TestCompoundBondsDeterministic(t *testing.T) {
	// Zweimal aus demselben Record geparst muss denselben Graphen liefern.
	first := parseTestCompound(t, ethanolRecord)
	second := parseTestCompound(t, ethanolRecord)

	assert.Equal(t, first.Atoms(), second.Atoms())
	assert.Equal(t, first.Bonds(), second.Bonds())
}

func TestCompoundParsesAtomsAndBonds(t *testing.T) {
	compound := parseTestCompound(t, ethanolRecord)

	cid, ok := compound.CID()
	require.True(t, ok)
	assert.Equal(t, 702, cid)

	atoms := compound.Atoms()
	require.Len(t, atoms, 3)
	assert.Equal(t, []string{"O", "C", "C"}, compound.Elements())
	assert.Equal(t, -1, atoms[0].Charge)
	assert.Equal(t, 0, atoms[1].Charge)

	require.NotNil(t, atoms[0].X)
	assert.InDelta(t, 2.5369, *atoms[0].X, 1e-9)
	assert.Nil(t, atoms[0].Z)
	assert.Equal(t, "2d", compound.CoordinateTypeLabel())

	bonds := compound.Bonds()
	require.Len(t, bonds, 2)
	assert.Equal(t, 1, bonds[0].AID1)
	assert.Equal(t, 2, bonds[0].AID2)
	assert.Equal(t, BondSingle, bonds[0].Order)
}

func TestCompoundBondStyleAttachesUnordered(t *testing.T) {
	// Der Style-Eintrag referenziert das Paar (2,1), die Bindung ist als
	// (1,2) hinterlegt. Der ungeordnete Schlüssel muss beide verbinden.
	compound := parseTestCompound(t, ethanolRecord)

	bonds := compound.Bonds()
	require.Len(t, bonds, 2)
	assert.Equal(t, 3, bonds[0].Style)
	assert.Equal(t, 0, bonds[1].Style)
}

func TestCompoundDuplicateBondOverwrites(t *testing.T) {
	raw := `{
		"id": {"id": {"cid": 1}},
		"atoms": {"aid": [1, 2], "element": [6, 8]},
		"bonds": {"aid1": [1, 2], "aid2": [2, 1], "order": [1, 2]}
	}`
	compound := parseTestCompound(t, raw)

	bonds := compound.Bonds()
	require.Len(t, bonds, 1)
	assert.Equal(t, BondDouble, bonds[0].Order)
}

func TestCompoundScalarAccessors(t *testing.T) {
	compound := parseTestCompound(t, ethanolRecord)

	assert.Equal(t, "C2H6O", compound.MolecularFormula())
	mw, ok := compound.MolecularWeight()
	require.True(t, ok)
	assert.InDelta(t, 46.07, mw, 1e-9)

	assert.Equal(t, "ethanol", compound.IUPACName())
	xlogp, ok := compound.XLogP()
	require.True(t, ok)
	assert.InDelta(t, -0.3, xlogp, 1e-9)

	donors, ok := compound.HBondDonorCount()
	require.True(t, ok)
	assert.Equal(t, 1, donors)

	// Nicht vorhandene Werte melden ihre Abwesenheit statt eines Defaults.
	_, ok = compound.TPSA()
	assert.False(t, ok)
	assert.Empty(t, compound.InChI())

	assert.Equal(t, -1, compound.Charge())
	heavy, ok := compound.HeavyAtomCount()
	require.True(t, ok)
	assert.Equal(t, 3, heavy)
	_, ok = compound.IsotopeAtomCount()
	assert.False(t, ok)
}

func TestCompoundParseErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "atomblock mit ungleichen Längen",
			raw:  `{"atoms": {"aid": [1, 2], "element": [6]}}`,
		},
		{
			name: "bondblock mit ungleichen Längen",
			raw: `{"atoms": {"aid": [1, 2], "element": [6, 8]},
				"bonds": {"aid1": [1], "aid2": [2], "order": [1, 1]}}`,
		},
		{
			name: "koordinaten passen nicht zur Atomzahl",
			raw: `{"atoms": {"aid": [1, 2], "element": [6, 8]},
				"coords": [{"type": [1], "aid": [1, 2], "conformers": [{"x": [0.0], "y": [0.0, 1.0]}]}]}`,
		},
		{
			name: "z-Liste zu kurz",
			raw: `{"atoms": {"aid": [1, 2], "element": [6, 8]},
				"coords": [{"type": [2], "aid": [1, 2], "conformers": [{"x": [0.0, 1.0], "y": [0.0, 1.0], "z": [0.0]}]}]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var record CompoundRecord
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &record))
			_, err := newCompound(record, nil)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestCompound3DRecord(t *testing.T) {
	raw := `{
		"id": {"id": {"cid": 702}},
		"atoms": {"aid": [1, 2], "element": [8, 6]},
		"coords": [{
			"type": [2],
			"aid": [1, 2],
			"conformers": [{
				"x": [0.0, 1.4],
				"y": [0.0, 0.0],
				"z": [0.5, -0.5],
				"data": [
					{"urn": {"label": "Shape", "name": "Volume"}, "value": {"fval": 31.2}},
					{"urn": {"label": "Conformer", "name": "ID"}, "value": {"sval": "000002BE00000001"}}
				]
			}],
			"data": [
				{"urn": {"label": "Conformer", "name": "RMSD"}, "value": {"fval": 0.4}}
			]
		}]
	}`
	compound := parseTestCompound(t, raw)

	assert.Equal(t, "3d", compound.CoordinateTypeLabel())
	atoms := compound.Atoms()
	require.NotNil(t, atoms[0].Z)
	assert.InDelta(t, 0.5, *atoms[0].Z, 1e-9)
	assert.Equal(t, "3d", atoms[0].CoordinateType())

	volume, ok := compound.Volume3D()
	require.True(t, ok)
	assert.InDelta(t, 31.2, volume, 1e-9)
	assert.Equal(t, "000002BE00000001", compound.ConformerID3D())
	rmsd, ok := compound.ConformerRMSD3D()
	require.True(t, ok)
	assert.InDelta(t, 0.4, rmsd, 1e-9)
}

func TestCompoundToMap(t *testing.T) {
	compound := parseTestCompound(t, ethanolRecord)

	data := compound.ToMap()
	assert.Equal(t, 702, data["cid"])
	assert.Equal(t, "C2H6O", data["molecular_formula"])
	assert.Equal(t, -1, data["charge"])
	// Nicht vorhandene Eigenschaften tauchen gar nicht erst auf.
	_, ok := data["tpsa"]
	assert.False(t, ok)

	subset := compound.ToMap("cid", "iupac_name")
	assert.Len(t, subset, 2)
	assert.Equal(t, "ethanol", subset["iupac_name"])
}

func TestCompoundWithoutAtomsOrCID(t *testing.T) {
	compound := parseTestCompound(t, `{"id": {"id": {}}}`)

	_, ok := compound.CID()
	assert.False(t, ok)
	assert.Empty(t, compound.Atoms())
	assert.Empty(t, compound.Bonds())
	assert.Equal(t, "", compound.CoordinateTypeLabel())
}
