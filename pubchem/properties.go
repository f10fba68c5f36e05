package pubchem

import (
	"math/big"
	"strconv"
	"strings"
)

// PropertyURN beschreibt einen Eintrag der Property-Liste eines Records.
// Die Tags disambiguieren, welche von mehreren Varianten einer Eigenschaft
// gemeint ist (z.B. SMILES "Connectivity" gegenüber "Absolute").
type PropertyURN struct {
	Label          string `json:"label,omitempty"`
	Name           string `json:"name,omitempty"`
	DataType       int    `json:"datatype,omitempty"`
	Implementation string `json:"implementation,omitempty"`
	Version        string `json:"version,omitempty"`
	Software       string `json:"software,omitempty"`
	Source         string `json:"source,omitempty"`
	Release        string `json:"release,omitempty"`
}

// PropertyValue ist der Variantentyp eines Property-Werts. Genau einer der
// Slots ist belegt.
type PropertyValue struct {
	SVal   *string  `json:"sval,omitempty"`
	FVal   *float64 `json:"fval,omitempty"`
	IVal   *int     `json:"ival,omitempty"`
	Binary *string  `json:"binary,omitempty"`
	SList  []string `json:"slist,omitempty"`
}

// Payload gibt den einzig belegten Slot zurück. Die Typkoersion bleibt
// Sache des Aufrufers.
func (v PropertyValue) Payload() (interface{}, bool) {
	switch {
	case v.SVal != nil:
		return *v.SVal, true
	case v.FVal != nil:
		return *v.FVal, true
	case v.IVal != nil:
		return *v.IVal, true
	case v.Binary != nil:
		return *v.Binary, true
	case v.SList != nil:
		return v.SList, true
	}
	return nil, false
}

// Property ist ein Eintrag der Property-Liste eines Roh-Datensatzes.
type Property struct {
	URN   PropertyURN   `json:"urn"`
	Value PropertyValue `json:"value"`
}

// PropertyFilter ist ein Suchfilter über URN-Tags. Leere Felder werden
// nicht verglichen; ein Eintrag passt, wenn seine URN-Tags eine Obermenge
// der gesetzten Filterfelder sind.
type PropertyFilter struct {
	Label          string
	Name           string
	Implementation string
}

// Matches prüft, ob die URN alle gesetzten Filterfelder exakt trägt.
func (f PropertyFilter) Matches(urn PropertyURN) bool {
	if f.Label != "" && urn.Label != f.Label {
		return false
	}
	if f.Name != "" && urn.Name != f.Name {
		return false
	}
	if f.Implementation != "" && urn.Implementation != f.Implementation {
		return false
	}
	return true
}

// FindProperty sucht den ersten Eintrag der Property-Liste, dessen URN zum
// Filter passt, und gibt dessen Wert zurück. Kein Treffer ist kein Fehler,
// sondern ein explizites Nicht-Vorhandensein; bei mehreren Treffern gewinnt
// der erste in Listenreihenfolge.
func FindProperty(filter PropertyFilter, props []Property) (PropertyValue, bool) {
	for _, p := range props {
		if filter.Matches(p.URN) {
			return p.Value, true
		}
	}
	return PropertyValue{}, false
}

// findString liefert den sval des ersten passenden Eintrags oder "".
func findString(filter PropertyFilter, props []Property) string {
	v, ok := FindProperty(filter, props)
	if !ok || v.SVal == nil {
		return ""
	}
	return *v.SVal
}

// parseFloatProp liefert den sval des ersten passenden Eintrags als Zahl.
// Der Dienst liefert Massen und Gewichte als Strings aus.
func parseFloatProp(filter PropertyFilter, props []Property) (float64, bool) {
	s := findString(filter, props)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// findFloat liefert den fval des ersten passenden Eintrags.
func findFloat(filter PropertyFilter, props []Property) (float64, bool) {
	v, ok := FindProperty(filter, props)
	if !ok || v.FVal == nil {
		return 0, false
	}
	return *v.FVal, true
}

// findInt liefert den ival des ersten passenden Eintrags.
func findInt(filter PropertyFilter, props []Property) (int, bool) {
	v, ok := FindProperty(filter, props)
	if !ok || v.IVal == nil {
		return 0, false
	}
	return *v.IVal, true
}

// CACTVSFingerprint dekodiert den rohen hex-kodierten Screening-Fingerprint
// in den 881-Bit-Binärstring der CACTVS-Substruktur-Schlüssel. Die ersten
// 4 Bytes (Längenpräfix) entfallen, die letzten 7 Füllbits der Byte-
// Ausrichtung werden verworfen, danach wird links auf exakt 881 Zeichen
// aufgefüllt. Die Transformation muss bitgenau bleiben, nachgelagerte
// Substruktur-/Ähnlichkeitswerkzeuge rechnen direkt auf diesem String.
func CACTVSFingerprint(rawHex string) (string, error) {
	if len(rawHex) <= 8 {
		return "", newParseError("fingerprint zu kurz: %q", rawHex)
	}
	n, ok := new(big.Int).SetString(rawHex[8:], 16)
	if !ok {
		return "", newParseError("fingerprint ist kein Hex-String: %q", rawHex)
	}
	bits := n.Text(2)
	if len(bits) < 20 {
		bits = strings.Repeat("0", 20-len(bits)) + bits
	}
	bits = bits[:len(bits)-7]
	if len(bits) < 881 {
		bits = strings.Repeat("0", 881-len(bits)) + bits
	}
	return bits, nil
}

// PropertyMap erlaubt, Eigenschaften für GetProperties wahlweise in
// underscore-Schreibweise anzugeben, konsistent zu den Compound-Accessoren.
var PropertyMap = map[string]string{
	"molecular_formula":            "MolecularFormula",
	"molecular_weight":             "MolecularWeight",
	"smiles":                       "SMILES",
	"connectivity_smiles":          "ConnectivitySMILES",
	"canonical_smiles":             "CanonicalSMILES",
	"isomeric_smiles":              "IsomericSMILES",
	"inchi":                        "InChI",
	"inchikey":                     "InChIKey",
	"iupac_name":                   "IUPACName",
	"xlogp":                        "XLogP",
	"exact_mass":                   "ExactMass",
	"monoisotopic_mass":            "MonoisotopicMass",
	"tpsa":                         "TPSA",
	"complexity":                   "Complexity",
	"charge":                       "Charge",
	"h_bond_donor_count":           "HBondDonorCount",
	"h_bond_acceptor_count":        "HBondAcceptorCount",
	"rotatable_bond_count":         "RotatableBondCount",
	"heavy_atom_count":             "HeavyAtomCount",
	"isotope_atom_count":           "IsotopeAtomCount",
	"atom_stereo_count":            "AtomStereoCount",
	"defined_atom_stereo_count":    "DefinedAtomStereoCount",
	"undefined_atom_stereo_count":  "UndefinedAtomStereoCount",
	"bond_stereo_count":            "BondStereoCount",
	"defined_bond_stereo_count":    "DefinedBondStereoCount",
	"undefined_bond_stereo_count":  "UndefinedBondStereoCount",
	"covalent_unit_count":          "CovalentUnitCount",
	"volume_3d":                    "Volume3D",
	"conformer_rmsd_3d":            "ConformerModelRMSD3D",
	"conformer_model_rmsd_3d":      "ConformerModelRMSD3D",
	"x_steric_quadrupole_3d":       "XStericQuadrupole3D",
	"y_steric_quadrupole_3d":       "YStericQuadrupole3D",
	"z_steric_quadrupole_3d":       "ZStericQuadrupole3D",
	"feature_count_3d":             "FeatureCount3D",
	"feature_acceptor_count_3d":    "FeatureAcceptorCount3D",
	"feature_donor_count_3d":       "FeatureDonorCount3D",
	"feature_anion_count_3d":       "FeatureAnionCount3D",
	"feature_cation_count_3d":      "FeatureCationCount3D",
	"feature_ring_count_3d":        "FeatureRingCount3D",
	"feature_hydrophobe_count_3d":  "FeatureHydrophobeCount3D",
	"effective_rotor_count_3d":     "EffectiveRotorCount3D",
	"conformer_count_3d":           "ConformerCount3D",
}
