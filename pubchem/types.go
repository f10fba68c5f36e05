package pubchem

import "encoding/json"

// Wire-Typen für die JSON-Antworten des PUG REST Dienstes. Die Strukturen
// bilden nur die tatsächlich konsumierten Teile der Datensätze ab; der
// restliche Inhalt eines Records bleibt über das jeweilige Roh-Struct als
// Quelle der Wahrheit erhalten.

// CompoundRecordID trägt die CID eines Compound-Eintrags. In Substance-
// Datensätzen kommt zusätzlich der Typ (deposited/standardized/...) hinzu.
type CompoundRecordID struct {
	Type CompoundIDType `json:"type,omitempty"`
	ID   struct {
		CID *int `json:"cid,omitempty"`
	} `json:"id"`
}

// AtomBlock enthält die Parallel-Arrays der Atom-IDs und Ordnungszahlen
// sowie optionale Formalladungen.
type AtomBlock struct {
	AID     []int `json:"aid"`
	Element []int `json:"element"`
	Charge  []struct {
		AID   int `json:"aid"`
		Value int `json:"value"`
	} `json:"charge,omitempty"`
}

// BondBlock enthält die Parallel-Arrays der Bindungsendpunkte und -ordnung.
type BondBlock struct {
	AID1  []int      `json:"aid1"`
	AID2  []int      `json:"aid2"`
	Order []BondType `json:"order"`
}

// StyleBlock annotiert Bindungen eines 2D-Conformers mit Darstellungs-Stilen.
type StyleBlock struct {
	Annotation []int `json:"annotation"`
	AID1       []int `json:"aid1"`
	AID2       []int `json:"aid2"`
}

// Conformer ist ein Koordinatensatz innerhalb eines CoordBlock.
type Conformer struct {
	X     []float64   `json:"x"`
	Y     []float64   `json:"y"`
	Z     []float64   `json:"z,omitempty"`
	Style *StyleBlock `json:"style,omitempty"`
	Data  []Property  `json:"data,omitempty"`
}

// CoordBlock ist ein Koordinatenblock mit Typ-Markern und Conformern.
type CoordBlock struct {
	Type       []CoordinateType `json:"type"`
	AID        []int            `json:"aid"`
	Conformers []Conformer      `json:"conformers"`
	Data       []Property       `json:"data,omitempty"`
}

// CountBlock enthält die vorkalkulierten Zähl-Eigenschaften eines Compounds.
type CountBlock struct {
	HeavyAtom       *int `json:"heavy_atom,omitempty"`
	IsotopeAtom     *int `json:"isotope_atom,omitempty"`
	AtomChiral      *int `json:"atom_chiral,omitempty"`
	AtomChiralDef   *int `json:"atom_chiral_def,omitempty"`
	AtomChiralUndef *int `json:"atom_chiral_undef,omitempty"`
	BondChiral      *int `json:"bond_chiral,omitempty"`
	BondChiralDef   *int `json:"bond_chiral_def,omitempty"`
	BondChiralUndef *int `json:"bond_chiral_undef,omitempty"`
	CovalentUnit    *int `json:"covalent_unit,omitempty"`
}

// CompoundRecord ist der Roh-Datensatz eines Compounds.
type CompoundRecord struct {
	ID     CompoundRecordID `json:"id"`
	Atoms  *AtomBlock       `json:"atoms,omitempty"`
	Bonds  *BondBlock       `json:"bonds,omitempty"`
	Coords []CoordBlock     `json:"coords,omitempty"`
	Charge *int             `json:"charge,omitempty"`
	Props  []Property       `json:"props,omitempty"`
	Count  *CountBlock      `json:"count,omitempty"`
}

// SubstanceRecord ist der Roh-Datensatz einer Substance.
type SubstanceRecord struct {
	SID struct {
		ID int `json:"id"`
	} `json:"sid"`
	Source struct {
		DB struct {
			Name     string `json:"name"`
			SourceID struct {
				Str string `json:"str"`
			} `json:"source_id"`
		} `json:"db"`
	} `json:"source"`
	Synonyms []string         `json:"synonyms,omitempty"`
	Compound []CompoundRecord `json:"compound,omitempty"`
}

// AssayResult beschreibt eine Ergebnis-Spalte eines Assays.
type AssayResult struct {
	TID         int      `json:"tid"`
	Name        string   `json:"name"`
	Description []string `json:"description,omitempty"`
	Type        int      `json:"type,omitempty"`
	Unit        int      `json:"unit,omitempty"`
}

// AssayTarget beschreibt ein Zielmolekül eines Assays.
type AssayTarget struct {
	Name         string `json:"name"`
	MolID        int    `json:"mol_id,omitempty"`
	MoleculeType int    `json:"molecule_type,omitempty"`
	Organism     string `json:"organism,omitempty"`
}

// AssayDescription ist der Beschreibungsteil eines Assay-Datensatzes.
type AssayDescription struct {
	AID struct {
		ID      int `json:"id"`
		Version int `json:"version"`
	} `json:"aid"`
	Name            string           `json:"name"`
	Description     []string         `json:"description,omitempty"`
	Comment         []string         `json:"comment,omitempty"`
	ProjectCategory *ProjectCategory `json:"project_category,omitempty"`
	Results         []AssayResult    `json:"results,omitempty"`
	Target          []AssayTarget    `json:"target,omitempty"`
	Revision        int              `json:"revision,omitempty"`
}

// AssayRecord ist der Roh-Datensatz eines Assays.
type AssayRecord struct {
	Assay struct {
		Descr AssayDescription `json:"descr"`
	} `json:"assay"`
}

// IDList dekodiert ein Identifier-Feld, das der Dienst je nach Endpunkt
// wahlweise als Skalar oder als Array liefert.
type IDList []int

// UnmarshalJSON akzeptiert sowohl einen einzelnen Integer als auch eine Liste.
func (l *IDList) UnmarshalJSON(data []byte) error {
	var many []int
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one int
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = []int{one}
	return nil
}

// Information ist ein Eintrag aus InformationList-Antworten (Synonyme,
// verknüpfte SIDs/AIDs/CIDs, Quellennamen).
type Information struct {
	CID        IDList   `json:"CID,omitempty"`
	SID        IDList   `json:"SID,omitempty"`
	AID        IDList   `json:"AID,omitempty"`
	Synonym    []string `json:"Synonym,omitempty"`
	SourceName string   `json:"SourceName,omitempty"`
}

// Envelope-Formen der Dienst-Antworten.
type compoundsEnvelope struct {
	PCCompounds []CompoundRecord `json:"PC_Compounds"`
}

type substancesEnvelope struct {
	PCSubstances []SubstanceRecord `json:"PC_Substances"`
}

type assaysEnvelope struct {
	PCAssayContainer []AssayRecord `json:"PC_AssayContainer"`
}

type propertyTableEnvelope struct {
	PropertyTable struct {
		Properties []map[string]json.RawMessage `json:"Properties"`
	} `json:"PropertyTable"`
}

type informationListEnvelope struct {
	InformationList struct {
		Information []Information `json:"Information"`
		SourceName  []string      `json:"SourceName"`
	} `json:"InformationList"`
}

type identifierListEnvelope struct {
	IdentifierList struct {
		CID []int `json:"CID"`
		SID []int `json:"SID"`
		AID []int `json:"AID"`
	} `json:"IdentifierList"`
}

type waitingEnvelope struct {
	Waiting struct {
		ListKey string `json:"ListKey"`
	} `json:"Waiting"`
}
