package pubchem

// CompoundIDType unterscheidet die Varianten eines Compound-Eintrags
// innerhalb eines Substance-Datensatzes.
type CompoundIDType int

const (
	CompoundIDDeposited    CompoundIDType = 0
	CompoundIDStandardized CompoundIDType = 1
	CompoundIDComponent    CompoundIDType = 2
	CompoundIDNeutralized  CompoundIDType = 3
	CompoundIDMixture      CompoundIDType = 4
	CompoundIDTautomer     CompoundIDType = 5
	CompoundIDIonized      CompoundIDType = 6
	CompoundIDUnknown      CompoundIDType = 255
)

// BondType ist die Bindungsordnung einer Bond.
type BondType int

const (
	BondSingle    BondType = 1
	BondDouble    BondType = 2
	BondTriple    BondType = 3
	BondQuadruple BondType = 4
	BondDative    BondType = 5
	BondComplex   BondType = 6
	BondIonic     BondType = 7
	BondUnknown   BondType = 255
)

// String gibt die lesbare Bindungsordnung zurück.
func (b BondType) String() string {
	switch b {
	case BondSingle:
		return "single"
	case BondDouble:
		return "double"
	case BondTriple:
		return "triple"
	case BondQuadruple:
		return "quadruple"
	case BondDative:
		return "dative"
	case BondComplex:
		return "complex"
	case BondIonic:
		return "ionic"
	default:
		return "unknown"
	}
}

// CoordinateType kennzeichnet einen Koordinatenblock. Relevant für die
// 2D/3D-Unterscheidung sind die ersten beiden Werte; die übrigen sind
// Einheiten- und Herkunftsmarker des Dienstes.
type CoordinateType int

const (
	CoordinateTwoD            CoordinateType = 1
	CoordinateThreeD          CoordinateType = 2
	CoordinateSubmitted       CoordinateType = 3
	CoordinateExperimental    CoordinateType = 4
	CoordinateComputed        CoordinateType = 5
	CoordinateStandardized    CoordinateType = 6
	CoordinateAugmented       CoordinateType = 7
	CoordinateAligned         CoordinateType = 8
	CoordinateCompact         CoordinateType = 9
	CoordinateUnitsAngstroms  CoordinateType = 10
	CoordinateUnitsNanometers CoordinateType = 11
	CoordinateUnitsPixel      CoordinateType = 12
	CoordinateUnitsPoints     CoordinateType = 13
	CoordinateUnitsStdBonds   CoordinateType = 14
	CoordinateUnitsUnknown    CoordinateType = 255
)

// ProjectCategory ordnet ein Assay der Finanzierungs- bzw. Herkunftsart zu
// (MLSCN/MLPCN-Screening-Center, Literatur, Anbieter usw.).
type ProjectCategory int

const (
	ProjectMLSCN                ProjectCategory = 1
	ProjectMLPCN                ProjectCategory = 2
	ProjectMLSCNAssayProvider   ProjectCategory = 3
	ProjectMLPCNAssayProvider   ProjectCategory = 4
	ProjectJournalArticle       ProjectCategory = 5
	ProjectAssayVendor          ProjectCategory = 6
	ProjectLiteratureExtracted  ProjectCategory = 7
	ProjectLiteratureAuthor     ProjectCategory = 8
	ProjectLiteraturePublisher  ProjectCategory = 9
	ProjectRNAiGlobalInitiative ProjectCategory = 10
	ProjectOther                ProjectCategory = 255
)

// String gibt den Kategorienamen zurück, wie ihn der Dienst dokumentiert.
func (p ProjectCategory) String() string {
	switch p {
	case ProjectMLSCN:
		return "mlscn"
	case ProjectMLPCN:
		return "mlpcn"
	case ProjectMLSCNAssayProvider:
		return "mlscn-ap"
	case ProjectMLPCNAssayProvider:
		return "mlpcn-ap"
	case ProjectJournalArticle:
		return "journal-article"
	case ProjectAssayVendor:
		return "assay-vendor"
	case ProjectLiteratureExtracted:
		return "literature-extracted"
	case ProjectLiteratureAuthor:
		return "literature-author"
	case ProjectLiteraturePublisher:
		return "literature-publisher"
	case ProjectRNAiGlobalInitiative:
		return "rnaigi"
	default:
		return "other"
	}
}
