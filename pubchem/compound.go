package pubchem

import (
	"context"
	"sort"
	"strconv"
	"sync"
)

// Compound ist die geparste Sicht auf einen vollständigen Compound-
// Datensatz. Atome und Bindungen sind aus den Parallel-Arrays des
// Roh-Datensatzes aufgelöst; skalare Eigenschaften werden bei Zugriff
// aus der Property-Liste gesucht. Verweisdaten (Synonyme, SIDs, AIDs)
// werden erst bei Bedarf nachgeladen und danach gecacht.
type Compound struct {
	record CompoundRecord
	client *Client

	atoms map[int]*Atom
	bonds map[BondKey]*Bond

	mu          sync.Mutex
	synonyms    []string
	synonymsOK  bool
	relatedSIDs []int
	sidsOK      bool
	relatedAIDs []int
	aidsOK      bool
}

// NewCompound parst einen Roh-Datensatz zu einem eigenständigen Compound.
// Die nachladenden Eigenschaften (Synonyms, SIDs, AIDs) bleiben ohne
// Client leer.
func NewCompound(record CompoundRecord) (*Compound, error) {
	return newCompound(record, nil)
}

// newCompound parst einen Roh-Datensatz. Inkonsistente Parallel-Arrays
// (Invarianten-Verletzungen im Dienst-Format) führen zu einem ParseError,
// nicht zu einem stillschweigend verstümmelten Compound.
func newCompound(record CompoundRecord, client *Client) (*Compound, error) {
	c := &Compound{
		record: record,
		client: client,
		atoms:  make(map[int]*Atom),
		bonds:  make(map[BondKey]*Bond),
	}
	if err := c.parseAtoms(); err != nil {
		return nil, err
	}
	if err := c.parseBonds(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Compound) parseAtoms() error {
	block := c.record.Atoms
	if block == nil {
		return nil
	}
	if len(block.AID) != len(block.Element) {
		return newParseError("atomblock inkonsistent: %d aids, %d elemente", len(block.AID), len(block.Element))
	}
	for i, aid := range block.AID {
		c.atoms[aid] = &Atom{AID: aid, Number: block.Element[i]}
	}

	if len(c.record.Coords) > 0 {
		coord := c.record.Coords[0]
		if len(coord.Conformers) == 0 {
			return newParseError("koordinatenblock ohne conformer")
		}
		conf := coord.Conformers[0]
		if len(coord.AID) != len(conf.X) || len(coord.AID) != len(conf.Y) || len(coord.AID) != len(c.atoms) {
			return newParseError("koordinatenblock inkonsistent: %d aids, %d x, %d y, %d atome",
				len(coord.AID), len(conf.X), len(conf.Y), len(c.atoms))
		}
		if conf.Z != nil && len(conf.Z) != len(coord.AID) {
			return newParseError("koordinatenblock inkonsistent: %d aids, %d z", len(coord.AID), len(conf.Z))
		}
		for i, aid := range coord.AID {
			atom, ok := c.atoms[aid]
			if !ok {
				continue
			}
			var z *float64
			if conf.Z != nil {
				z = &conf.Z[i]
			}
			atom.SetCoordinates(conf.X[i], conf.Y[i], z)
		}
	}

	for _, charge := range block.Charge {
		if atom, ok := c.atoms[charge.AID]; ok {
			atom.Charge = charge.Value
		}
	}
	return nil
}

func (c *Compound) parseBonds() error {
	block := c.record.Bonds
	if block == nil {
		return nil
	}
	if len(block.AID1) != len(block.AID2) || len(block.AID1) != len(block.Order) {
		return newParseError("bondblock inkonsistent: %d aid1, %d aid2, %d order",
			len(block.AID1), len(block.AID2), len(block.Order))
	}
	// Schlüssel ist das ungeordnete Paar; ein späteres Duplikat überschreibt
	// den früheren Eintrag.
	for i := range block.AID1 {
		bond := &Bond{AID1: block.AID1[i], AID2: block.AID2[i], Order: block.Order[i]}
		c.bonds[bond.Key()] = bond
	}

	if len(c.record.Coords) > 0 && len(c.record.Coords[0].Conformers) > 0 {
		style := c.record.Coords[0].Conformers[0].Style
		if style != nil {
			if len(style.Annotation) != len(style.AID1) || len(style.Annotation) != len(style.AID2) {
				return newParseError("styleblock inkonsistent: %d annotationen, %d aid1, %d aid2",
					len(style.Annotation), len(style.AID1), len(style.AID2))
			}
			// Stile, deren Paar keiner bekannten Bindung entspricht, werden
			// ignoriert; sie sind reine Darstellungsdaten.
			for i := range style.Annotation {
				if bond, ok := c.bonds[NewBondKey(style.AID1[i], style.AID2[i])]; ok {
					bond.Style = style.Annotation[i]
				}
			}
		}
	}
	return nil
}

// CID gibt die Compound-ID zurück, sofern der Datensatz eine trägt.
// Suchergebnis-Fragmente ohne vergebene ID melden (0, false).
func (c *Compound) CID() (int, bool) {
	if c.record.ID.ID.CID == nil {
		return 0, false
	}
	return *c.record.ID.ID.CID, true
}

// Record gibt den zugrundeliegenden Roh-Datensatz zurück.
func (c *Compound) Record() CompoundRecord {
	return c.record
}

// Atoms gibt die Atome sortiert nach Atom-ID zurück.
func (c *Compound) Atoms() []*Atom {
	atoms := make([]*Atom, 0, len(c.atoms))
	for _, a := range c.atoms {
		atoms = append(atoms, a)
	}
	sort.Slice(atoms, func(i, j int) bool { return atoms[i].AID < atoms[j].AID })
	return atoms
}

// Bonds gibt die Bindungen sortiert nach (aid1, aid2) zurück.
func (c *Compound) Bonds() []*Bond {
	bonds := make([]*Bond, 0, len(c.bonds))
	for _, b := range c.bonds {
		bonds = append(bonds, b)
	}
	sort.Slice(bonds, func(i, j int) bool {
		if bonds[i].AID1 != bonds[j].AID1 {
			return bonds[i].AID1 < bonds[j].AID1
		}
		return bonds[i].AID2 < bonds[j].AID2
	})
	return bonds
}

// Elements gibt die Elementsymbole in Atom-ID-Reihenfolge zurück.
func (c *Compound) Elements() []string {
	atoms := c.Atoms()
	symbols := make([]string, len(atoms))
	for i, a := range atoms {
		symbols[i] = a.Element()
	}
	return symbols
}

// CoordinateTypeLabel meldet "2d" oder "3d", abgeleitet aus den Typ-Markern
// des ersten Koordinatenblocks.
func (c *Compound) CoordinateTypeLabel() string {
	if len(c.record.Coords) > 0 {
		for _, t := range c.record.Coords[0].Type {
			if t == CoordinateTwoD {
				return "2d"
			}
			if t == CoordinateThreeD {
				return "3d"
			}
		}
	}
	return ""
}

// Charge gibt die Gesamtladung zurück (Default 0).
func (c *Compound) Charge() int {
	if c.record.Charge == nil {
		return 0
	}
	return *c.record.Charge
}

func (c *Compound) MolecularFormula() string {
	return findString(PropertyFilter{Label: "Molecular Formula"}, c.record.Props)
}

// MolecularWeight liefert das Molekulargewicht. Der Dienst liefert den
// Wert als String, daher die Konvertierung hier.
func (c *Compound) MolecularWeight() (float64, bool) {
	return parseFloatProp(PropertyFilter{Label: "Molecular Weight"}, c.record.Props)
}

// SMILES gibt die absolute (stereo-erhaltende) SMILES-Notation zurück.
func (c *Compound) SMILES() string {
	return findString(PropertyFilter{Label: "SMILES", Name: "Absolute"}, c.record.Props)
}

// ConnectivitySMILES gibt die SMILES-Notation ohne Stereo-/Isotopen-
// Information zurück. Die beiden Varianten sind über die URN-Namen strikt
// getrennt und niemals austauschbar.
func (c *Compound) ConnectivitySMILES() string {
	return findString(PropertyFilter{Label: "SMILES", Name: "Connectivity"}, c.record.Props)
}

// CanonicalSMILES ist der historische Name für ConnectivitySMILES.
//
// Deprecated: benutze ConnectivitySMILES.
func (c *Compound) CanonicalSMILES() string {
	return c.ConnectivitySMILES()
}

// IsomericSMILES ist der historische Name für SMILES.
//
// Deprecated: benutze SMILES.
func (c *Compound) IsomericSMILES() string {
	return c.SMILES()
}

func (c *Compound) InChI() string {
	return findString(PropertyFilter{Label: "InChI", Name: "Standard"}, c.record.Props)
}

func (c *Compound) InChIKey() string {
	return findString(PropertyFilter{Label: "InChIKey", Name: "Standard"}, c.record.Props)
}

func (c *Compound) IUPACName() string {
	return findString(PropertyFilter{Label: "IUPAC Name", Name: "Preferred"}, c.record.Props)
}

func (c *Compound) XLogP() (float64, bool) {
	return findFloat(PropertyFilter{Label: "Log P"}, c.record.Props)
}

func (c *Compound) ExactMass() (float64, bool) {
	return parseFloatProp(PropertyFilter{Label: "Mass", Name: "Exact"}, c.record.Props)
}

func (c *Compound) MonoisotopicMass() (float64, bool) {
	return parseFloatProp(PropertyFilter{Label: "Weight", Name: "MonoIsotopic"}, c.record.Props)
}

func (c *Compound) TPSA() (float64, bool) {
	return findFloat(PropertyFilter{Implementation: "E_TPSA"}, c.record.Props)
}

func (c *Compound) Complexity() (float64, bool) {
	return findFloat(PropertyFilter{Implementation: "E_COMPLEXITY"}, c.record.Props)
}

func (c *Compound) HBondDonorCount() (int, bool) {
	return findInt(PropertyFilter{Implementation: "E_NHDONORS"}, c.record.Props)
}

func (c *Compound) HBondAcceptorCount() (int, bool) {
	return findInt(PropertyFilter{Implementation: "E_NHACCEPTORS"}, c.record.Props)
}

func (c *Compound) RotatableBondCount() (int, bool) {
	return findInt(PropertyFilter{Implementation: "E_NROTBONDS"}, c.record.Props)
}

// Fingerprint gibt den rohen hex-kodierten Screening-Fingerprint zurück.
func (c *Compound) Fingerprint() string {
	v, ok := FindProperty(PropertyFilter{Implementation: "E_SCREEN"}, c.record.Props)
	if !ok || v.Binary == nil {
		return ""
	}
	return *v.Binary
}

// CACTVSFingerprint gibt den dekodierten 881-Bit-Binärstring zurück.
func (c *Compound) CACTVSFingerprint() (string, error) {
	raw := c.Fingerprint()
	if raw == "" {
		return "", nil
	}
	return CACTVSFingerprint(raw)
}

func countValue(v *int) (int, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

func (c *Compound) countBlock() *CountBlock {
	return c.record.Count
}

func (c *Compound) HeavyAtomCount() (int, bool) {
	if c.countBlock() == nil {
		return 0, false
	}
	return countValue(c.countBlock().HeavyAtom)
}

func (c *Compound) IsotopeAtomCount() (int, bool) {
	if c.countBlock() == nil {
		return 0, false
	}
	return countValue(c.countBlock().IsotopeAtom)
}

func (c *Compound) AtomStereoCount() (int, bool) {
	if c.countBlock() == nil {
		return 0, false
	}
	return countValue(c.countBlock().AtomChiral)
}

func (c *Compound) DefinedAtomStereoCount() (int, bool) {
	if c.countBlock() == nil {
		return 0, false
	}
	return countValue(c.countBlock().AtomChiralDef)
}

func (c *Compound) UndefinedAtomStereoCount() (int, bool) {
	if c.countBlock() == nil {
		return 0, false
	}
	return countValue(c.countBlock().AtomChiralUndef)
}

func (c *Compound) BondStereoCount() (int, bool) {
	if c.countBlock() == nil {
		return 0, false
	}
	return countValue(c.countBlock().BondChiral)
}

func (c *Compound) DefinedBondStereoCount() (int, bool) {
	if c.countBlock() == nil {
		return 0, false
	}
	return countValue(c.countBlock().BondChiralDef)
}

func (c *Compound) UndefinedBondStereoCount() (int, bool) {
	if c.countBlock() == nil {
		return 0, false
	}
	return countValue(c.countBlock().BondChiralUndef)
}

func (c *Compound) CovalentUnitCount() (int, bool) {
	if c.countBlock() == nil {
		return 0, false
	}
	return countValue(c.countBlock().CovalentUnit)
}

// conformerData liefert die Property-Liste des ersten Conformers, die
// Heimat der meisten 3D-Kennzahlen.
func (c *Compound) conformerData() []Property {
	if len(c.record.Coords) == 0 || len(c.record.Coords[0].Conformers) == 0 {
		return nil
	}
	return c.record.Coords[0].Conformers[0].Data
}

func (c *Compound) Volume3D() (float64, bool) {
	return findFloat(PropertyFilter{Label: "Shape", Name: "Volume"}, c.conformerData())
}

func (c *Compound) Multipoles3D() []string {
	v, ok := FindProperty(PropertyFilter{Label: "Shape", Name: "Multipoles"}, c.conformerData())
	if !ok {
		return nil
	}
	return v.SList
}

func (c *Compound) ConformerRMSD3D() (float64, bool) {
	if len(c.record.Coords) == 0 {
		return 0, false
	}
	return findFloat(PropertyFilter{Label: "Conformer", Name: "RMSD"}, c.record.Coords[0].Data)
}

func (c *Compound) EffectiveRotorCount3D() (float64, bool) {
	return findFloat(PropertyFilter{Label: "Count", Name: "Effective Rotor"}, c.record.Props)
}

func (c *Compound) PharmacophoreFeatures3D() []string {
	v, ok := FindProperty(PropertyFilter{Label: "Features", Name: "Pharmacophore"}, c.conformerData())
	if !ok {
		return nil
	}
	return v.SList
}

func (c *Compound) MMFF94PartialCharges3D() []string {
	v, ok := FindProperty(PropertyFilter{Label: "Charge", Name: "MMFF94 Partial"}, c.conformerData())
	if !ok {
		return nil
	}
	return v.SList
}

func (c *Compound) MMFF94Energy3D() (float64, bool) {
	return findFloat(PropertyFilter{Label: "Energy", Name: "MMFF94 NoEstat"}, c.conformerData())
}

func (c *Compound) ConformerID3D() string {
	return findString(PropertyFilter{Label: "Conformer", Name: "ID"}, c.conformerData())
}

func (c *Compound) ShapeSelfOverlap3D() (float64, bool) {
	return findFloat(PropertyFilter{Label: "Shape", Name: "Self Overlap"}, c.conformerData())
}

func (c *Compound) FeatureSelfOverlap3D() (float64, bool) {
	return findFloat(PropertyFilter{Label: "Feature", Name: "Self Overlap"}, c.conformerData())
}

func (c *Compound) ShapeFingerprint3D() []string {
	v, ok := FindProperty(PropertyFilter{Label: "Fingerprint", Name: "Shape"}, c.conformerData())
	if !ok {
		return nil
	}
	return v.SList
}

func (c *Compound) cidIdentifier() (string, bool) {
	cid, ok := c.CID()
	if !ok || c.client == nil {
		return "", false
	}
	return strconv.Itoa(cid), true
}

// Synonyms holt die Synonymliste des Compounds. Der erste erfolgreiche
// Abruf wird gecacht; bei zeitgleichen Erstabrufen kann der Dienst doppelt
// gefragt werden, das Ergebnis ist identisch.
func (c *Compound) Synonyms(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	if c.synonymsOK {
		defer c.mu.Unlock()
		return c.synonyms, nil
	}
	c.mu.Unlock()

	id, ok := c.cidIdentifier()
	if !ok {
		return nil, nil
	}
	synonyms, err := c.client.GetSynonyms(ctx, id, "cid", "compound")
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.synonyms = synonyms
	c.synonymsOK = true
	c.mu.Unlock()
	return synonyms, nil
}

// SIDs holt die Liste der zugehörigen Substanz-IDs, gecacht wie Synonyms.
func (c *Compound) SIDs(ctx context.Context) ([]int, error) {
	c.mu.Lock()
	if c.sidsOK {
		defer c.mu.Unlock()
		return c.relatedSIDs, nil
	}
	c.mu.Unlock()

	id, ok := c.cidIdentifier()
	if !ok {
		return nil, nil
	}
	sids, err := c.client.GetSIDs(ctx, id, "cid", "compound")
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.relatedSIDs = sids
	c.sidsOK = true
	c.mu.Unlock()
	return sids, nil
}

// AIDs holt die Liste der zugehörigen Assay-IDs, gecacht wie Synonyms.
func (c *Compound) AIDs(ctx context.Context) ([]int, error) {
	c.mu.Lock()
	if c.aidsOK {
		defer c.mu.Unlock()
		return c.relatedAIDs, nil
	}
	c.mu.Unlock()

	id, ok := c.cidIdentifier()
	if !ok {
		return nil, nil
	}
	aids, err := c.client.GetAIDs(ctx, id, "cid", "compound")
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.relatedAIDs = aids
	c.aidsOK = true
	c.mu.Unlock()
	return aids, nil
}

// compoundMapProperties ist die Default-Auswahl für ToMap. Die teuren
// Nachlade-Eigenschaften und die historischen SMILES-Aliasse bleiben
// draußen.
var compoundMapProperties = []string{
	"atoms", "bonds", "cid", "charge", "coordinate_type", "elements",
	"molecular_formula", "molecular_weight", "smiles", "connectivity_smiles",
	"inchi", "inchikey", "iupac_name", "xlogp", "exact_mass",
	"monoisotopic_mass", "tpsa", "complexity", "h_bond_donor_count",
	"h_bond_acceptor_count", "rotatable_bond_count", "fingerprint",
	"heavy_atom_count", "isotope_atom_count", "atom_stereo_count",
	"defined_atom_stereo_count", "undefined_atom_stereo_count",
	"bond_stereo_count", "defined_bond_stereo_count",
	"undefined_bond_stereo_count", "covalent_unit_count",
}

// ToMap gibt ausgewählte Eigenschaften als generische Map zurück, etwa für
// Export oder JSON-Fassaden. Ohne Argumente gilt die Default-Auswahl;
// nicht vorhandene Werte werden ausgelassen.
func (c *Compound) ToMap(properties ...string) map[string]interface{} {
	if len(properties) == 0 {
		properties = compoundMapProperties
	}
	data := make(map[string]interface{})
	for _, p := range properties {
		switch p {
		case "atoms":
			atoms := c.Atoms()
			rows := make([]map[string]interface{}, len(atoms))
			for i, a := range atoms {
				rows[i] = a.ToMap()
			}
			data[p] = rows
		case "bonds":
			bonds := c.Bonds()
			rows := make([]map[string]interface{}, len(bonds))
			for i, b := range bonds {
				rows[i] = b.ToMap()
			}
			data[p] = rows
		case "cid":
			if cid, ok := c.CID(); ok {
				data[p] = cid
			}
		case "charge":
			data[p] = c.Charge()
		case "coordinate_type":
			if t := c.CoordinateTypeLabel(); t != "" {
				data[p] = t
			}
		case "elements":
			data[p] = c.Elements()
		case "molecular_formula":
			setString(data, p, c.MolecularFormula())
		case "molecular_weight":
			setFloat(data, p, c.MolecularWeight)
		case "smiles":
			setString(data, p, c.SMILES())
		case "connectivity_smiles":
			setString(data, p, c.ConnectivitySMILES())
		case "inchi":
			setString(data, p, c.InChI())
		case "inchikey":
			setString(data, p, c.InChIKey())
		case "iupac_name":
			setString(data, p, c.IUPACName())
		case "xlogp":
			setFloat(data, p, c.XLogP)
		case "exact_mass":
			setFloat(data, p, c.ExactMass)
		case "monoisotopic_mass":
			setFloat(data, p, c.MonoisotopicMass)
		case "tpsa":
			setFloat(data, p, c.TPSA)
		case "complexity":
			setFloat(data, p, c.Complexity)
		case "h_bond_donor_count":
			setInt(data, p, c.HBondDonorCount)
		case "h_bond_acceptor_count":
			setInt(data, p, c.HBondAcceptorCount)
		case "rotatable_bond_count":
			setInt(data, p, c.RotatableBondCount)
		case "fingerprint":
			setString(data, p, c.Fingerprint())
		case "heavy_atom_count":
			setInt(data, p, c.HeavyAtomCount)
		case "isotope_atom_count":
			setInt(data, p, c.IsotopeAtomCount)
		case "atom_stereo_count":
			setInt(data, p, c.AtomStereoCount)
		case "defined_atom_stereo_count":
			setInt(data, p, c.DefinedAtomStereoCount)
		case "undefined_atom_stereo_count":
			setInt(data, p, c.UndefinedAtomStereoCount)
		case "bond_stereo_count":
			setInt(data, p, c.BondStereoCount)
		case "defined_bond_stereo_count":
			setInt(data, p, c.DefinedBondStereoCount)
		case "undefined_bond_stereo_count":
			setInt(data, p, c.UndefinedBondStereoCount)
		case "covalent_unit_count":
			setInt(data, p, c.CovalentUnitCount)
		}
	}
	return data
}

func setString(data map[string]interface{}, key, value string) {
	if value != "" {
		data[key] = value
	}
}

func setFloat(data map[string]interface{}, key string, get func() (float64, bool)) {
	if v, ok := get(); ok {
		data[key] = v
	}
}

func setInt(data map[string]interface{}, key string, get func() (int, bool)) {
	if v, ok := get(); ok {
		data[key] = v
	}
}
