package pubchem

// BondKey ist der ungeordnete Atom-ID-Paar-Schlüssel einer Bindung. Eine
// Bindung zwischen den Atomen 3 und 5 ist identisch mit einer zwischen
// 5 und 3; pro Paar existiert höchstens eine Bond.
type BondKey struct {
	Low  int
	High int
}

// NewBondKey normalisiert ein Atom-ID-Paar zum ungeordneten Schlüssel.
func NewBondKey(aid1, aid2 int) BondKey {
	if aid1 > aid2 {
		aid1, aid2 = aid2, aid1
	}
	return BondKey{Low: aid1, High: aid2}
}

// Bond ist eine Kante zwischen zwei Atomen eines Compounds.
type Bond struct {
	// AID1 und AID2 sind die Endpunkt-Atom-IDs in Datensatz-Reihenfolge.
	AID1 int
	AID2 int
	// Order ist die Bindungsordnung.
	Order BondType
	// Style ist eine optionale Darstellungs-Annotation aus dem 2D-Conformer,
	// keine chemische Information. 0 bedeutet: keine Annotation.
	Style int
}

// Key gibt den ungeordneten Paar-Schlüssel der Bindung zurück.
func (b *Bond) Key() BondKey {
	return NewBondKey(b.AID1, b.AID2)
}

// ToMap gibt die Bindungsdaten als generische Map zurück.
func (b *Bond) ToMap() map[string]interface{} {
	data := map[string]interface{}{
		"aid1":  b.AID1,
		"aid2":  b.AID2,
		"order": b.Order.String(),
	}
	if b.Style != 0 {
		data["style"] = b.Style
	}
	return data
}
