package pubchem

// Atom ist ein einzelnes Atom innerhalb eines Compounds. Atome werden beim
// Parsen des Datensatzes im Block erzeugt; Koordinaten und Ladung werden
// in Folgedurchläufen nachgetragen, danach ist das Atom unveränderlich.
type Atom struct {
	// AID ist die vom Dienst vergebene, innerhalb des Compounds eindeutige
	// Atom-ID.
	AID int
	// Number ist die Ordnungszahl.
	Number int
	// X und Y sind die 2D-Koordinaten, falls der Datensatz welche trägt.
	X *float64
	Y *float64
	// Z ist nur in 3D-Datensätzen belegt.
	Z *float64
	// Charge ist die Formalladung (Default 0).
	Charge int
}

// Element gibt das Elementsymbol zurück, rein abgeleitet aus der
// Ordnungszahl.
func (a *Atom) Element() string {
	return ElementSymbol(a.Number)
}

// SetCoordinates setzt alle Koordinaten-Dimensionen auf einmal.
func (a *Atom) SetCoordinates(x, y float64, z *float64) {
	a.X = &x
	a.Y = &y
	a.Z = z
}

// CoordinateType meldet, ob das Atom 2D- oder 3D-Koordinaten trägt.
func (a *Atom) CoordinateType() string {
	if a.Z == nil {
		return "2d"
	}
	return "3d"
}

// ToMap gibt die Atomdaten als generische Map zurück. Koordinaten erscheinen
// nur, wenn vorhanden; die Ladung nur, wenn sie von 0 abweicht.
func (a *Atom) ToMap() map[string]interface{} {
	data := map[string]interface{}{
		"aid":     a.AID,
		"number":  a.Number,
		"element": a.Element(),
	}
	if a.X != nil {
		data["x"] = *a.X
	}
	if a.Y != nil {
		data["y"] = *a.Y
	}
	if a.Z != nil {
		data["z"] = *a.Z
	}
	if a.Charge != 0 {
		data["charge"] = a.Charge
	}
	return data
}
