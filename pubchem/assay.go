package pubchem

// Assay ist die geparste Sicht auf eine Assay-Beschreibung.
type Assay struct {
	record AssayRecord
}

func newAssay(record AssayRecord) *Assay {
	return &Assay{record: record}
}

func (a *Assay) descr() AssayDescription {
	return a.record.Assay.Descr
}

// AID gibt die Assay-ID zurück.
func (a *Assay) AID() int {
	return a.descr().AID.ID
}

// Version gibt die Versionsnummer der Beschreibung zurück.
func (a *Assay) Version() int {
	return a.descr().AID.Version
}

// Name gibt den Titel des Assays zurück.
func (a *Assay) Name() string {
	return a.descr().Name
}

// Description gibt die Beschreibungszeilen des Einreichers zurück.
func (a *Assay) Description() []string {
	return a.descr().Description
}

// Comments gibt die Kommentarzeilen zurück, leere Zeilen entfernt.
func (a *Assay) Comments() []string {
	var comments []string
	for _, line := range a.descr().Comment {
		if line != "" {
			comments = append(comments, line)
		}
	}
	return comments
}

// Record gibt den zugrundeliegenden Roh-Datensatz zurück.
func (a *Assay) Record() AssayRecord {
	return a.record
}

// ProjectCategory gibt die Projektkategorie zurück, sofern gesetzt.
func (a *Assay) ProjectCategory() (ProjectCategory, bool) {
	if a.descr().ProjectCategory == nil {
		return 0, false
	}
	return *a.descr().ProjectCategory, true
}

// Results gibt die Definitionen der Ergebnisspalten zurück.
func (a *Assay) Results() []AssayResult {
	return a.descr().Results
}

// Target gibt die Zielmoleküle des Assays zurück.
func (a *Assay) Target() []AssayTarget {
	return a.descr().Target
}

// Revision gibt die Revisionsnummer zurück.
func (a *Assay) Revision() int {
	return a.descr().Revision
}

// ToMap gibt ausgewählte Eigenschaften als generische Map zurück.
func (a *Assay) ToMap(properties ...string) map[string]interface{} {
	if len(properties) == 0 {
		properties = []string{"aid", "name", "description", "comments", "project_category", "revision"}
	}
	data := make(map[string]interface{})
	for _, p := range properties {
		switch p {
		case "aid":
			data[p] = a.AID()
		case "name":
			setString(data, p, a.Name())
		case "description":
			if len(a.Description()) > 0 {
				data[p] = a.Description()
			}
		case "comments":
			if c := a.Comments(); len(c) > 0 {
				data[p] = c
			}
		case "project_category":
			if cat, ok := a.ProjectCategory(); ok {
				data[p] = cat.String()
			}
		case "revision":
			if a.Revision() != 0 {
				data[p] = a.Revision()
			}
		}
	}
	return data
}
