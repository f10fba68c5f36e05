package pubchem

import (
	"context"
	"strconv"
	"sync"
)

// Substance ist die geparste Sicht auf einen hinterlegten Substanz-
// Datensatz. Anders als beim Compound stammen die Daten unverändert vom
// Einreicher; standardisierte Querverweise werden bei Bedarf nachgeladen.
type Substance struct {
	record SubstanceRecord
	client *Client

	mu          sync.Mutex
	stdCompound *Compound
	stdOK       bool
	relatedCIDs []int
	cidsOK      bool
	relatedAIDs []int
	aidsOK      bool
}

// NewSubstance erstellt eine eigenständige Substanz aus einem
// Roh-Datensatz; Nachlade-Eigenschaften bleiben ohne Client leer.
func NewSubstance(record SubstanceRecord) *Substance {
	return newSubstance(record, nil)
}

func newSubstance(record SubstanceRecord, client *Client) *Substance {
	return &Substance{record: record, client: client}
}

// SID gibt die Substanz-ID zurück.
func (s *Substance) SID() int {
	return s.record.SID.ID
}

// Record gibt den zugrundeliegenden Roh-Datensatz zurück.
func (s *Substance) Record() SubstanceRecord {
	return s.record
}

// SourceName ist der Name der einreichenden Datenquelle.
func (s *Substance) SourceName() string {
	return s.record.Source.DB.Name
}

// SourceID ist die Kennung des Datensatzes im System des Einreichers.
func (s *Substance) SourceID() string {
	return s.record.Source.DB.SourceID.Str
}

// Synonyms gibt die vom Einreicher hinterlegten Synonyme zurück. Sie
// stehen direkt im Datensatz, ein Nachladen ist nicht nötig.
func (s *Substance) Synonyms() []string {
	return s.record.Synonyms
}

// StandardizedCID gibt die CID des standardisierten Compounds zurück,
// sofern die Standardisierung eines ergeben hat.
func (s *Substance) StandardizedCID() (int, bool) {
	for _, rec := range s.record.Compound {
		if rec.ID.Type == CompoundIDStandardized && rec.ID.ID.CID != nil {
			return *rec.ID.ID.CID, true
		}
	}
	return 0, false
}

// DepositedCompound parst die eingereichte, unstandardisierte Struktur
// aus dem Datensatz, sofern vorhanden.
func (s *Substance) DepositedCompound() (*Compound, error) {
	for _, rec := range s.record.Compound {
		if rec.ID.Type == CompoundIDDeposited {
			return newCompound(rec, s.client)
		}
	}
	return nil, nil
}

// StandardizedCompound lädt den vollständigen standardisierten Compound
// nach. Der erste erfolgreiche Abruf wird gecacht.
func (s *Substance) StandardizedCompound(ctx context.Context) (*Compound, error) {
	s.mu.Lock()
	if s.stdOK {
		defer s.mu.Unlock()
		return s.stdCompound, nil
	}
	s.mu.Unlock()

	cid, ok := s.StandardizedCID()
	if !ok || s.client == nil {
		return nil, nil
	}
	compound, err := s.client.CompoundByCID(ctx, cid)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.stdCompound = compound
	s.stdOK = true
	s.mu.Unlock()
	return compound, nil
}

// CIDs holt die Liste der zugehörigen Compound-IDs, gecacht.
func (s *Substance) CIDs(ctx context.Context) ([]int, error) {
	s.mu.Lock()
	if s.cidsOK {
		defer s.mu.Unlock()
		return s.relatedCIDs, nil
	}
	s.mu.Unlock()

	if s.client == nil {
		return nil, nil
	}
	cids, err := s.client.GetCIDs(ctx, strconv.Itoa(s.SID()), "sid", "substance")
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.relatedCIDs = cids
	s.cidsOK = true
	s.mu.Unlock()
	return cids, nil
}

// AIDs holt die Liste der zugehörigen Assay-IDs, gecacht.
func (s *Substance) AIDs(ctx context.Context) ([]int, error) {
	s.mu.Lock()
	if s.aidsOK {
		defer s.mu.Unlock()
		return s.relatedAIDs, nil
	}
	s.mu.Unlock()

	if s.client == nil {
		return nil, nil
	}
	aids, err := s.client.GetAIDs(ctx, strconv.Itoa(s.SID()), "sid", "substance")
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.relatedAIDs = aids
	s.aidsOK = true
	s.mu.Unlock()
	return aids, nil
}

// ToMap gibt ausgewählte Eigenschaften als generische Map zurück.
func (s *Substance) ToMap(properties ...string) map[string]interface{} {
	if len(properties) == 0 {
		properties = []string{"sid", "source_name", "source_id", "synonyms", "standardized_cid"}
	}
	data := make(map[string]interface{})
	for _, p := range properties {
		switch p {
		case "sid":
			data[p] = s.SID()
		case "source_name":
			setString(data, p, s.SourceName())
		case "source_id":
			setString(data, p, s.SourceID())
		case "synonyms":
			if len(s.Synonyms()) > 0 {
				data[p] = s.Synonyms()
			}
		case "standardized_cid":
			if cid, ok := s.StandardizedCID(); ok {
				data[p] = cid
			}
		}
	}
	return data
}
