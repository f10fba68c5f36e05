package pubchem

import (
	"net/url"
	"strconv"
	"strings"
)

// RequestSpec bündelt alle Parameter einer PUG REST Anfrage.
type RequestSpec struct {
	// Identifier ist der Suchschlüssel. Mehrere Identifier werden vorab
	// kommasepariert zusammengefügt (siehe JoinIDs).
	Identifier string
	// Namespace ist der Identifier-Typ, z.B. cid, name, smiles, inchi,
	// formula, listkey, sourceid, sid, aid.
	Namespace string
	// Domain ist compound, substance, assay oder sources.
	Domain string
	// Operation ist das optionale Operations-Suffix, z.B. synonyms, cids.
	Operation string
	// Output ist das Ausgabeformat: JSON, XML, SDF, CSV, PNG, TXT, ASNT, ASNB.
	Output string
	// SearchType ist der optionale erweiterte Suchtyp: substructure,
	// superstructure, similarity oder xref.
	SearchType string
	// Options sind zusätzliche Query-Parameter; Einträge mit leerem Wert
	// werden vor dem Encoding verworfen.
	Options url.Values
}

// withDefaults füllt die üblichen Standardwerte auf.
func (s RequestSpec) withDefaults() RequestSpec {
	if s.Namespace == "" && s.Domain != "sources" {
		s.Namespace = "cid"
	}
	if s.Domain == "" {
		s.Domain = "compound"
	}
	if s.Output == "" {
		s.Output = "JSON"
	}
	return s
}

// JoinIDs fügt numerische Identifier kommasepariert zu einem Identifier-
// String zusammen.
func JoinIDs(ids ...int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// escapePath percent-encodiert ein Pfadsegment, lässt Schrägstriche aber
// unangetastet. Für sourceid-Identifier sind Schrägstriche an dieser Stelle
// bereits ersetzt.
func escapePath(s string) string {
	return strings.ReplaceAll(url.PathEscape(s), "%2F", "/")
}

// buildRequest konstruiert aus einer RequestSpec die Anfrage-URL und den
// optionalen POST-Body. Die Encoding-Regeln sind endpunktspezifisch und
// müssen byte-genau dem entsprechen, was der Dienst erwartet:
//
//   - Der Identifier landet im URL-Pfad, wenn der Namespace listkey,
//     formula oder sourceid ist, der Suchtyp xref ist, ein Suchtyp mit
//     Namespace cid kombiniert wird oder die Domain sources ist.
//   - In allen anderen Fällen wird der Identifier als URL-encodiertes
//     POST-Feld unter dem Namespace-Namen gesendet und fehlt im Pfad.
//   - sourceid-Identifier: jeder Schrägstrich wird durch einen Punkt
//     ersetzt, der Dienst routet keine Schrägstriche in Pfadsegmenten.
func buildRequest(base string, spec RequestSpec) (string, []byte, error) {
	spec = spec.withDefaults()
	if spec.Identifier == "" {
		return "", nil, ErrMissingIdentifier
	}

	identifier := spec.Identifier
	if spec.Namespace == "sourceid" {
		identifier = strings.ReplaceAll(identifier, "/", ".")
	}

	var urlid string
	var postdata []byte
	inPath := spec.Namespace == "listkey" ||
		spec.Namespace == "formula" ||
		spec.Namespace == "sourceid" ||
		spec.SearchType == "xref" ||
		(spec.SearchType != "" && spec.Namespace == "cid") ||
		spec.Domain == "sources"
	if inPath {
		urlid = escapePath(identifier)
	} else {
		postdata = []byte(url.Values{spec.Namespace: {identifier}}.Encode())
	}

	comps := []string{base, spec.Domain, spec.SearchType, spec.Namespace, urlid, spec.Operation, spec.Output}
	var kept []string
	for _, c := range comps {
		if c != "" {
			kept = append(kept, c)
		}
	}
	apiURL := strings.Join(kept, "/")

	if len(spec.Options) > 0 {
		query := url.Values{}
		for key, vals := range spec.Options {
			for _, v := range vals {
				if v != "" {
					query.Add(key, v)
				}
			}
		}
		if encoded := query.Encode(); encoded != "" {
			apiURL += "?" + encoded
		}
	}

	return apiURL, postdata, nil
}
