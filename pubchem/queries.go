package pubchem

import (
	"context"
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// QueryOption passt eine Abfrage an, etwa um einen erweiterten Suchtyp
// oder zusätzliche URL-Parameter zu setzen.
type QueryOption func(*RequestSpec)

// WithSearchType wählt einen erweiterten Suchtyp (substructure,
// superstructure, similarity, identity, xref).
func WithSearchType(searchType string) QueryOption {
	return func(spec *RequestSpec) {
		spec.SearchType = searchType
	}
}

// WithParam hängt einen URL-Parameter an die Abfrage an, etwa Threshold
// für Ähnlichkeitssuchen oder list_return.
func WithParam(key, value string) QueryOption {
	return func(spec *RequestSpec) {
		if spec.Options == nil {
			spec.Options = url.Values{}
		}
		spec.Options.Set(key, value)
	}
}

// WithOperation überschreibt die Operation der Abfrage.
func WithOperation(operation string) QueryOption {
	return func(spec *RequestSpec) {
		spec.Operation = operation
	}
}

func (c *Client) querySpec(identifier, namespace, domain, operation string, opts []QueryOption) RequestSpec {
	spec := RequestSpec{
		Identifier: identifier,
		Namespace:  namespace,
		Domain:     domain,
		Operation:  operation,
	}
	for _, opt := range opts {
		opt(&spec)
	}
	return spec
}

// GetCompounds sucht Compounds über einen beliebigen Namespace (cid, name,
// smiles, inchi, inchikey, formula, ...). Leere Treffermengen kommen als
// leere Liste zurück, nicht als Fehler.
func (c *Client) GetCompounds(ctx context.Context, identifier, namespace string, opts ...QueryOption) ([]*Compound, error) {
	spec := c.querySpec(identifier, namespace, "compound", "", opts)
	var env compoundsEnvelope
	found, err := c.getJSON(ctx, spec, &env)
	if err != nil || !found {
		return nil, err
	}
	compounds := make([]*Compound, 0, len(env.PCCompounds))
	for _, record := range env.PCCompounds {
		compound, err := newCompound(record, c)
		if err != nil {
			return nil, err
		}
		compounds = append(compounds, compound)
	}
	return compounds, nil
}

// GetSubstances sucht Substanzen über einen Namespace (sid, name,
// sourceid/<quelle>, ...).
func (c *Client) GetSubstances(ctx context.Context, identifier, namespace string, opts ...QueryOption) ([]*Substance, error) {
	spec := c.querySpec(identifier, namespace, "substance", "", opts)
	var env substancesEnvelope
	found, err := c.getJSON(ctx, spec, &env)
	if err != nil || !found {
		return nil, err
	}
	substances := make([]*Substance, 0, len(env.PCSubstances))
	for _, record := range env.PCSubstances {
		substances = append(substances, newSubstance(record, c))
	}
	return substances, nil
}

// GetAssays holt Assay-Beschreibungen über einen Namespace (aid, ...).
func (c *Client) GetAssays(ctx context.Context, identifier, namespace string, opts ...QueryOption) ([]*Assay, error) {
	spec := c.querySpec(identifier, namespace, "assay", "description", opts)
	var env assaysEnvelope
	found, err := c.getJSON(ctx, spec, &env)
	if err != nil || !found {
		return nil, err
	}
	assays := make([]*Assay, 0, len(env.PCAssayContainer))
	for _, record := range env.PCAssayContainer {
		assays = append(assays, newAssay(record))
	}
	return assays, nil
}

// GetProperties holt die Property-Tabelle für eine Menge von Eigenschaften.
// Eigenschaftsnamen dürfen in underscore-Schreibweise angegeben werden und
// werden über PropertyMap in die Dienst-Schreibweise übersetzt. Jede
// Ergebniszeile trägt mindestens den CID-Schlüssel.
func (c *Client) GetProperties(ctx context.Context, properties []string, identifier, namespace string, opts ...QueryOption) ([]map[string]interface{}, error) {
	translated := make([]string, len(properties))
	for i, p := range properties {
		if mapped, ok := PropertyMap[p]; ok {
			translated[i] = mapped
		} else {
			translated[i] = p
		}
	}
	operation := "property/" + strings.Join(translated, ",")

	spec := c.querySpec(identifier, namespace, "compound", operation, opts)
	var env propertyTableEnvelope
	found, err := c.getJSON(ctx, spec, &env)
	if err != nil || !found {
		return nil, err
	}

	rows := make([]map[string]interface{}, 0, len(env.PropertyTable.Properties))
	for _, raw := range env.PropertyTable.Properties {
		row := make(map[string]interface{}, len(raw))
		for key, value := range raw {
			row[key] = decodeScalar(value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// decodeScalar dekodiert einen Tabellenwert in den passendsten Go-Typ.
func decodeScalar(raw []byte) interface{} {
	s := string(raw)
	if len(s) > 1 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(raw, &str); err == nil {
			return str
		}
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// GetSynonyms holt die Synonymliste eines Records.
func (c *Client) GetSynonyms(ctx context.Context, identifier, namespace, domain string, opts ...QueryOption) ([]string, error) {
	spec := c.querySpec(identifier, namespace, domain, "synonyms", opts)
	var env informationListEnvelope
	found, err := c.getJSON(ctx, spec, &env)
	if err != nil || !found {
		return nil, err
	}
	var synonyms []string
	for _, info := range env.InformationList.Information {
		synonyms = append(synonyms, info.Synonym...)
	}
	return synonyms, nil
}

// identifierLists holt eine ID-Liste. Der Dienst antwortet je nach
// Endpunkt mit einer IdentifierList oder einer InformationList; beide
// Formen werden auf eine flache ID-Liste reduziert.
func (c *Client) identifierList(ctx context.Context, spec RequestSpec, pick func(identifierListEnvelope) []int, pickInfo func(Information) IDList) ([]int, error) {
	spec.Output = "JSON"
	body, err := c.Get(ctx, spec)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var ident identifierListEnvelope
	if err := json.Unmarshal(body, &ident); err == nil {
		if ids := pick(ident); len(ids) > 0 {
			return ids, nil
		}
	}
	var env informationListEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, newParseError("antwort ist kein gültiges JSON: %v", err)
	}
	var ids []int
	for _, info := range env.InformationList.Information {
		ids = append(ids, pickInfo(info)...)
	}
	return ids, nil
}

// GetCIDs holt Compound-IDs für einen Identifier, etwa die Treffer einer
// Namens- oder Struktursuche.
func (c *Client) GetCIDs(ctx context.Context, identifier, namespace, domain string, opts ...QueryOption) ([]int, error) {
	spec := c.querySpec(identifier, namespace, domain, "cids", opts)
	return c.identifierList(ctx, spec,
		func(e identifierListEnvelope) []int { return e.IdentifierList.CID },
		func(i Information) IDList { return i.CID })
}

// GetSIDs holt Substanz-IDs für einen Identifier.
func (c *Client) GetSIDs(ctx context.Context, identifier, namespace, domain string, opts ...QueryOption) ([]int, error) {
	spec := c.querySpec(identifier, namespace, domain, "sids", opts)
	return c.identifierList(ctx, spec,
		func(e identifierListEnvelope) []int { return e.IdentifierList.SID },
		func(i Information) IDList { return i.SID })
}

// GetAIDs holt Assay-IDs für einen Identifier.
func (c *Client) GetAIDs(ctx context.Context, identifier, namespace, domain string, opts ...QueryOption) ([]int, error) {
	spec := c.querySpec(identifier, namespace, domain, "aids", opts)
	return c.identifierList(ctx, spec,
		func(e identifierListEnvelope) []int { return e.IdentifierList.AID },
		func(i Information) IDList { return i.AID })
}

// GetAllSources listet die Namen aller Datenquellen eines Domains
// ("substance" oder "assay"), alphabetisch sortiert.
func (c *Client) GetAllSources(ctx context.Context, domain string) ([]string, error) {
	spec := RequestSpec{
		Identifier: domain,
		Domain:     "sources",
	}
	var env informationListEnvelope
	found, err := c.getJSON(ctx, spec, &env)
	if err != nil || !found {
		return nil, err
	}
	sources := append([]string(nil), env.InformationList.SourceName...)
	sort.Strings(sources)
	return sources, nil
}

// CompoundByCID holt genau einen Compound. Anders als bei den Listen-
// Abfragen ist ein fehlender Datensatz hier ein Fehler (NotFound).
func (c *Client) CompoundByCID(ctx context.Context, cid int) (*Compound, error) {
	spec := RequestSpec{
		Identifier: strconv.Itoa(cid),
		Namespace:  "cid",
		Domain:     "compound",
		Output:     "JSON",
	}
	body, err := c.Get(ctx, spec)
	if err != nil {
		return nil, err
	}
	var env compoundsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, newParseError("antwort ist kein gültiges JSON: %v", err)
	}
	if len(env.PCCompounds) == 0 {
		return nil, newParseError("antwort enthält keinen compound-datensatz")
	}
	return newCompound(env.PCCompounds[0], c)
}

// SubstanceBySID holt genau eine Substanz; NotFound wird propagiert.
func (c *Client) SubstanceBySID(ctx context.Context, sid int) (*Substance, error) {
	spec := RequestSpec{
		Identifier: strconv.Itoa(sid),
		Namespace:  "sid",
		Domain:     "substance",
		Output:     "JSON",
	}
	body, err := c.Get(ctx, spec)
	if err != nil {
		return nil, err
	}
	var env substancesEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, newParseError("antwort ist kein gültiges JSON: %v", err)
	}
	if len(env.PCSubstances) == 0 {
		return nil, newParseError("antwort enthält keinen substance-datensatz")
	}
	return newSubstance(env.PCSubstances[0], c), nil
}

// AssayByAID holt genau eine Assay-Beschreibung; NotFound wird propagiert.
func (c *Client) AssayByAID(ctx context.Context, aid int) (*Assay, error) {
	spec := RequestSpec{
		Identifier: strconv.Itoa(aid),
		Namespace:  "aid",
		Domain:     "assay",
		Operation:  "description",
		Output:     "JSON",
	}
	body, err := c.Get(ctx, spec)
	if err != nil {
		return nil, err
	}
	var env assaysEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, newParseError("antwort ist kein gültiges JSON: %v", err)
	}
	if len(env.PCAssayContainer) == 0 {
		return nil, newParseError("antwort enthält keinen assay-datensatz")
	}
	return newAssay(env.PCAssayContainer[0]), nil
}

// CompoundSDF holt den SDF-Datensatz eines Compounds als Text.
func (c *Client) CompoundSDF(ctx context.Context, identifier, namespace string) (string, error) {
	return c.GetSDF(ctx, RequestSpec{
		Identifier: identifier,
		Namespace:  namespace,
		Domain:     "compound",
	})
}
