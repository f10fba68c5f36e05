package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"chem-hand/pubchem"
)

// exportKeyColumns sind die ID-Spalten, die im Export immer zuerst stehen.
// Die Property-Tabelle des Dienstes liefert sie großgeschrieben, die
// ToMap-Exporte kleingeschrieben.
var exportKeyColumns = []string{"CID", "SID", "AID", "cid", "sid", "aid"}

// WriteCSV schreibt eine Liste generischer Property-Maps als CSV. Die
// Spaltenmenge ist die Vereinigung aller Schlüssel; ID-Spalten stehen
// vorn, der Rest folgt alphabetisch. Fehlende Werte bleiben leer.
func WriteCSV(w io.Writer, rows []map[string]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	keySet := make(map[string]bool)
	for _, row := range rows {
		for k := range row {
			keySet[k] = true
		}
	}

	var header []string
	for _, key := range exportKeyColumns {
		if keySet[key] {
			header = append(header, key)
			delete(keySet, key)
		}
	}
	rest := make([]string, 0, len(keySet))
	for k := range keySet {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	header = append(header, rest...)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := make([]string, len(header))
		for i, key := range header {
			if v, ok := row[key]; ok {
				record[i] = formatCSVValue(v)
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCompoundsCSV exportiert Compounds zeilenweise. Die cid-Spalte wird
// erzwungen, auch wenn die gewünschte Eigenschaftsauswahl sie auslässt.
func WriteCompoundsCSV(w io.Writer, compounds []*pubchem.Compound, properties ...string) error {
	rows := make([]map[string]interface{}, 0, len(compounds))
	for _, c := range compounds {
		row := c.ToMap(properties...)
		if _, ok := row["cid"]; !ok {
			if cid, found := c.CID(); found {
				row["cid"] = cid
			}
		}
		rows = append(rows, row)
	}
	return WriteCSV(w, rows)
}

// WriteSubstancesCSV exportiert Substanzen zeilenweise, die sid-Spalte
// wird erzwungen.
func WriteSubstancesCSV(w io.Writer, substances []*pubchem.Substance, properties ...string) error {
	rows := make([]map[string]interface{}, 0, len(substances))
	for _, s := range substances {
		row := s.ToMap(properties...)
		if _, ok := row["sid"]; !ok {
			row["sid"] = s.SID()
		}
		rows = append(rows, row)
	}
	return WriteCSV(w, rows)
}

func formatCSVValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		out := ""
		for i, s := range t {
			if i > 0 {
				out += "|"
			}
			out += s
		}
		return out
	case float64:
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
