package services

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SynonymNormalizer bereinigt Synonymlisten aus heterogenen Einreicher-
// Quellen. Die Listen kommen mit Unicode-Ligaturen, gemischten
// Whitespace-Formen und Duplikaten, die sich nur in der Schreibweise
// unterscheiden.
type SynonymNormalizer struct {
	logger *zap.Logger
}

func NewSynonymNormalizer(logger *zap.Logger) *SynonymNormalizer {
	return &SynonymNormalizer{logger: logger}
}

var synonymSpaceRE = regexp.MustCompile("[\t\f\v ]+")
var synonymMultiSpaceRE = regexp.MustCompile(` {2,}`)

// normalizeUnicodeAndLigatures führt NFC-Normalisierung durch und ersetzt
// gängige Ligaturen.
func (sn *SynonymNormalizer) normalizeUnicodeAndLigatures(s string) string {
	replacer := strings.NewReplacer(
		"ﬁ", "fi",
		"ﬂ", "fl",
		"ﬀ", "ff",
		"ﬃ", "ffi",
		"ﬄ", "ffl",
		"ﬆ", "st",
	)
	s = replacer.Replace(s)
	t := transform.Chain(norm.NFC)
	normalized, _, _ := transform.String(t, s)
	return normalized
}

// NormalizeOne bereinigt einen einzelnen Synonym-Eintrag.
func (sn *SynonymNormalizer) NormalizeOne(s string) string {
	s = sn.normalizeUnicodeAndLigatures(s)
	s = synonymSpaceRE.ReplaceAllString(s, " ")
	s = synonymMultiSpaceRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Normalize bereinigt eine Synonymliste: jeder Eintrag wird normalisiert,
// leere Einträge entfallen, Duplikate (case-insensitiv) werden unter
// Beibehaltung der ersten Schreibweise und der Reihenfolge entfernt.
func (sn *SynonymNormalizer) Normalize(synonyms []string) []string {
	seen := make(map[string]bool, len(synonyms))
	var out []string
	dropped := 0
	for _, raw := range synonyms {
		s := sn.NormalizeOne(raw)
		if s == "" {
			dropped++
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			dropped++
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	if dropped > 0 {
		sn.logger.Debug("Synonyme bereinigt", zap.Int("eingang", len(synonyms)), zap.Int("entfernt", dropped))
	}
	return out
}
