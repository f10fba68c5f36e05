package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSynonymNormalizerDedupe(t *testing.T) {
	sn := NewSynonymNormalizer(zap.NewNop())

	got := sn.Normalize([]string{
		"Aspirin",
		"aspirin",
		"  acetylsalicylic acid ",
		"",
		"Acetylsalicylic Acid",
		"ASS",
	})

	// Erste Schreibweise gewinnt, Reihenfolge bleibt erhalten.
	assert.Equal(t, []string{"Aspirin", "acetylsalicylic acid", "ASS"}, got)
}

func TestSynonymNormalizerLigaturesAndWhitespace(t *testing.T) {
	sn := NewSynonymNormalizer(zap.NewNop())

	assert.Equal(t, "sulfinpyrazone", sn.NormalizeOne("sulﬁnpyrazone"))
	assert.Equal(t, "ethyl alcohol", sn.NormalizeOne("ethyl\t\talcohol"))
	assert.Equal(t, "benzol", sn.NormalizeOne("  benzol  "))
}
