package pubchem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		kind   ErrorKind
	}{
		{400, KindBadRequest},
		{404, KindNotFound},
		{405, KindMethodNotAllowed},
		{500, KindServerError},
		{501, KindUnimplemented},
		{503, KindServerBusy},
		{504, KindTimeout},
		{418, KindHTTP},
	}
	for _, tt := range tests {
		err := classifyHTTP(tt.status, "reason", nil)
		assert.Equal(t, tt.kind, err.Kind, "status %d", tt.status)
		assert.Equal(t, tt.status, err.StatusCode)
	}
}

func TestClassifyHTTPFaultBody(t *testing.T) {
	body := []byte(`{"Fault":{"Code":"PUGREST.NotFound","Message":"No CID found","Details":["No record data for CID 99999999"]}}`)
	err := classifyHTTP(404, "Not Found", body)

	require.Equal(t, KindNotFound, err.Kind)
	// Code ersetzt die Reason-Phrase, Message wird angehängt, Details
	// kommen wörtlich mit.
	assert.Equal(t, "PUGREST.NotFound: No CID found", err.Message)
	assert.Equal(t, []string{"No record data for CID 99999999"}, err.Details)
	assert.Contains(t, err.Error(), "No record data for CID 99999999")
}

func TestClassifyHTTPMessageWithoutCode(t *testing.T) {
	body := []byte(`{"Fault":{"Message":"Too many requests"}}`)
	err := classifyHTTP(503, "Service Unavailable", body)

	assert.Equal(t, KindServerBusy, err.Kind)
	assert.Equal(t, "Service Unavailable: Too many requests", err.Message)
}

func TestClassifyHTTPMalformedBody(t *testing.T) {
	// Ein kaputter Body darf die Klassifikation nie scheitern lassen.
	err := classifyHTTP(503, "Service Unavailable", []byte("<html>gateway error</html>"))

	require.NotNil(t, err)
	assert.Equal(t, KindServerBusy, err.Kind)
	assert.Equal(t, "Service Unavailable", err.Message)
	assert.Empty(t, err.Details)
}

func TestIsNotFoundAndIsServerBusy(t *testing.T) {
	notFound := classifyHTTP(404, "Not Found", nil)
	busy := classifyHTTP(503, "Service Unavailable", nil)

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(busy))
	assert.True(t, IsServerBusy(busy))
	assert.False(t, IsServerBusy(notFound))
	assert.False(t, IsNotFound(ErrPollLimit))
}
