package pubchem

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingIdentifier wird vor jedem Netzwerkaufruf zurückgegeben, wenn
// der Aufrufer keinen Identifier übergeben hat.
var ErrMissingIdentifier = errors.New("pubchem: identifier darf nicht leer sein")

// ErrPollLimit signalisiert, dass die konfigurierte Obergrenze an
// Poll-Versuchen erreicht wurde, bevor der Dienst ein Ergebnis geliefert hat.
var ErrPollLimit = errors.New("pubchem: maximale Anzahl an Poll-Versuchen erreicht")

// ErrorKind klassifiziert einen HTTP-Fehler des PUG REST Dienstes.
type ErrorKind int

const (
	// KindHTTP ist der generische Fall für alle nicht gesondert
	// abgebildeten Statuscodes.
	KindHTTP ErrorKind = iota
	KindBadRequest
	KindNotFound
	KindMethodNotAllowed
	KindServerError
	KindUnimplemented
	KindServerBusy
	KindTimeout
)

// String gibt den Namen der Fehlerklasse zurück.
func (k ErrorKind) String() string {
	switch k {
	case KindBadRequest:
		return "BadRequest"
	case KindNotFound:
		return "NotFound"
	case KindMethodNotAllowed:
		return "MethodNotAllowed"
	case KindServerError:
		return "ServerError"
	case KindUnimplemented:
		return "Unimplemented"
	case KindServerBusy:
		return "ServerBusy"
	case KindTimeout:
		return "Timeout"
	default:
		return "HTTP"
	}
}

// HTTPError ist der typisierte Fehler für eine fehlgeschlagene Anfrage an
// den PUG REST Dienst. Message enthält den Fault-Code des Dienstes, falls
// vorhanden, sonst die HTTP-Reason-Phrase; Details stammen wörtlich aus
// dem Fault-Body.
type HTTPError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Details    []string
}

func (e *HTTPError) Error() string {
	out := fmt.Sprintf("pubchem: HTTP %d %s", e.StatusCode, e.Message)
	if len(e.Details) > 0 {
		out = fmt.Sprintf("%s (%s)", out, strings.Join(e.Details, ", "))
	}
	return out
}

// ParseError signalisiert eine lokale Strukturverletzung beim Dekodieren
// eines Datensatzes (z.B. ungleich lange Parallel-Arrays). Niemals durch
// Wiederholung mit derselben Eingabe behebbar.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return "pubchem: " + e.Msg
}

func newParseError(format string, args ...interface{}) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

// faultBody ist der strukturierte Fehler-Payload des Dienstes.
type faultBody struct {
	Fault struct {
		Code    string   `json:"Code"`
		Message string   `json:"Message"`
		Details []string `json:"Details"`
	} `json:"Fault"`
}

// classifyHTTP bildet einen fehlgeschlagenen HTTP-Austausch auf genau einen
// typisierten Fehler ab. Ein fehlender oder kaputter Fault-Body führt nie
// selbst zu einem Fehler; klassifiziert wird dann nur über Statuscode und
// Reason-Phrase.
func classifyHTTP(statusCode int, reason string, body []byte) *HTTPError {
	msg := reason
	var details []string

	var fault faultBody
	if err := json.Unmarshal(body, &fault); err == nil {
		if fault.Fault.Code != "" {
			msg = fault.Fault.Code
		}
		if fault.Fault.Message != "" {
			msg = msg + ": " + fault.Fault.Message
		}
		details = fault.Fault.Details
	}

	kind := KindHTTP
	switch statusCode {
	case 400:
		kind = KindBadRequest
	case 404:
		kind = KindNotFound
	case 405:
		kind = KindMethodNotAllowed
	case 500:
		kind = KindServerError
	case 501:
		kind = KindUnimplemented
	case 503:
		kind = KindServerBusy
	case 504:
		kind = KindTimeout
	}

	return &HTTPError{Kind: kind, StatusCode: statusCode, Message: msg, Details: details}
}

// IsNotFound meldet, ob err ein NotFound-Fehler des Dienstes ist.
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Kind == KindNotFound
}

// IsServerBusy meldet, ob der Dienst explizit gedrosselt hat (503).
// Aufrufer sollten diesen Fall gesondert von generischen Serverfehlern
// behandeln und erst nach einer Wartezeit erneut anfragen.
func IsServerBusy(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Kind == KindServerBusy
}
