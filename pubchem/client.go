package pubchem

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"chem-hand/config"
)

var pollAttemptsCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "pubchem_poll_attempts_total",
	Help: "Total number of poll requests issued while resolving ListKey responses.",
})

// Client kapselt den Zugriff auf den PubChem PUG REST Dienst. Ein Client
// hält keinen veränderlichen Zustand über einzelne Aufrufe hinweg und darf
// aus mehreren Goroutinen gleichzeitig benutzt werden.
type Client struct {
	Config *config.Config
	Logger *zap.Logger

	httpClient *http.Client
}

// NewClient erstellt einen neuen PubChem-Client. Timeout und optionales
// CA-Bundle kommen aus der Konfiguration.
func NewClient(cfg *config.Config, logger *zap.Logger) (*Client, error) {
	transport := http.DefaultTransport
	if cfg.PubChemCABundle != "" {
		pem, err := os.ReadFile(cfg.PubChemCABundle)
		if err != nil {
			return nil, fmt.Errorf("CA-Bundle konnte nicht gelesen werden: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("CA-Bundle %s enthält keine gültigen Zertifikate", cfg.PubChemCABundle)
		}
		transport = &http.Transport{TLSClientConfig: &tls.Config{RootCAs: pool}}
	}

	return &Client{
		Config: cfg,
		Logger: logger,
		httpClient: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: transport,
		},
	}, nil
}

// Request führt genau einen Request/Response-Austausch aus. Identifier-
// Platzierung und Segmentreihenfolge folgen buildRequest; fehlgeschlagene
// Antworten werden über classifyHTTP in typisierte Fehler übersetzt.
func (c *Client) Request(ctx context.Context, spec RequestSpec) ([]byte, error) {
	apiURL, postdata, err := buildRequest(c.Config.PubChemBaseURL, spec)
	if err != nil {
		return nil, err
	}

	method := http.MethodGet
	var body io.Reader
	if postdata != nil {
		method = http.MethodPost
		body = bytes.NewReader(postdata)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, body)
	if err != nil {
		return nil, err
	}
	if postdata != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	c.Logger.Debug("Rufe PUG REST auf",
		zap.String("method", method),
		zap.String("url", apiURL),
		zap.ByteString("postdata", postdata),
		zap.String("request_id", requestID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		httpErr := classifyHTTP(resp.StatusCode, http.StatusText(resp.StatusCode), respBody)
		c.Logger.Debug("PUG REST Fehlerantwort",
			zap.Int("status", resp.StatusCode),
			zap.String("kind", httpErr.Kind.String()),
			zap.String("request_id", requestID))
		return nil, httpErr
	}

	return respBody, nil
}

// waitingListKey prüft, ob ein JSON-Body die Waiting-Envelope mit
// Poll-Token trägt.
func waitingListKey(body []byte) (string, bool) {
	var w waitingEnvelope
	if err := json.Unmarshal(body, &w); err != nil {
		return "", false
	}
	return w.Waiting.ListKey, w.Waiting.ListKey != ""
}

// sleepInterval wartet das Poll-Intervall ab, abbrechbar über den Context.
func (c *Client) sleepInterval(ctx context.Context) error {
	timer := time.NewTimer(c.Config.PollInterval)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// asyncFamily meldet, ob eine Anfrage zu den Operationsfamilien gehört,
// die der Dienst nie synchron beantwortet: Formel-Suche sowie alle
// erweiterten Suchtypen außer xref.
func asyncFamily(spec RequestSpec) bool {
	return spec.Namespace == "formula" || (spec.SearchType != "" && spec.SearchType != "xref")
}

// Get führt eine Anfrage aus und löst dabei das asynchrone ListKey-
// Protokoll des Dienstes auf: enthält eine JSON-Antwort die Waiting-
// Envelope, wird deren Poll-Token übernommen, der Namespace auf listkey
// gewechselt und nach dem Poll-Intervall erneut angefragt, bis ein
// endgültiges Ergebnis vorliegt. War das gewünschte Ausgabeformat nicht
// JSON, folgt abschließend ein Request mit dem aufgelösten Token und dem
// ursprünglichen Format.
//
// MaxPollAttempts begrenzt die Schleife; 0 bedeutet unbegrenzt, dann
// bleibt der Context die einzige Abbruchmöglichkeit.
func (c *Client) Get(ctx context.Context, spec RequestSpec) ([]byte, error) {
	spec = spec.withDefaults()

	if asyncFamily(spec) {
		initial := spec
		initial.Operation = ""
		initial.Output = "JSON"
		body, err := c.Request(ctx, initial)
		if err != nil {
			return nil, err
		}

		identifier, namespace := spec.Identifier, spec.Namespace
		if key, waiting := waitingListKey(body); waiting {
			identifier, namespace = key, "listkey"
			body, err = c.poll(ctx, spec, key)
			if err != nil {
				return nil, err
			}
		}

		if spec.Output != "JSON" {
			final := spec
			final.Identifier = identifier
			final.Namespace = namespace
			return c.Request(ctx, final)
		}
		return body, nil
	}

	body, err := c.Request(ctx, spec)
	if err != nil {
		return nil, err
	}
	if spec.Output == "JSON" {
		if key, waiting := waitingListKey(body); waiting {
			return c.poll(ctx, spec, key)
		}
	}
	return body, nil
}

// poll treibt die Waiting-Schleife: Namespace listkey, ursprüngliche
// Domain/Operation, Output JSON, festes Intervall zwischen den Versuchen.
func (c *Client) poll(ctx context.Context, spec RequestSpec, listKey string) ([]byte, error) {
	log := c.Logger.With(zap.String("domain", spec.Domain), zap.String("listkey", listKey))
	log.Debug("Dienst meldet Waiting, starte Polling.")

	attempts := 0
	for {
		if c.Config.MaxPollAttempts > 0 && attempts >= c.Config.MaxPollAttempts {
			log.Warn("Poll-Obergrenze erreicht, breche ab.", zap.Int("attempts", attempts))
			return nil, ErrPollLimit
		}
		if err := c.sleepInterval(ctx); err != nil {
			return nil, err
		}
		attempts++
		pollAttemptsCounter.Inc()

		req := spec
		req.Identifier = listKey
		req.Namespace = "listkey"
		req.Output = "JSON"
		req.SearchType = ""
		body, err := c.Request(ctx, req)
		if err != nil {
			return nil, err
		}

		key, waiting := waitingListKey(body)
		if !waiting {
			log.Debug("Polling abgeschlossen.", zap.Int("attempts", attempts))
			return body, nil
		}
		listKey = key
	}
}

// getJSON führt die Anfrage mit Output JSON aus und dekodiert die Antwort
// in out. Ein NotFound des Dienstes wird hier verschluckt und als
// (false, nil) gemeldet; alle anderen Fehler werden unverändert propagiert.
func (c *Client) getJSON(ctx context.Context, spec RequestSpec, out interface{}) (bool, error) {
	spec.Output = "JSON"
	body, err := c.Get(ctx, spec)
	if err != nil {
		if IsNotFound(err) {
			c.Logger.Info("Kein Treffer für Anfrage", zap.String("identifier", spec.Identifier), zap.Error(err))
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, newParseError("antwort ist kein gültiges JSON: %v", err)
	}
	return true, nil
}

// GetJSON holt eine Antwort im JSON-Format als Rohbytes. NotFound wird
// verschluckt und als nil gemeldet.
func (c *Client) GetJSON(ctx context.Context, spec RequestSpec) ([]byte, error) {
	spec.Output = "JSON"
	body, err := c.Get(ctx, spec)
	if err != nil {
		if IsNotFound(err) {
			c.Logger.Info("Kein Treffer für JSON-Anfrage", zap.String("identifier", spec.Identifier), zap.Error(err))
			return nil, nil
		}
		return nil, err
	}
	return body, nil
}

// GetSDF holt einen Datensatz im SDF-Format. NotFound wird verschluckt und
// als leerer String gemeldet.
func (c *Client) GetSDF(ctx context.Context, spec RequestSpec) (string, error) {
	spec.Output = "SDF"
	body, err := c.Get(ctx, spec)
	if err != nil {
		if IsNotFound(err) {
			c.Logger.Info("Kein Treffer für SDF-Anfrage", zap.String("identifier", spec.Identifier), zap.Error(err))
			return "", nil
		}
		return "", err
	}
	return string(body), nil
}
