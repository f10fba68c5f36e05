package main

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"chem-hand/config"
	"chem-hand/pubchem"
	"chem-hand/services"
	"chem-hand/storage"
)

var archivedRecordsCounter prometheus.Counter
var lookupRequestsCounter *prometheus.CounterVec

func init() {
	archivedRecordsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "archived_records_total",
			Help: "Total number of compound records archived to S3.",
		},
	)
	lookupRequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookup_requests_total",
			Help: "Total number of lookup requests served, by endpoint and status.",
		},
		[]string{"endpoint", "status"},
	)
	prometheus.MustRegister(archivedRecordsCounter, lookupRequestsCounter)
}

func apiKeyAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.APISecretKey == "" {
			c.Next()
			return
		}
		apiKey := c.GetHeader("X-API-KEY")
		if apiKey != cfg.APISecretKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid API Key"})
			return
		}
		c.Next()
	}
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	client, err := pubchem.NewClient(cfg, logging)
	if err != nil {
		logging.Fatal("PubChem client creation failed", zap.Error(err))
	}
	normalizer := services.NewSynonymNormalizer(logging)

	// Setup Router
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(apiKeyAuthMiddleware(cfg))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupCompoundRoutes(router, client, normalizer, logging)
	setupSubstanceRoutes(router, client, logging)
	setupAssayRoutes(router, client, logging)
	setupSearchRoutes(router, client, logging)
	setupPropertyRoutes(router, client, logging)

	// Setup Cron
	if cfg.EnableArchive {
		s3Client, err := storage.NewS3Client(context.Background(), cfg)
		if err != nil {
			logging.Fatal("S3 client creation failed", zap.Error(err))
		}
		archiveService := services.NewArchiveService(cfg, client, s3Client, logging)

		cronScheduler := cron.New()
		cronScheduler.AddFunc(cfg.CronSchedule, func() {
			logging.Info("Running scheduled archive job...")
			count, err := archiveService.RunForWatchlist(context.Background())
			if err != nil {
				logging.Error("Cron job failed", zap.Error(err))
			} else {
				logging.Info("Cron job completed", zap.Int("archived", count))
				archivedRecordsCounter.Add(float64(count))
			}
		})
		cronScheduler.Start()
	}

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

// respondLookupError übersetzt Client-Fehler in HTTP-Antworten: NotFound
// bleibt 404, Dienst-Überlastung wird als 503 durchgereicht, alles andere
// ist ein 502 gegen den Upstream.
func respondLookupError(c *gin.Context, log *zap.Logger, endpoint string, err error) {
	switch {
	case pubchem.IsNotFound(err):
		lookupRequestsCounter.WithLabelValues(endpoint, "not_found").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case pubchem.IsServerBusy(err):
		lookupRequestsCounter.WithLabelValues(endpoint, "busy").Inc()
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "upstream service busy"})
	default:
		log.Error("Upstream lookup failed", zap.String("endpoint", endpoint), zap.Error(err))
		lookupRequestsCounter.WithLabelValues(endpoint, "error").Inc()
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream error"})
	}
}

func setupCompoundRoutes(router *gin.Engine, client *pubchem.Client, normalizer *services.SynonymNormalizer, log *zap.Logger) {
	rg := router.Group("/api/compounds")

	rg.GET("/:cid", func(c *gin.Context) {
		cid, err := strconv.Atoi(c.Param("cid"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cid"})
			return
		}
		compound, err := client.CompoundByCID(c.Request.Context(), cid)
		if err != nil {
			respondLookupError(c, log, "compound", err)
			return
		}
		lookupRequestsCounter.WithLabelValues("compound", "ok").Inc()
		c.JSON(http.StatusOK, compound.ToMap())
	})

	rg.GET("/:cid/synonyms", func(c *gin.Context) {
		cid, err := strconv.Atoi(c.Param("cid"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cid"})
			return
		}
		synonyms, err := client.GetSynonyms(c.Request.Context(), c.Param("cid"), "cid", "compound")
		if err != nil {
			respondLookupError(c, log, "synonyms", err)
			return
		}
		lookupRequestsCounter.WithLabelValues("synonyms", "ok").Inc()
		c.JSON(http.StatusOK, gin.H{"cid": cid, "synonyms": normalizer.Normalize(synonyms)})
	})

	rg.GET("/:cid/sdf", func(c *gin.Context) {
		if _, err := strconv.Atoi(c.Param("cid")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cid"})
			return
		}
		sdf, err := client.CompoundSDF(c.Request.Context(), c.Param("cid"), "cid")
		if err != nil {
			respondLookupError(c, log, "sdf", err)
			return
		}
		if sdf == "" {
			lookupRequestsCounter.WithLabelValues("sdf", "not_found").Inc()
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}
		lookupRequestsCounter.WithLabelValues("sdf", "ok").Inc()
		c.Data(http.StatusOK, "chemical/x-mdl-sdfile", []byte(sdf))
	})
}

func setupSubstanceRoutes(router *gin.Engine, client *pubchem.Client, log *zap.Logger) {
	rg := router.Group("/api/substances")

	rg.GET("/:sid", func(c *gin.Context) {
		sid, err := strconv.Atoi(c.Param("sid"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sid"})
			return
		}
		substance, err := client.SubstanceBySID(c.Request.Context(), sid)
		if err != nil {
			respondLookupError(c, log, "substance", err)
			return
		}
		lookupRequestsCounter.WithLabelValues("substance", "ok").Inc()
		c.JSON(http.StatusOK, substance.ToMap())
	})
}

func setupAssayRoutes(router *gin.Engine, client *pubchem.Client, log *zap.Logger) {
	rg := router.Group("/api/assays")

	rg.GET("/:aid", func(c *gin.Context) {
		aid, err := strconv.Atoi(c.Param("aid"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid aid"})
			return
		}
		assay, err := client.AssayByAID(c.Request.Context(), aid)
		if err != nil {
			respondLookupError(c, log, "assay", err)
			return
		}
		lookupRequestsCounter.WithLabelValues("assay", "ok").Inc()
		c.JSON(http.StatusOK, assay.ToMap())
	})
}

func setupSearchRoutes(router *gin.Engine, client *pubchem.Client, log *zap.Logger) {
	// Body-gesteuerter Endpunkt für Namens-, Struktur- und Formelsuchen
	router.POST("/api/search/compounds", func(c *gin.Context) {
		type SearchQuery struct {
			Identifier string `json:"identifier"`
			Namespace  string `json:"namespace"`
			SearchType string `json:"search_type"`
			Threshold  int    `json:"threshold"`
		}

		var req SearchQuery
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if req.Identifier == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "identifier is required"})
			return
		}
		if req.Namespace == "" {
			req.Namespace = "name"
		}

		var opts []pubchem.QueryOption
		if req.SearchType != "" {
			opts = append(opts, pubchem.WithSearchType(req.SearchType))
		}
		if req.Threshold > 0 {
			opts = append(opts, pubchem.WithParam("Threshold", strconv.Itoa(req.Threshold)))
		}

		cids, err := client.GetCIDs(c.Request.Context(), req.Identifier, req.Namespace, "compound", opts...)
		if err != nil {
			respondLookupError(c, log, "search", err)
			return
		}
		lookupRequestsCounter.WithLabelValues("search", "ok").Inc()
		c.JSON(http.StatusOK, gin.H{"cids": cids})
	})
}

func setupPropertyRoutes(router *gin.Engine, client *pubchem.Client, log *zap.Logger) {
	router.POST("/api/properties", func(c *gin.Context) {
		type PropertyQuery struct {
			Identifier string   `json:"identifier"`
			Namespace  string   `json:"namespace"`
			Properties []string `json:"properties"`
		}

		var req PropertyQuery
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if req.Identifier == "" || len(req.Properties) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "identifier and properties are required"})
			return
		}
		if req.Namespace == "" {
			req.Namespace = "cid"
		}

		rows, err := client.GetProperties(c.Request.Context(), req.Properties, req.Identifier, req.Namespace)
		if err != nil {
			respondLookupError(c, log, "properties", err)
			return
		}
		lookupRequestsCounter.WithLabelValues("properties", "ok").Inc()

		if c.Query("format") == "csv" {
			c.Header("Content-Type", "text/csv")
			if err := services.WriteCSV(c.Writer, rows); err != nil {
				log.Error("CSV export failed", zap.Error(err))
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"properties": rows})
	})
}
