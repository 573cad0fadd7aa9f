package main

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	_ "github.com/yourusername/open-stdnum-gateway/docs" // registers the OpenAPI document
	"github.com/yourusername/open-stdnum-gateway/pkg/auth"
	"github.com/yourusername/open-stdnum-gateway/pkg/config"
	"github.com/yourusername/open-stdnum-gateway/pkg/marc"
	"github.com/yourusername/open-stdnum-gateway/pkg/metrics"
)

const requestIDHeader = "X-Request-ID"

type Gateway struct {
	cfg      config.Config
	profile  *marc.Profile
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	tracer   trace.Tracer
}

// NewGateway registers the gateway metrics, plus Go runtime and process
// collectors, with reg.
func NewGateway(cfg config.Config, reg *prometheus.Registry) (*Gateway, error) {
	profile, err := marc.ProfileByName(cfg.MARCProfile)
	if err != nil {
		return nil, err
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Gateway{
		cfg:      cfg,
		profile:  profile,
		metrics:  metrics.New(reg),
		gatherer: reg,
		tracer:   otel.Tracer("github.com/yourusername/open-stdnum-gateway/cmd/gateway"),
	}, nil
}

// --- Error Handling ---

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s: %s", e.Code, e.Message, e.Detail)
}

func AbortWithError(c *gin.Context, code int, message string, err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}

	slog.Error("api error",
		"path", c.Request.URL.Path,
		"status", code,
		"message", message,
		"request_id", c.GetString("RequestID"),
		"error", err,
	)

	c.AbortWithStatusJSON(code, gin.H{
		"status":  "error",
		"error":   message,
		"detail":  detail,
		"code":    code,
		"traceId": c.GetString("TraceID"),
	})
}

// --- Middleware ---

// requestIDMiddleware echoes or assigns X-Request-ID and records the trace
// ID started by otelgin so error bodies can point at the trace.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("RequestID", id)
		c.Header(requestIDHeader, id)

		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			c.Set("TraceID", sc.TraceID().String())
		}
		c.Next()
	}
}

func accessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString("RequestID"),
		)
	}
}

// authMiddleware accepts a plain API key, a key matching the configured
// bcrypt hash, or an HS256 bearer token. With no credential configured every
// request passes.
func authMiddleware(cfg config.Config) gin.HandlerFunc {
	secret := []byte(cfg.JWTSecret)

	return func(c *gin.Context) {
		if !cfg.AuthEnabled() {
			c.Next()
			return
		}

		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			apiKey = c.Query("apikey")
		}
		if apiKey != "" {
			if cfg.APIKey != "" && subtle.ConstantTimeCompare([]byte(apiKey), []byte(cfg.APIKey)) == 1 {
				c.Set("username", "api-key-user")
				c.Set("role", "admin")
				c.Next()
				return
			}
			if cfg.APIKeyHash != "" && auth.CheckKey(cfg.APIKeyHash, apiKey) {
				c.Set("username", "api-key-user")
				c.Set("role", "admin")
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		if len(secret) > 0 && strings.HasPrefix(authHeader, "Bearer ") {
			claims, err := auth.ParseToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
			if err == nil {
				c.Set("username", claims.Subject)
				c.Set("role", claims.Role)
				c.Next()
				return
			}
			slog.Debug("bearer token rejected", "error", err, "request_id", c.GetString("RequestID"))
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "Unauthorized: Invalid API Key or Token",
		})
	}
}

func (g *Gateway) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// --- 0. OpenTelemetry Middleware ---
	r.Use(otelgin.Middleware(serviceName))
	r.Use(requestIDMiddleware(), accessLogMiddleware())

	// --- 1. CORS Configuration ---
	origins := g.cfg.CORSOrigins
	allowAll := len(origins) == 0 || (len(origins) == 1 && origins[0] == "*")
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-API-Key", requestIDHeader, "Connect-Protocol-Version"},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if allowAll {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	// --- 2. Health, metrics and docs ---
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "time": time.Now()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(g.gatherer, promhttp.HandlerOpts{})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// --- 3. Connect RPC ---
	path, handler := newStdnumServiceHandler(g)
	rpc := r.Group(path, authMiddleware(g.cfg))
	rpc.Any("*any", gin.WrapH(handler))

	// --- 4. REST API ---
	api := r.Group("/api", authMiddleware(g.cfg))
	api.GET("/identifiers/:kind", g.getIdentifier)
	api.POST("/identifiers/normalize", g.normalizeIdentifier)
	api.POST("/isbn/convert", g.convertISBN)
	api.POST("/marc/identifiers", g.extractMARCIdentifiers)

	return r
}
