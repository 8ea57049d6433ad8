package api

import (
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rawblock/sce/internal/engine"
	"github.com/rawblock/sce/internal/limits"
)

// Handler binds the ambient debug/introspection HTTP surface to a wired
// Engine. This API is distinct from the spec's consensus surface (a
// non-goal JSON-RPC/REST layer): it exposes read-only state for operators
// and the public statistics snapshot, plus the block-event websocket
// stream (spec.md §5).
type Handler struct {
	Engine *engine.Engine
}

// SetupRouter builds the gin.Engine serving the SCE's debug/introspection
// API. Mirrors the teacher's CORS and auth/rate-limit layering.
func SetupRouter(eng *engine.Engine) *gin.Engine {
	r := gin.Default()

	// Enable CORS — configurable via ALLOWED_ORIGINS env var
	// Production: ALLOWED_ORIGINS=https://example.org
	// Development: ALLOWED_ORIGINS=http://localhost:3000 (or leave empty for *)
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowedOrigins == "" || allowedOrigins == "*" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowed := range strings.Split(allowedOrigins, ",") {
				if strings.TrimSpace(allowed) == origin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	h := &Handler{Engine: eng}

	// ── Public endpoints (no auth) ─────────────────────────────
	pub := r.Group("/api/v1")
	{
		pub.GET("/health", h.handleHealth)
		pub.GET("/stream", eng.Notify.Subscribe)
		pub.GET("/debug/stats", h.handleStats)
	}

	// ── Protected endpoints (require bearer token if API_AUTH_TOKEN set) ──
	auth := r.Group("/api/v1")
	auth.Use(AuthMiddleware())
	auth.Use(NewRateLimiter(60, 10).Middleware())
	{
		auth.GET("/debug/account/:address", h.handleAccount)
		auth.GET("/debug/limits/:id", h.handleLimit)
	}

	return r
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"network": h.Engine.Params.Name,
	})
}

// handleStats serves the SPEC_FULL §D.3 statistics snapshot. The height
// and window are required query params since the SCE has no notion of
// "current tip" of its own (the UTXO engine, a non-goal, owns that).
func (h *Handler) handleStats(c *gin.Context) {
	height, err := strconv.ParseInt(c.Query("height"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "height query param required"})
		return
	}
	windowBlocks, err := strconv.ParseInt(c.DefaultQuery("windowBlocks", "1440"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid windowBlocks"})
		return
	}
	sinceHeight := int32(height) - int32(windowBlocks)
	if sinceHeight < 0 {
		sinceHeight = 0
	}

	stats, err := h.Engine.Store.Stats(c.Request.Context(), int32(height), sinceHeight)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// handleAccount serves a read-only account/reputation/mode lookup
// (spec.md §4.6's UserState, exposed for operator inspection). Balance
// figures are not sourced here — a non-goal — so mode is computed with
// zero balance unless overridden by query params.
func (h *Handler) handleAccount(c *gin.Context) {
	address := c.Param("address")
	height, err := strconv.ParseInt(c.Query("height"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "height query param required"})
		return
	}
	balance, _ := strconv.ParseInt(c.DefaultQuery("balanceSatoshis", "0"), 10, 64)
	thresholdFull, _ := strconv.ParseInt(c.DefaultQuery("thresholdBalance", "0"), 10, 64)
	thresholdPro, _ := strconv.ParseInt(c.DefaultQuery("thresholdBalancePro", "0"), 10, 64)

	state, err := h.Engine.GetUserState(c.Request.Context(), address, int32(height), balance, thresholdFull, thresholdPro)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

// handleLimit serves a single Limit Table lookup, the height-versioned
// tunable a checkpoint resolves to (spec.md §4.3).
func (h *Handler) handleLimit(c *gin.Context) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit id"})
		return
	}
	height, err := strconv.ParseInt(c.Query("height"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "height query param required"})
		return
	}
	value, err := h.Engine.Limits.Value(c.Request.Context(), limits.ID(idInt), int32(height))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": idInt, "height": height, "value": value})
}
