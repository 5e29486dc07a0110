package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reqguard/go-reqguard/pkg/auth"
	"github.com/reqguard/go-reqguard/pkg/blocklist"
	"github.com/reqguard/go-reqguard/pkg/config"
	"github.com/reqguard/go-reqguard/pkg/engine"
	"github.com/reqguard/go-reqguard/pkg/geoip"
	"github.com/reqguard/go-reqguard/pkg/models"
	"github.com/reqguard/go-reqguard/pkg/session"
	"github.com/reqguard/go-reqguard/pkg/storage"
)

// collectRequest is the JSON body of an event submission. The client
// context fields are optional payload overrides for proxied submissions.
type collectRequest struct {
	Event   string         `json:"event" binding:"required"`
	Data    map[string]any `json:"data"`
	Payload engine.Payload `json:"payload"`
}

type loginRequest struct {
	UserID string `json:"userId" binding:"required"`
	TTL    int    `json:"ttl"`
}

var (
	cfg        *config.Config
	resolver   *auth.Resolver
	aggregator *engine.Aggregator
)

func main() {
	var err error
	cfg, err = config.New()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	users, cleanup, err := buildUserDirectory(cfg)
	if err != nil {
		log.Fatalf("user directory error: %v", err)
	}
	defer cleanup()

	sessions, err := buildSessionStore(cfg)
	if err != nil {
		log.Fatalf("session store error: %v", err)
	}

	resolver = auth.NewResolver(cfg, users, sessions)

	geo := geoip.NewResolver(geoip.NewDatabaseCache(cfg.GeoDBPath), cfg.SkipLocationHeaders)
	aggregator = engine.New(geo, cfg.ClientIPHeader)

	r := gin.Default()
	r.POST("/api/v1/collect", handleCollect)
	r.POST("/api/v1/login", handleLogin)
	r.GET("/api/v1/me", handleMe)

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// handleCollect resolves the client context for one inbound event. The
// blocklist decision is made here, before any processing; everything
// downstream of the drop check degrades instead of failing.
func handleCollect(c *gin.Context) {
	var req collectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info := aggregator.Build(c.Request, req.Payload)

	if blocklist.IsBlocked(info.IP, cfg.IgnoreIPs) {
		c.JSON(http.StatusForbidden, gin.H{"error": "address blocked"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event":  req.Event,
		"client": info,
	})
}

// handleLogin hands out a session-backed bearer token for a known user.
// Credential verification happens upstream of this service; this endpoint
// is the identity handoff point.
func handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := resolver.Resolve(c.Request.Context(), c.Request.Header)
	if err != nil || result.User == nil || !auth.HasPermission(result.User.Role, auth.PermSessionIssue) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if !result.User.IsAdmin && result.User.ID != req.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	token, err := resolver.Issue(c.Request.Context(),
		map[string]any{"userId": req.UserID},
		time.Duration(req.TTL)*time.Second)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// handleMe exposes the resolved caller context.
func handleMe(c *gin.Context) {
	result, err := resolver.Resolve(c.Request.Context(), c.Request.Header)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       result.User,
		"shareToken": result.ShareToken,
	})
}

func buildUserDirectory(cfg *config.Config) (storage.UserDirectory, func(), error) {
	if cfg.SQLiteFile != "" {
		store, err := storage.NewSQLiteStore(cfg.SQLiteFile)
		if err != nil {
			return nil, nil, err
		}
		if cfg.DisableAuth {
			err := store.Put(context.Background(), &models.User{
				ID:       cfg.AdminUserID,
				Username: cfg.AdminUserID,
				Role:     models.RoleAdmin,
			})
			if err != nil {
				store.Close()
				return nil, nil, err
			}
		}
		return store, func() { store.Close() }, nil
	}

	store := storage.NewMemoryStore()
	if cfg.DisableAuth {
		store.Put(&models.User{
			ID:       cfg.AdminUserID,
			Username: cfg.AdminUserID,
			Role:     models.RoleAdmin,
		})
	}
	return store, func() {}, nil
}

func buildSessionStore(cfg *config.Config) (session.Store, error) {
	if cfg.RedisURL == "" {
		log.Println("no REDIS_URL configured, using in-memory sessions")
		return session.NewMemoryStore(), nil
	}
	return session.NewRedisStore(cfg.RedisURL)
}
