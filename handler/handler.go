package handler

import (
	"sync"

	"github.com/emzola/bookstore/config"
	"github.com/emzola/bookstore/internal/jsonlog"
	"github.com/emzola/bookstore/service"
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/time/rate"
)

// Handler defines Handler layer.
type Handler struct {
	config     config.Config
	logger     *jsonlog.Logger
	limiters   *ttlcache.Cache[string, *rate.Limiter]
	limitersMu sync.Mutex
	service    service.Service
}

// New creates a new instance of Handler. limiters holds one rate limiter per
// client IP; idle entries expire with the cache TTL.
func New(cfg config.Config, logger *jsonlog.Logger, limiters *ttlcache.Cache[string, *rate.Limiter], service service.Service) *Handler {
	return &Handler{
		config:   cfg,
		logger:   logger,
		limiters: limiters,
		service:  service,
	}
}
