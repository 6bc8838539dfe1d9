package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/emzola/bookstore/config"
	"github.com/emzola/bookstore/internal/auth"
	"github.com/emzola/bookstore/internal/jsonlog"
	"github.com/emzola/bookstore/repository"
)

type Service interface {
	books
	users
	tokens
}

// MailSender delivers a templated email.
type MailSender interface {
	Send(recipient, templateFile string, data any) error
}

// CoverStorage stores an object and returns the URL it can be fetched from.
type CoverStorage interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// Services defines a service layer.
type service struct {
	config  config.Config
	wg      *sync.WaitGroup
	logger  *jsonlog.Logger
	repo    repository.Repository
	mailer  MailSender
	storage CoverStorage
	issuer  *auth.Issuer
}

// New creates a new instance of Service. storage may be nil, in which case
// cover uploads are refused.
func New(cfg config.Config, wg *sync.WaitGroup, logger *jsonlog.Logger, repo repository.Repository, mailer MailSender, storage CoverStorage) *service {
	return &service{
		config:  cfg,
		wg:      wg,
		logger:  logger,
		repo:    repo,
		mailer:  mailer,
		storage: storage,
		issuer:  auth.NewIssuer(cfg.JWT.Key, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.TTL),
	}
}

// baseURL is the public address links in emails point to.
func (s *service) baseURL() string {
	if s.config.Server.BaseURL != "" {
		return s.config.Server.BaseURL
	}
	return fmt.Sprintf("http://localhost:%d", s.config.Server.Port)
}
