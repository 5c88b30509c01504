package middleware

import (
	"github.com/transpo-mobility/fare-engine/pkg/logger"
)

type Middleware struct {
	jwtSecret []byte
	log       logger.Logger
}

func NewMiddleware(jwtSecret string, log logger.Logger) *Middleware {
	return &Middleware{
		jwtSecret: []byte(jwtSecret),
		log:       log,
	}
}
