package server

import (
	"context"

	"github.com/mj1618/visible/internal/platform"
)

// sessionCall is the state a tool handler works with.
type sessionCall struct {
	ctx     context.Context
	params  map[string]interface{}
	session platform.Session
}
