package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Server wraps the engine in an http.Server with explicit timeouts;
// gin's Engine.Run serves with none, which leaves slow clients able to
// hold connections open across CSV exports.
type Server struct {
	Engine *gin.Engine
}

func NewServer(cfg RouterConfig) *Server {
	return &Server{Engine: NewRouter(cfg)}
}

func (s *Server) Run(address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.Engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
	return srv.ListenAndServe()
}
