package http_api

// routes sets up the routes for the HTTP server.
func (s *HTTPServer) routes() {
	s.router.GET("/api/v1/health", s.health)
	s.router.GET("/api/v1/config", s.config)
	s.router.POST("/api/v1/preview", s.preview)
	s.router.GET("/api/v1/history", s.history)
}
