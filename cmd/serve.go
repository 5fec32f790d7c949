package cmd

import (
	"github.com/storegenius/storegenius/internal/config"
	"github.com/storegenius/storegenius/internal/server"
)

// ServeCmd represents the serve command
type ServeCmd struct {
	Port int `short:"p" help:"Port to listen on (overrides config)"`
}

func (s *ServeCmd) Run() error {
	cfg, err := config.FromViper()
	if err != nil {
		return err
	}

	service, _, _, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	port := cfg.Port
	if s.Port > 0 {
		port = s.Port
	}

	ctx, cancel := signalContext()
	defer cancel()

	return server.New(port, service).ListenAndServe(ctx)
}
