package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/storegenius/storegenius/internal/config"
)

// SuggestCmd represents the suggest command
type SuggestCmd struct {
	Prompt string `arg:"" help:"Free-form product prompt, e.g. 'gifts for runners'"`
}

func (s *SuggestCmd) Run() error {
	cfg, err := config.FromViper()
	if err != nil {
		return err
	}

	service, _, _, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	products, err := service.EnrichFlat(ctx, s.Prompt)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
