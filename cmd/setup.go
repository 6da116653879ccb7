package main

import (
	"context"
	"fmt"

	"github.com/WolvTMG/tmgmidvite-xyz/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes the embedded example configuration to --config.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	r.logger.Info("config file created", "path", configPath)
	r.writePlain("%s\n", r.palette.StatusLine(true, "Wrote "+configPath))
	r.writePlain("Next steps:\n")
	r.writePlain("1. Set client_id and client_secret under [credentials.spotify]\n")
	r.writePlain("2. Run 'tmgmidvite login --save' to obtain a refresh token\n")
	r.writePlain("3. Run 'tmgmidvite serve'\n")
	return nil
}
