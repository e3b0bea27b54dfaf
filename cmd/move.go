package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leagueops/rosterd/core/balance"
	"github.com/leagueops/rosterd/infra/logger"
)

var (
	moveDivision  int
	movePlayer    string
	moveDirection string
)

var moveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move a player to an adjacent division with a compensating swap",
	RunE:  runMove,
}

func init() {
	moveCmd.Flags().StringVarP(&rosterPath, "roster", "r", "", "roster file (yaml)")
	moveCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file, defaults to stdout")
	moveCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format: json or csv")
	moveCmd.Flags().IntVarP(&moveDivision, "division", "d", 0, "index of the player's current division")
	moveCmd.Flags().StringVarP(&movePlayer, "player", "p", "", "player id to move")
	moveCmd.Flags().StringVar(&moveDirection, "direction", "down", "up (stronger) or down (weaker)")
	_ = moveCmd.MarkFlagRequired("roster")
	_ = moveCmd.MarkFlagRequired("player")
	rootCmd.AddCommand(moveCmd)
}

func runMove(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logg := logger.New("move-command")

	var dir balance.MoveDirection
	switch moveDirection {
	case "up":
		dir = balance.MoveUp
	case "down":
		dir = balance.MoveDown
	default:
		return fmt.Errorf("direction must be up or down, got %s", moveDirection)
	}

	svc, res, err := computeRoster(cfg, rosterPath, logg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logg.Errorf("service close: %v", err)
		}
	}()

	if err := svc.ApplyMove(moveDivision, movePlayer, dir); err != nil {
		var moveErr *balance.MoveError
		if errors.As(err, &moveErr) {
			// A rejected move keeps the prior assignments; report the
			// reason and emit them unchanged.
			logg.Warnf("move rejected: %s", moveErr.Reason)
		} else {
			return err
		}
	}

	res = svc.Result()
	logReports(logg, res)
	return writeResult(cfg, res)
}
