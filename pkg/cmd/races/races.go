package races

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/f1-race-tracer/log"
	"github.com/mpapenbr/f1-race-tracer/pkg/cmd/replay"
	"github.com/mpapenbr/f1-race-tracer/pkg/repository"
	"github.com/mpapenbr/f1-race-tracer/pkg/repository/race"
)

var ErrUnknownRace = errors.New("unknown race")

func NewRacesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "races",
		Short: "manages races stored in the database",
	}
	cmd.AddCommand(newListCmd(), newDeleteCmd())
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "lists the stored races, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(conn repository.Querier) error {
				return listRaces(cmd.Context(), conn, os.Stdout)
			})
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <race key>...",
		Short: "deletes races including track, entrants and laps",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(conn repository.Querier) error {
				return deleteRaces(cmd.Context(), conn, args)
			})
		},
	}
}

func withDB(ctx context.Context, fn func(conn repository.Querier) error) error {
	pool, err := replay.ConnectDB(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(pool)
}

func listRaces(ctx context.Context, conn repository.Querier, w io.Writer) error {
	all, err := race.LoadAll(ctx, conn)
	if err != nil {
		return err
	}
	for _, r := range all {
		fmt.Fprintf(w, "%-36s  %s  %s\n",
			r.Key, r.Created.Local().Format(time.DateTime), r.Name)
	}
	return nil
}

// deleteRaces stops at the first unknown key
func deleteRaces(ctx context.Context, conn repository.Querier, keys []string) error {
	logger := log.GetFromContext(ctx).Named("races")
	for _, key := range keys {
		n, err := race.DeleteByKey(ctx, conn, key)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: %s", ErrUnknownRace, key)
		}
		logger.Info("Race deleted", log.String("key", key))
	}
	return nil
}
