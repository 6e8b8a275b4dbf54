package client

import (
	"context"
	"log/slog"

	"tally/internal/api"
	"tally/internal/config"
	"tally/internal/errkit"
	"tally/internal/offline"
)

// Client is the command surface the CLI talks to, regardless of transport.
type Client interface {
	Add(ctx context.Context, period string, req api.AddRequest) (int64, error)
	Get(ctx context.Context, period, table string, id int64) (api.Element, error)
	Update(ctx context.Context, period, table string, id int64, req api.UpdateRequest) error
	Remove(ctx context.Context, period, table string, id int64) error
	Copy(ctx context.Context, req api.CopyRequest) (int64, error)
	List(ctx context.Context, period string, filters []string) (api.Elements, error)
	Periods(ctx context.Context) ([]string, error)
	Close() error
}

// New selects the transport from the config's service mode.
func New(cfg *config.Config, logger *slog.Logger) (Client, error) {
	switch cfg.Service.Mode {
	case config.ModeHTTP:
		return NewHTTP(cfg), nil
	default:
		return NewLocal(cfg, logger)
	}
}

// Apply executes a backlog request against the client. Replays reuse the same
// command surface as live requests, so classification stays uniform.
func Apply(ctx context.Context, c Client, req offline.Request) error {
	switch req.Command {
	case offline.CommandAdd:
		if req.Add == nil {
			return errkit.Wrap(errkit.ErrValidation, "client", "replay", "add request missing payload", nil)
		}
		_, err := c.Add(ctx, req.Period, *req.Add)
		return err
	case offline.CommandUpdate:
		if req.Update == nil {
			return errkit.Wrap(errkit.ErrValidation, "client", "replay", "update request missing payload", nil)
		}
		return c.Update(ctx, req.Period, req.Table, req.EntryID, *req.Update)
	case offline.CommandRemove:
		return c.Remove(ctx, req.Period, req.Table, req.EntryID)
	case offline.CommandCopy:
		if req.Copy == nil {
			return errkit.Wrap(errkit.ErrValidation, "client", "replay", "copy request missing payload", nil)
		}
		_, err := c.Copy(ctx, *req.Copy)
		return err
	default:
		return errkit.Wrap(errkit.ErrValidation, "client", "replay", "unknown command "+req.Command, nil)
	}
}
