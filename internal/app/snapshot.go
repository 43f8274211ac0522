package app

import (
	"context"
	"time"

	mediarmv1 "mediarm/api/mediarmv1"
)

// Snapshot lists every process currently tracked by the registry, for the
// watch TUI and any one-shot introspection command.
func (a *App) Snapshot(ctx context.Context, timeout time.Duration) ([]ProcessView, error) {
	var views []ProcessView
	err := a.withClient(ctx, timeout, func(ctx context.Context, client mediarmv1.MediaResourceManagerClient) error {
		resp, err := client.Snapshot(ctx, &mediarmv1.SnapshotRequest{})
		if err != nil {
			return err
		}
		views = make([]ProcessView, 0, len(resp.Processes))
		for _, p := range resp.Processes {
			views = append(views, processViewFromProto(p))
		}
		return nil
	})
	return views, err
}
