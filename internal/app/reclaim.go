package app

import (
	"context"
	"time"

	mediarmv1 "mediarm/api/mediarmv1"
)

// Reclaim issues a manual ReclaimResource call on behalf of callingPid,
// asking to free up the given resources, and reports whether the daemon
// found and evicted a victim.
func (a *App) Reclaim(ctx context.Context, timeout time.Duration, callingPid int, resources []Resource) (bool, error) {
	var success bool
	err := a.withClient(ctx, timeout, func(ctx context.Context, client mediarmv1.MediaResourceManagerClient) error {
		resp, err := client.ReclaimResource(ctx, &mediarmv1.ReclaimRequest{
			CallingPid: int32(callingPid),
			Resources:  resourcesToProto(resources),
		})
		if err != nil {
			return err
		}
		success = resp.Success
		return nil
	})
	return success, err
}
