package app

import (
	"context"
	"fmt"
	"time"

	mediarmv1 "mediarm/api/mediarmv1"
)

// Ping contacts the daemon with an empty Config RPC and reports the policy
// it echoes back. There is no dedicated health-check RPC on the wire; an
// empty ConfigRequest is a side-effect-free read, which is exactly what a
// liveness probe needs.
func (a *App) Ping(ctx context.Context, timeout time.Duration) (string, error) {
	var summary string
	err := a.withClient(ctx, timeout, func(ctx context.Context, client mediarmv1.MediaResourceManagerClient) error {
		resp, err := client.Config(ctx, &mediarmv1.ConfigRequest{})
		if err != nil {
			return fmt.Errorf("daemon config RPC failed: %w", err)
		}
		summary = formatPolicies(resp.Policies)
		return nil
	})
	if err != nil {
		return "", err
	}
	return summary, nil
}

func formatPolicies(policies []mediarmv1.PolicyEntry) string {
	if len(policies) == 0 {
		return "ok"
	}
	out := "ok"
	for _, p := range policies {
		out += fmt.Sprintf(" %s=%d", p.Key, p.Value)
	}
	return out
}
