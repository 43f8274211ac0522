package app

import (
	"context"
	"time"

	mediarmv1 "mediarm/api/mediarmv1"
	"mediarm/internal/registry"
)

// PolicyView mirrors the daemon's current policy flags for display.
type PolicyView struct {
	SupportsMultipleSecureCodecs     bool
	SupportsSecureWithNonSecureCodec bool
}

// ConfigGet reads the daemon's current policy without changing it.
func (a *App) ConfigGet(ctx context.Context, timeout time.Duration) (PolicyView, error) {
	var view PolicyView
	err := a.withClient(ctx, timeout, func(ctx context.Context, client mediarmv1.MediaResourceManagerClient) error {
		resp, err := client.Config(ctx, &mediarmv1.ConfigRequest{})
		if err != nil {
			return err
		}
		view = policyViewFromProto(resp.Policies)
		return nil
	})
	return view, err
}

// ConfigSet applies the given policy entries and returns the policy the
// daemon reports in effect afterward.
func (a *App) ConfigSet(ctx context.Context, timeout time.Duration, multipleSecure, secureWithNonSecure *bool) (PolicyView, error) {
	var entries []mediarmv1.PolicyEntry
	if multipleSecure != nil {
		entries = append(entries, mediarmv1.PolicyEntry{Key: string(registry.SupportsMultipleSecureCodecs), Value: boolToU64(*multipleSecure)})
	}
	if secureWithNonSecure != nil {
		entries = append(entries, mediarmv1.PolicyEntry{Key: string(registry.SupportsSecureWithNonSecureCodec), Value: boolToU64(*secureWithNonSecure)})
	}

	var view PolicyView
	err := a.withClient(ctx, timeout, func(ctx context.Context, client mediarmv1.MediaResourceManagerClient) error {
		resp, err := client.Config(ctx, &mediarmv1.ConfigRequest{Policies: entries})
		if err != nil {
			return err
		}
		view = policyViewFromProto(resp.Policies)
		return nil
	})
	return view, err
}

func policyViewFromProto(policies []mediarmv1.PolicyEntry) PolicyView {
	view := PolicyView{SupportsMultipleSecureCodecs: true, SupportsSecureWithNonSecureCodec: true}
	for _, p := range policies {
		switch registry.PolicyKey(p.Key) {
		case registry.SupportsMultipleSecureCodecs:
			view.SupportsMultipleSecureCodecs = p.Value != 0
		case registry.SupportsSecureWithNonSecureCodec:
			view.SupportsSecureWithNonSecureCodec = p.Value != 0
		}
	}
	return view
}

func boolToU64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
