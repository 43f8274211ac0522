package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"mediarm/internal/app"
)

type stubController struct {
	pingFunc      func(ctx context.Context, timeout time.Duration) (string, error)
	configGetFunc func(ctx context.Context, timeout time.Duration) (app.PolicyView, error)
	configSetFunc func(ctx context.Context, timeout time.Duration, multipleSecure, secureWithNonSecure *bool) (app.PolicyView, error)
	registerFunc  func(ctx context.Context, pid int, resources []app.Resource) (*app.RegisteredClient, error)
	reclaimFunc   func(ctx context.Context, timeout time.Duration, callingPid int, resources []app.Resource) (bool, error)
	snapshotFunc  func(ctx context.Context, timeout time.Duration) ([]app.ProcessView, error)
}

func (s *stubController) Ping(ctx context.Context, timeout time.Duration) (string, error) {
	if s.pingFunc != nil {
		return s.pingFunc(ctx, timeout)
	}
	return "", errors.New("ping not implemented")
}

func (s *stubController) ConfigGet(ctx context.Context, timeout time.Duration) (app.PolicyView, error) {
	if s.configGetFunc != nil {
		return s.configGetFunc(ctx, timeout)
	}
	return app.PolicyView{}, errors.New("config get not implemented")
}

func (s *stubController) ConfigSet(ctx context.Context, timeout time.Duration, multipleSecure, secureWithNonSecure *bool) (app.PolicyView, error) {
	if s.configSetFunc != nil {
		return s.configSetFunc(ctx, timeout, multipleSecure, secureWithNonSecure)
	}
	return app.PolicyView{}, errors.New("config set not implemented")
}

func (s *stubController) Register(ctx context.Context, pid int, resources []app.Resource) (*app.RegisteredClient, error) {
	if s.registerFunc != nil {
		return s.registerFunc(ctx, pid, resources)
	}
	return nil, errors.New("register not implemented")
}

func (s *stubController) Reclaim(ctx context.Context, timeout time.Duration, callingPid int, resources []app.Resource) (bool, error) {
	if s.reclaimFunc != nil {
		return s.reclaimFunc(ctx, timeout, callingPid, resources)
	}
	return false, errors.New("reclaim not implemented")
}

func (s *stubController) Snapshot(ctx context.Context, timeout time.Duration) ([]app.ProcessView, error) {
	if s.snapshotFunc != nil {
		return s.snapshotFunc(ctx, timeout)
	}
	return nil, errors.New("snapshot not implemented")
}

func (s *stubController) Status() (app.DaemonStatus, error) {
	panic("Status not implemented")
}

func (s *stubController) StopDaemon(force bool) error {
	panic("StopDaemon not implemented")
}

func (s *stubController) StartDaemon() (*app.DaemonHandle, error) {
	panic("StartDaemon not implemented")
}

func withController(t *testing.T, stub controllerAPI) {
	t.Helper()
	origFactory := controllerFactory
	controllerFactory = func() controllerAPI {
		return stub
	}
	t.Cleanup(func() {
		controllerFactory = origFactory
	})
}
