package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	mediarmv1 "mediarm/api/mediarmv1"
)

// RegisteredClient is a live synthetic client opened by Register: its
// RegisterCallback stream stays connected and auto-acknowledges every
// reclaim request the daemon sends, mirroring what a real media codec
// client would do on receiving onReclaimResource.
type RegisteredClient struct {
	ClientID int64
	cancel   context.CancelFunc
	done     chan struct{}
}

// Close tears down the callback stream, which the daemon observes as the
// client disconnecting.
func (r *RegisteredClient) Close() {
	if r == nil {
		return
	}
	r.cancel()
	<-r.done
}

// Register dials the daemon, opens a callback stream identifying a new
// synthetic client, registers the given resources against pid on that
// client's behalf, and leaves the stream open so the daemon can reclaim
// from it later.
func (a *App) Register(ctx context.Context, pid int, resources []Resource) (*RegisteredClient, error) {
	if pid <= 0 {
		return nil, errors.New("pid must be positive")
	}
	if !daemonIsRunning() {
		return nil, errors.New("daemon is not running")
	}

	client, conn, err := dialDaemonClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect to daemon: %w", err)
	}

	streamCtx, cancel := context.WithCancel(context.Background())
	stream, err := client.RegisterCallback(streamCtx)
	if err != nil {
		cancel()
		if conn != nil {
			conn.Close()
		}
		return nil, fmt.Errorf("open callback stream: %w", err)
	}

	clientID := time.Now().UnixNano()
	if err := stream.Send(&mediarmv1.CallbackEnvelope{Kind: mediarmv1.CallbackHello, ClientId: clientID}); err != nil {
		cancel()
		if conn != nil {
			conn.Close()
		}
		return nil, fmt.Errorf("send hello: %w", err)
	}

	rc := &RegisteredClient{ClientID: clientID, cancel: cancel, done: make(chan struct{})}
	go rc.autoAck(stream)

	addCtx, addCancel := context.WithTimeout(ctx, 5*time.Second)
	defer addCancel()
	_, err = client.AddResource(addCtx, &mediarmv1.AddResourceRequest{
		Pid:       int32(pid),
		ClientId:  clientID,
		Resources: resourcesToProto(resources),
	})
	if err != nil {
		rc.Close()
		if conn != nil {
			conn.Close()
		}
		return nil, fmt.Errorf("add resource: %w", err)
	}

	go func() {
		<-rc.done
		if conn != nil {
			conn.Close()
		}
	}()

	return rc, nil
}

func (r *RegisteredClient) autoAck(stream mediarmv1.MediaResourceManager_RegisterCallbackClient) {
	defer close(r.done)
	for {
		env, err := stream.Recv()
		if err == io.EOF || errors.Is(err, context.Canceled) {
			return
		}
		if err != nil {
			log.Printf("app: callback stream for client %d ended: %v", r.ClientID, err)
			return
		}
		if env.Kind != mediarmv1.CallbackAsk {
			continue
		}
		ack := &mediarmv1.CallbackEnvelope{Kind: mediarmv1.CallbackAck, ClientId: r.ClientID, RequestId: env.RequestId, Success: true}
		if err := stream.Send(ack); err != nil {
			log.Printf("app: ack send failed for client %d: %v", r.ClientID, err)
			return
		}
	}
}
