package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	mediarmv1 "mediarm/api/mediarmv1"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
)

// maxSnapshotRecvBytes overrides grpc-go's 4MiB default receive limit for
// every call made through a Dial'd connection. Snapshot is the one RPC whose
// response size scales with live state (one entry per registered process,
// nested per client, nested per resource); a busy arbiter can plausibly
// exceed 4MiB long before it exceeds any other RPC's response size.
const maxSnapshotRecvBytes = 16 << 20

// Dial opens a gRPC connection to the daemon over the UNIX socket. The
// connection is configured with this service's own wire defaults — the JSON
// content-subtype codec (api/mediarmv1 has no protobuf generated code to
// negotiate) and a raised receive limit for Snapshot — so callers never need
// to repeat them per RPC.
func Dial(ctx context.Context) (mediarmv1.MediaResourceManagerClient, *grpc.ClientConn, error) {
	target := socketTarget()
	conn, err := grpc.NewClient(
		target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithContextDialer(unixDialer),
		grpc.WithDefaultCallOptions(
			mediarmv1.WithJSONCodec(),
			grpc.MaxCallRecvMsgSize(maxSnapshotRecvBytes),
		),
	)
	if err != nil {
		return nil, nil, err
	}
	conn.Connect()
	if err := waitForReady(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return mediarmv1.NewMediaResourceManagerClient(conn), conn, nil
}

func socketTarget() string {
	path := SocketPath()
	if trimmed, ok := strings.CutPrefix(path, "/"); ok {
		return "unix:///" + trimmed
	}
	return "unix://" + path
}

func unixDialer(ctx context.Context, addr string) (net.Conn, error) {
	if trimmed, ok := strings.CutPrefix(addr, "unix://"); ok {
		addr = trimmed
	}
	if addr == "" {
		addr = SocketPath()
	}
	var d net.Dialer
	return d.DialContext(ctx, "unix", addr)
}

func waitForReady(ctx context.Context, conn *grpc.ClientConn) error {
	for {
		switch state := conn.GetState(); state {
		case connectivity.Ready:
			return nil
		case connectivity.Shutdown:
			return errors.New("grpc connection is shut down")
		default:
			if !conn.WaitForStateChange(ctx, state) {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("grpc connection stuck in state %s", state.String())
			}
		}
	}
}
