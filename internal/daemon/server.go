package daemon

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"syscall"
	"time"

	mediarmv1 "mediarm/api/mediarmv1"
	"mediarm/internal/config"
	"mediarm/internal/metrics"
	"mediarm/internal/priority"
	"mediarm/internal/reclaim"
	"mediarm/internal/registry"

	"google.golang.org/grpc"
)

// Server wraps the UNIX listener and the gRPC server bound to it.
type Server struct {
	ln   net.Listener
	grpc *grpc.Server
	path string
	reg  *registry.Registry
}

// Registry exposes the server's registry for the watch TUI and metrics
// polling loop when both are hosted in the same process (mediarmctl watch
// still goes over gRPC; this is only used by in-process embedding, if any).
func (s *Server) Registry() *registry.Registry { return s.reg }

// Close stops the gRPC server, closes the listener and unlinks the socket.
func (s *Server) Close() error {
	if s.grpc != nil {
		s.grpc.GracefulStop()
	}
	if s.path != "" {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return RemovePID()
}

// StartDaemon binds the UNIX socket, wires the registry/oracle/reclaim
// engine/Prometheus collector into a MediaResourceManager service, applies
// cfg's initial policy, and starts serving.
func StartDaemon(cfg config.Config) (*Server, error) {
	if err := EnsureRuntimeDir(); err != nil {
		return nil, err
	}
	path := SocketPath()

	// If a stale socket file exists but no daemon answers on it, remove it.
	if _, err := os.Stat(path); err == nil && !IsRunning() {
		if err := os.Remove(path); err != nil {
			return nil, err
		}
	}

	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	if err := os.Chmod(path, 0o600); err != nil {
		ln.Close()
		return nil, err
	}

	reg := registry.New()
	reg.Config([]registry.PolicyEntry{
		{Key: registry.SupportsMultipleSecureCodecs, Value: boolToPolicyValue(cfg.SupportsMultipleSecureCodecs)},
		{Key: registry.SupportsSecureWithNonSecureCodec, Value: boolToPolicyValue(cfg.SupportsSecureWithNonSecureCodec)},
	})

	oracle := priority.SyscallOracle{}
	collector := metrics.New()
	engine := reclaim.New(reg, oracle, collector)
	svc := newService(reg, oracle, engine)

	grpcServer := grpc.NewServer()
	mediarmv1.RegisterMediaResourceManagerServer(grpcServer, svc)

	s := &Server{ln: ln, grpc: grpcServer, path: path, reg: reg}
	if err := WritePID(os.Getpid()); err != nil {
		s.Close()
		return nil, err
	}
	go func() {
		if err := grpcServer.Serve(ln); err != nil {
			// Serve returns nil on GracefulStop; anything else is a real error.
			log.Printf("daemon: serve: %v", err)
		}
	}()
	return s, nil
}

func boolToPolicyValue(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// StopRunningDaemon sends a termination signal to the currently running daemon if any.
func StopRunningDaemon(force bool) error {
	pid, err := RunningPID()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if IsRunning() {
				return fmt.Errorf("daemon is running but PID file %q is missing; stop it manually", PIDPath())
			}
			return nil
		}
		return fmt.Errorf("unable to read daemon PID: %w", err)
	}
	if pid == os.Getpid() {
		return errors.New("refusing to stop current process")
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	logActiveReclaims()
	if err := sendSignal(proc, syscall.SIGTERM); err != nil {
		return err
	}
	if waitForShutdown(3 * time.Second) {
		return nil
	}
	if !force {
		return fmt.Errorf("daemon process %d did not exit after SIGTERM", pid)
	}
	if err := sendSignal(proc, syscall.SIGKILL); err != nil {
		return err
	}
	if waitForShutdown(2 * time.Second) {
		return nil
	}
	return fmt.Errorf("daemon process %d did not exit after SIGKILL", pid)
}

// logActiveReclaims dials the running daemon and reports how many
// ReclaimResource calls are currently blocked on victim callbacks, so an
// operator sending SIGTERM knows whether they're interrupting in-flight
// arbitration. Best-effort: the graceful shutdown SIGTERM triggers still
// gives grpc.Server.GracefulStop time to let those calls finish on their
// own, so a failed probe here isn't fatal to the stop.
func logActiveReclaims() {
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	client, conn, err := Dial(ctx)
	if err != nil {
		return
	}
	defer conn.Close()

	resp, err := client.Snapshot(ctx, &mediarmv1.SnapshotRequest{})
	if err != nil {
		return
	}
	if resp.ActiveReclaims > 0 {
		log.Printf("daemon: stopping with %d reclaim call(s) still in flight; graceful stop will let them finish", resp.ActiveReclaims)
	}
}

func sendSignal(proc *os.Process, sig syscall.Signal) error {
	if err := proc.Signal(sig); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			_ = RemovePID()
			return nil
		}
		return err
	}
	return nil
}

func waitForShutdown(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if !IsRunning() {
			_ = RemovePID()
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(100 * time.Millisecond)
	}
}
