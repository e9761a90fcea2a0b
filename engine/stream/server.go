package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-trackball/engine/camera"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	writeTimeout    = 2 * time.Second
	shutdownTimeout = 5 * time.Second
	poolQueueSize   = 256
	poolIdleTimeout = time.Second
)

// client is one websocket subscriber. Writes are serialized by mu, and
// lastSequence keeps late workers from overwriting a newer pose with an older one.
type client struct {
	id   int
	conn *websocket.Conn

	mu           sync.Mutex
	lastSequence uint64
	sent         bool
}

func (c *client) write(sequence uint64, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sent && sequence <= c.lastSequence {
		return nil
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return err
	}
	c.lastSequence = sequence
	c.sent = true
	return nil
}

// Server broadcasts camera poses to websocket clients.
// Publish never blocks on the network: each client write is a task on a worker pool.
type Server struct {
	address  string
	workers  int
	upgrader websocket.Upgrader

	pool worker.DynamicWorkerPool

	mu      *sync.Mutex
	clients map[int]*client
	nextID  int

	latest        []byte
	latestSeq     uint64
	hasLatest     bool
	sequence      atomic.Uint64
	taskIDCounter atomic.Int64
}

// ServerOption is a functional option for configuring a Server.
type ServerOption func(*Server)

// NewServer creates a Server. Defaults: address ":8080", 4 workers.
//
// Parameters:
//   - options: functional options to configure the server
//
// Returns:
//   - *Server: the server (not yet listening)
func NewServer(options ...ServerOption) *Server {
	s := &Server{
		address: ":8080",
		workers: 4,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		mu:      &sync.Mutex{},
		clients: make(map[int]*client),
	}
	for _, option := range options {
		option(s)
	}
	if s.workers <= 0 {
		s.workers = 1
	}
	s.pool = worker.NewDynamicWorkerPool(s.workers, poolQueueSize, poolIdleTimeout)
	return s
}

// WithAddress sets the listen address used by Run.
//
// Parameters:
//   - address: host:port to listen on
//
// Returns:
//   - ServerOption: functional option to set the address
func WithAddress(address string) ServerOption {
	return func(s *Server) {
		s.address = address
	}
}

// WithWorkers sets the number of goroutines writing to clients.
//
// Parameters:
//   - workers: pool size (values <= 0 become 1)
//
// Returns:
//   - ServerOption: functional option to set the pool size
func WithWorkers(workers int) ServerOption {
	return func(s *Server) {
		s.workers = workers
	}
}

// Address returns the configured listen address.
func (s *Server) Address() string {
	return s.address
}

// Handler returns the websocket endpoint. Mount it anywhere; Run mounts it at "/".
//
// Returns:
//   - http.Handler: the upgrade handler
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.serveWS)
}

// Clients returns the number of connected subscribers.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// PublishCamera publishes the camera's current pose with the next sequence number.
// Wire it to a TrackballController change listener.
//
// Parameters:
//   - cam: the camera to snapshot
func (s *Server) PublishCamera(cam camera.Camera) {
	s.Publish(PoseOf(s.sequence.Add(1), cam))
}

// Publish fans a pose out to every client. Poses older than the newest published one
// are not remembered for late joiners and are dropped per client if a newer pose already went out.
//
// Parameters:
//   - pose: the pose to send
func (s *Server) Publish(pose Pose) {
	payload, err := json.Marshal(pose)
	if err != nil {
		slog.Error("failed to encode pose", "sequence", pose.Sequence, "error", err)
		return
	}

	s.mu.Lock()
	if !s.hasLatest || pose.Sequence > s.latestSeq {
		s.latest = payload
		s.latestSeq = pose.Sequence
		s.hasLatest = true
	}
	targets := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		targets = append(targets, c)
	}
	s.mu.Unlock()

	for _, c := range targets {
		s.submitWrite(c, pose.Sequence, payload)
	}
}

func (s *Server) submitWrite(c *client, sequence uint64, payload []byte) {
	s.pool.SubmitTask(worker.Task{
		ID: int(s.taskIDCounter.Add(1)),
		Do: func() (any, error) {
			if err := c.write(sequence, payload); err != nil {
				slog.Warn("dropping stream client", "client", c.id, "error", err)
				s.drop(c)
			}
			return nil, nil
		},
	})
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	s.mu.Lock()
	c := &client{id: s.nextID, conn: conn}
	s.nextID++
	s.clients[c.id] = c
	latest, latestSeq, hasLatest := s.latest, s.latestSeq, s.hasLatest
	s.mu.Unlock()

	slog.Info("stream client connected", "client", c.id, "remote", r.RemoteAddr)

	if hasLatest {
		if err := c.write(latestSeq, latest); err != nil {
			slog.Warn("dropping stream client", "client", c.id, "error", err)
			s.drop(c)
			return
		}
	}

	// Clients only listen; reading keeps control frames flowing and detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	s.drop(c)
}

// drop unregisters and closes a client. Safe to call more than once.
func (s *Server) drop(c *client) {
	s.mu.Lock()
	_, ok := s.clients[c.id]
	delete(s.clients, c.id)
	s.mu.Unlock()

	if ok {
		c.conn.Close()
		slog.Info("stream client disconnected", "client", c.id)
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
//
// Parameters:
//   - ctx: cancellation
//
// Returns:
//   - error: listen or serve error; nil after a clean shutdown
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.address, err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on an existing listener until ctx is cancelled, then closes every client.
//
// Parameters:
//   - ctx: cancellation
//   - listener: the listener to accept on; closed on return
//
// Returns:
//   - error: serve error; nil after a clean shutdown
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/", s.Handler())
	httpServer := &http.Server{Handler: mux}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("pose stream listening", "address", listener.Addr().String())
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("pose stream: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		// Hijacked websocket connections are not tracked by Shutdown.
		s.closeAll()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) closeAll() {
	s.mu.Lock()
	clients := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		s.drop(c)
	}
}
