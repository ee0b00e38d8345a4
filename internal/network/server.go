package network

import (
	"bufio"
	"context"
	"log/slog"
	"net"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/statuscore/livequery/internal/query"
)

// MaxConnections bounds how many client connections are served at once;
// further accepts wait until a slot frees up.
const MaxConnections = 64

// Server accepts client connections and runs the line-based query
// protocol: one request per blank-line-terminated block, one framed
// response per request, until the client closes the connection.
type Server struct {
	executor *query.Executor
	slots    *semaphore.Weighted
}

func NewServer(executor *query.Executor) *Server {
	return &Server{
		executor: executor,
		slots:    semaphore.NewWeighted(MaxConnections),
	}
}

// Serve runs the accept loop until the context is cancelled or the
// listener fails.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	slog.Info("query server listening", "addr", ln.Addr().String())

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Error("accept failed", "error", err)
			continue
		}

		if err := s.slots.Acquire(ctx, 1); err != nil {
			conn.Close()
			return err
		}
		go func() {
			defer s.slots.Release(1)
			s.handleConnection(conn)
		}()
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	connID := uuid.New().String()
	slog.Info("client connected", "conn_id", connID, "remote", conn.RemoteAddr().String())

	reader := bufio.NewReader(conn)
	for {
		request, err := readRequest(reader)
		if err != nil {
			slog.Info("client disconnected", "conn_id", connID)
			return
		}
		if strings.TrimSpace(request) == "" {
			continue
		}

		resp := s.executor.Execute(request)
		if err := resp.WriteTo(conn); err != nil {
			slog.Error("write response failed", "conn_id", connID, "error", err)
			return
		}
	}
}

// readRequest collects header lines until a blank line or EOF. EOF with
// nothing pending ends the session.
func readRequest(r *bufio.Reader) (string, error) {
	var b strings.Builder
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if b.Len() == 0 && line == "" {
				return "", err
			}
			b.WriteString(line)
			return b.String(), nil
		}
		if strings.TrimSpace(line) == "" {
			return b.String(), nil
		}
		b.WriteString(line)
	}
}
