package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/xhad/copyscan/internal/models"
	"github.com/xhad/copyscan/pkg/detector"
	"github.com/xhad/copyscan/pkg/ingest"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Be careful with this in production
	},
}

const (
	TypeCheck      = "check"
	TypeStatus     = "status"
	TypeDiagnostic = "diagnostic"
	TypeResult     = "result"
	TypeError      = "error"
	TypeDone       = "done"
)

type Message struct {
	Type    string      `json:"type"`
	Content string      `json:"content"`
	Data    interface{} `json:"data,omitempty"`
}

// CheckRequest is the data of a check message. Binary modalities carry
// base64 in the message content.
type CheckRequest struct {
	Modality string `json:"modality"`
}

type WSServer struct {
	detector *detector.Detector
	logger   *slog.Logger
}

func NewWSServer(det *detector.Detector, logger *slog.Logger) *WSServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &WSServer{
		detector: det,
		logger:   logger.With("component", "server"),
	}
}

// Handler serves /ws and /health.
func (s *WSServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return mux
}

// ListenAndServe runs until ctx is cancelled.
func (s *WSServer) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting websocket server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// conn serializes writes; gorilla connections allow one concurrent writer.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) send(msgType, content string, data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(Message{Type: msgType, Content: content, Data: data})
}

func (s *WSServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := &conn{ws: ws}
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		_, message, err := ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("error reading message", "error", err)
			}
			cancel()
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			s.logger.Debug("error unmarshaling message", "error", err)
			s.sendMessage(c, TypeError, fmt.Sprintf("invalid message: %v", err), nil)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handleMessage(ctx, c, msg)
		}()
	}
}

func (s *WSServer) handleMessage(ctx context.Context, c *conn, msg Message) {
	if msg.Type != TypeCheck {
		s.sendMessage(c, TypeError, fmt.Sprintf("unknown message type %q", msg.Type), nil)
		return
	}

	sub, err := submissionFrom(msg)
	if err != nil {
		s.sendMessage(c, TypeError, err.Error(), nil)
		return
	}

	det := s.detector.Observed(&streamMonitor{server: s, conn: c})
	report, err := det.Check(ctx, sub)
	if err != nil {
		s.sendMessage(c, TypeError, err.Error(), nil)
		return
	}

	for _, result := range report.Results {
		s.sendMessage(c, TypeResult, result.URL, result)
	}
	s.sendMessage(c, TypeDone, report.Summary(), report)
}

func submissionFrom(msg Message) (detector.Submission, error) {
	req := CheckRequest{Modality: "text"}
	if msg.Data != nil {
		raw, err := json.Marshal(msg.Data)
		if err != nil {
			return detector.Submission{}, err
		}
		if err := json.Unmarshal(raw, &req); err != nil {
			return detector.Submission{}, fmt.Errorf("invalid check data: %w", err)
		}
	}

	modality, err := ingest.ModalityFromHint(req.Modality)
	if err != nil {
		return detector.Submission{}, err
	}

	if modality == models.ModalityPlainText {
		return detector.Submission{Data: []byte(msg.Content), Modality: modality}, nil
	}

	data, err := base64.StdEncoding.DecodeString(msg.Content)
	if err != nil {
		return detector.Submission{}, fmt.Errorf("%s content must be base64: %w", modality, err)
	}
	return detector.Submission{Data: data, Modality: modality}, nil
}

func (s *WSServer) sendMessage(c *conn, msgType, content string, data interface{}) {
	if err := c.send(msgType, content, data); err != nil {
		s.logger.Debug("error sending message", "type", msgType, "error", err)
	}
}

// streamMonitor forwards pipeline progress to one websocket client.
type streamMonitor struct {
	server *WSServer
	conn   *conn
}

func (m *streamMonitor) Start(reportID string, input models.NormalizedInput) {
	m.server.sendMessage(m.conn, TypeStatus, "checking submission", map[string]string{
		"id":       reportID,
		"modality": input.Modality.String(),
		"language": input.Language,
	})
}

func (m *streamMonitor) AfterQuery(query models.Query) {
	m.server.sendMessage(m.conn, TypeStatus, "searching for candidate pages", map[string]bool{
		"truncated": query.Truncated,
	})
}

func (m *streamMonitor) AfterRetrieval(candidates []models.Candidate) {
	m.server.sendMessage(m.conn, TypeStatus, fmt.Sprintf("retrieved %d candidates", len(candidates)), nil)
}

func (m *streamMonitor) CandidateScored(result models.SimilarityResult) {
	m.server.sendMessage(m.conn, TypeStatus, fmt.Sprintf("scored %s", result.URL), map[string]float64{
		"score": result.Score,
	})
}

func (m *streamMonitor) Diagnostic(d models.Diagnostic) {
	m.server.sendMessage(m.conn, TypeDiagnostic, d.Message, d)
}

func (m *streamMonitor) Finish(*models.Report) {}
