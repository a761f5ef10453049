package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"sort"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/Carbonetx/pkg/engine/heuristic"
	"go.uber.org/zap"
)

// Session. one websocket client streaming a solve.
type Session struct {
	io   sync.Mutex
	conn net.Conn

	id  uint
	hub *Hub
}

// readRequest. next data frame decoded as a solve request, control frames are answered in between
func (s *Session) readRequest() (*solveRequest, error) {
	s.io.Lock()
	defer s.io.Unlock()

	for {
		h, r, err := wsutil.NextReader(s.conn, ws.StateServerSide)
		if err != nil {
			return nil, err
		}
		if h.OpCode.IsControl() {
			if err := wsutil.ControlFrameHandler(s.conn, ws.StateServerSide)(h, r); err != nil {
				return nil, err
			}
			continue
		}

		req := &solveRequest{}
		decoder := json.NewDecoder(r)
		if err := decoder.Decode(req); err != nil {
			return nil, err
		}
		// rest of the frame, so the next header read starts on a frame boundary
		if _, err := io.Copy(io.Discard, r); err != nil {
			return nil, err
		}
		return req, nil
	}
}

// watchClose. cancels the running solve once the client sends a close frame or the connection breaks.
// the client sends nothing else after its request, other frames are skipped.
func (s *Session) watchClose(cancel context.CancelFunc) {
	defer cancel()
	for {
		h, err := ws.ReadHeader(s.conn)
		if err != nil || h.OpCode == ws.OpClose {
			return
		}
		if _, err := io.CopyN(io.Discard, s.conn, h.Length); err != nil {
			return
		}
	}
}

// Solve. reads one solve request, streams every committed iteration and finishes with the solution.
// the solve is cancelled when the client goes away or an iteration frame can not be written.
func (s *Session) Solve(ctx context.Context) error {
	req, err := s.readRequest()
	if err != nil {
		return err
	}
	defer s.close()

	if err := validateRequest(req); err != nil {
		return s.write(errorEnvelope(http.StatusBadRequest, err.Error()))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.watchClose(cancel)

	var writeErr error
	onIteration := func(it heuristic.Iteration) {
		if writeErr != nil {
			return
		}
		if writeErr = s.write(envelope{"iteration": it}); writeErr != nil {
			cancel()
		}
	}

	id, sol, err := s.hub.plannerService.Solve(ctx, req.Scenario, req.NumWorkers, onIteration)
	if writeErr != nil {
		return writeErr
	}

	resp := envelope{}
	if err != nil {
		resp = errorEnvelope(statusFor(err), err.Error())
	}
	if sol != nil {
		resp["data"] = NewSolveResponse(id, sol)
	}
	return s.write(resp)
}

func (s *Session) write(x interface{}) error {
	w := wsutil.NewWriter(s.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	s.io.Lock()
	defer s.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

func (s *Session) close() {
	s.io.Lock()
	defer s.io.Unlock()
	_ = ws.WriteFrame(s.conn, ws.NewCloseFrame(ws.NewCloseFrameBody(ws.StatusNormalClosure, "")))
}

// Hub. open streaming sessions, closed together on shutdown.
type Hub struct {
	mu  sync.RWMutex
	seq uint
	ss  []*Session
	ns  map[uint]*Session

	plannerService PlannerService
	log            *zap.Logger
}

func NewHub(plannerService PlannerService, log *zap.Logger) *Hub {
	return &Hub{
		ns:             make(map[uint]*Session),
		ss:             make([]*Session, 0),
		plannerService: plannerService,
		log:            log,
	}
}

func (h *Hub) Register(conn net.Conn) *Session {
	session := &Session{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	session.id = h.seq
	h.ns[session.id] = session
	h.ss = append(h.ss, session)

	h.seq++
	h.mu.Unlock()

	return session
}

// Remove. closes the session connection, ss stays sorted by id
func (h *Hub) Remove(session *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.ns[session.id]; !ok {
		return
	}
	delete(h.ns, session.id)

	i := sort.Search(len(h.ss), func(i int) bool {
		return h.ss[i].id >= session.id
	})

	newSs := make([]*Session, len(h.ss)-1)
	copy(newSs[:i], h.ss[:i])
	copy(newSs[i:], h.ss[i+1:])
	h.ss = newSs

	if err := session.conn.Close(); err != nil {
		h.log.Debug("close websocket connection", zap.Error(err))
	}
}

func (h *Hub) RemoveAllSessions() {
	h.mu.RLock()
	sessions := append([]*Session(nil), h.ss...)
	h.mu.RUnlock()

	for _, session := range sessions {
		h.Remove(session)
	}
}

func (h *Hub) NumSessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.ss)
}
