package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/toastify-dev/toastify/internal/errors"
	"github.com/toastify-dev/toastify/pkg/dom"
	"github.com/toastify-dev/toastify/pkg/frame"
	"github.com/toastify-dev/toastify/pkg/middleware"
	"github.com/toastify-dev/toastify/pkg/protocol"
	"github.com/toastify-dev/toastify/pkg/toast"
)

// noRender forces the first flush to send the (possibly empty) body so a
// reconnecting client drops markup from its previous session.
const noRender = ^uint64(0)

// Session is one connected browser tab.
type Session struct {
	ID        string
	CreatedAt time.Time

	conn   *websocket.Conn
	srv    *Server
	doc    *dom.Document
	loop   *frame.Loop
	logger *slog.Logger

	handler middleware.Handler
	send    chan []byte

	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
	onClose   func(*Session)

	// Owned by the loop goroutine.
	toasts   map[string]*toast.Toast
	rendered uint64
	seq      uint64
}

func newSession(srv *Server, conn *websocket.Conn) *Session {
	id := uuid.NewString()
	logger := srv.logger.With("session_id", id)
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		conn:      conn,
		srv:       srv,
		doc:       dom.NewDocument(),
		logger:    logger,
		send:      make(chan []byte, srv.config.SendBuffer),
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
		toasts:    make(map[string]*toast.Toast),
		rendered:  noRender,
	}
	s.loop = frame.NewLoop(frame.LoopConfig{Rate: srv.config.FrameRate, Logger: logger})
	s.loop.SetSuspended(func() bool { return s.doc.Visibility() == dom.Hidden })
	s.loop.SetAfterFrame(func(time.Duration) { s.flush() })

	mws := append([]middleware.Middleware{middleware.Logging(logger)}, srv.middleware...)
	s.handler = middleware.Chain(s.handle, mws...)
	return s
}

// Start runs the frame loop and both connection pumps.
func (s *Session) Start() {
	go func() {
		if err := s.loop.Run(s.ctx); err != nil && err != context.Canceled {
			s.logger.Error("frame loop stopped", "error", err)
		}
	}()
	go s.readLoop()
	go s.writeLoop()
	s.loop.Post(s.flush)
}

// Done is closed when the session has closed.
func (s *Session) Done() <-chan struct{} { return s.done }

// Show creates a toast on the session's loop. It returns false when the
// session is closed or its queue is full.
func (s *Session) Show(opts ...toast.Option) bool {
	return s.loop.Post(func() {
		s.show(opts)
		s.flush()
	})
}

// Close ends the session. It is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.cancel()
		_ = s.conn.Close()
		if s.onClose != nil {
			s.onClose(s)
		}
		s.logger.Info("session closed")
	})
}

func (s *Session) host() toast.Host {
	icons, defaults := s.srv.widgetDefaults()
	observers := []toast.Observer{sessionObserver{s}}
	if s.srv.metrics != nil {
		observers = append(observers, s.srv.metrics)
	}
	return toast.Host{
		Document: s.doc,
		Frames:   s.loop,
		Icons:    icons,
		Defaults: defaults,
		Observer: toast.MultiObserver(observers...),
		Logger:   s.logger,
	}
}

func (s *Session) show(opts []toast.Option) *toast.Toast {
	t := toast.New(s.host(), opts...)
	s.toasts[t.ID()] = t
	return t
}

// handle applies one client message. Loop goroutine only.
func (s *Session) handle(_ context.Context, call *middleware.Call) error {
	msg := call.Message
	switch msg.Type {
	case protocol.TypeShow:
		opts, err := msg.ToastOptions()
		if err != nil {
			return err
		}
		t := s.show(opts)
		s.enqueue(protocol.Shown(msg.Ref, t.ID()))

	case protocol.TypeUpdate:
		t, err := s.lookup(msg.ID)
		if err != nil {
			return err
		}
		opts, err := msg.ToastOptions()
		if err != nil {
			return err
		}
		t.Update(opts...)

	case protocol.TypeRemove:
		t, err := s.lookup(msg.ID)
		if err != nil {
			return err
		}
		t.Remove()

	case protocol.TypeEvent:
		el := s.doc.ElementByID(msg.ID)
		if el == nil {
			return errors.New("T203").WithField(msg.ID)
		}
		el.Dispatch(msg.Event)

	case protocol.TypeVisibility:
		s.doc.SetVisibility(msg.Visibility())

	default:
		return errors.New("T201").WithField(string(msg.Type))
	}
	return nil
}

func (s *Session) lookup(id string) (*toast.Toast, error) {
	t, ok := s.toasts[id]
	if !ok {
		return nil, errors.New("T202").WithField(id)
	}
	return t, nil
}

// flush sends the body markup if the document changed since the last
// render. Loop goroutine only.
func (s *Session) flush() {
	v := s.doc.Version()
	if v == s.rendered {
		return
	}
	s.rendered = v
	s.seq++
	if s.enqueue(protocol.Render(s.seq, dom.InnerHTML(s.doc.Body))) && s.srv.metrics != nil {
		s.srv.metrics.RecordRender()
	}
}

// enqueue queues a message for the write pump. A client that cannot keep
// up is disconnected.
func (s *Session) enqueue(m *protocol.Message) bool {
	data, err := protocol.Encode(m)
	if err != nil {
		s.logger.Error("encode error", "type", m.Type, "error", err)
		return false
	}
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.send <- data:
		return true
	default:
		s.logger.Warn("send buffer full, closing session")
		s.recordWSError("backpressure")
		go s.Close()
		return false
	}
}

func (s *Session) readLoop() {
	defer s.Close()

	s.conn.SetReadLimit(protocol.MaxMessageSize)
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.srv.config.ReadTimeout))
	})

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.srv.config.ReadTimeout))
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
				s.recordWSError("read")
			}
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			s.logger.Warn("message decode error", "error", err)
			s.enqueue(protocol.Error(err))
			continue
		}

		call := &middleware.Call{SessionID: s.ID, Message: msg}
		posted := s.loop.Post(func() {
			if err := s.handler(s.ctx, call); err != nil {
				s.enqueue(protocol.Error(err))
			}
			s.flush()
		})
		if !posted {
			s.enqueue(protocol.Error(errors.New("T204")))
		}
	}
}

func (s *Session) writeLoop() {
	ticker := time.NewTicker(s.srv.config.ReadTimeout / 2)
	defer ticker.Stop()
	defer s.Close()

	for {
		select {
		case data := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(s.srv.config.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.logger.Error("write error", "error", err)
				s.recordWSError("write")
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(s.srv.config.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.recordWSError("ping")
				return
			}

		case <-s.done:
			return
		}
	}
}

func (s *Session) recordWSError(kind string) {
	if s.srv.metrics != nil {
		s.srv.metrics.RecordWebSocketError(kind)
	}
}

// sessionObserver forgets toasts once they leave the document.
type sessionObserver struct{ s *Session }

func (o sessionObserver) Shown(*toast.Toast)                     {}
func (o sessionObserver) Closing(*toast.Toast, toast.CloseReason) {}
func (o sessionObserver) Detached(t *toast.Toast)                { delete(o.s.toasts, t.ID()) }
