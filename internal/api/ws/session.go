package ws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/webdesk/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/webdesk/backend/internal/domain/interaction"
	"github.com/GriffinCanCode/webdesk/backend/internal/domain/terminal"
	"github.com/GriffinCanCode/webdesk/backend/internal/shared/utils"
)

var errDesktopGone = errors.New("desktop closed")

// session is one live stream. The frame loop is the only writer of data
// frames; the read loop only queues replies.
type session struct {
	deskID   string
	desk     *desktop.Desktop
	hub      *desktop.Hub
	conn     *websocket.Conn
	cfg      Config
	recorder Recorder
	logger   *zap.Logger
	frames   *utils.JSONSizeValidator

	out chan ServerMessage

	sent     uint64
	lastPing time.Time
}

func (s *session) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.conn.Close()

	s.conn.SetReadLimit(s.cfg.MaxMessageBytes)
	s.frames = utils.NewJSONSizeValidator(int(s.cfg.MaxMessageBytes))
	_ = s.conn.SetReadDeadline(time.Now().Add(2 * s.cfg.PingInterval))
	s.conn.SetPongHandler(func(string) error {
		s.desk.Touch()
		return s.conn.SetReadDeadline(time.Now().Add(2 * s.cfg.PingInterval))
	})

	go func() {
		defer cancel()
		s.readLoop(ctx)
	}()

	s.lastPing = time.Now()
	if err := s.pushView(); err != nil {
		return
	}

	interaction.RunFrames(ctx, s.cfg.FrameInterval, func() {
		if err := s.tick(time.Now()); err != nil {
			if errors.Is(err, errDesktopGone) {
				_ = s.write(errorMessage(err.Error()))
			} else {
				s.logger.Debug("stream write failed", zap.Error(err))
			}
			cancel()
		}
	})

	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(s.cfg.WriteTimeout))
}

// tick drains queued replies, commits pointer samples and pushes a view
// when the desktop changed since the last push.
func (s *session) tick(now time.Time) error {
	for drained := false; !drained; {
		select {
		case msg := <-s.out:
			if err := s.write(msg); err != nil {
				return err
			}
		default:
			drained = true
		}
	}

	s.desk.Frame()
	if s.desk.Version() != s.sent {
		if err := s.pushView(); err != nil {
			return err
		}
	}

	if now.Sub(s.lastPing) >= s.cfg.PingInterval {
		s.lastPing = now
		if _, err := s.hub.Get(s.deskID); err != nil {
			return errDesktopGone
		}
		if err := s.conn.WriteControl(websocket.PingMessage, nil, now.Add(s.cfg.WriteTimeout)); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) pushView() error {
	snap := s.desk.Snapshot()
	view := desktop.Render(snap)
	if err := s.write(ServerMessage{Type: TypeView, View: &view}); err != nil {
		return err
	}
	s.sent = snap.Version
	return nil
}

func (s *session) write(msg ServerMessage) error {
	data, err := sonic.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode %s: %w", msg.Type, err)
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout)); err != nil {
		return err
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	s.recorder.RecordWSMessage("out", msg.Type)
	return nil
}

// reply queues a message for the frame loop. Replies are dropped when the
// client is not draining them.
func (s *session) reply(ctx context.Context, msg ServerMessage) {
	select {
	case s.out <- msg:
	case <-ctx.Done():
	default:
		s.logger.Warn("reply queue full, dropping message", zap.String("type", msg.Type))
	}
}

func (s *session) readLoop(ctx context.Context) {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("stream read failed", zap.Error(err))
			}
			return
		}

		if err := s.frames.ValidateJSON(data); err != nil {
			s.recorder.RecordWSMessage("in", "invalid")
			s.reply(ctx, errorMessage("invalid message: "+err.Error()))
			continue
		}

		var msg ClientMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			s.recorder.RecordWSMessage("in", "invalid")
			s.reply(ctx, errorMessage("invalid message"))
			continue
		}
		s.recorder.RecordWSMessage("in", msg.Type)

		if err := s.apply(ctx, msg); err != nil {
			s.reply(ctx, errorMessage(err.Error()))
		}
	}
}

// apply routes one client message into the desktop.
func (s *session) apply(ctx context.Context, msg ClientMessage) error {
	switch msg.Type {
	case TypePointerDown, TypePointerMove, TypePointerUp:
		if err := utils.ValidatePoint(msg.X, msg.Y); err != nil {
			return err
		}
		_, err := s.desk.Pointer(msg.App, pointerEvent(msg))
		return err

	case TypeKey:
		return s.key(msg)

	case TypeInput:
		if err := utils.ValidateInput(msg.Value); err != nil {
			return err
		}
		s.desk.Terminal(terminal.InputChanged{Value: msg.Value})
		return nil

	case TypeScroll:
		s.desk.Terminal(terminal.ScrollBy{Lines: msg.Lines})
		return nil

	case TypeViewport:
		if err := utils.ValidateDimensions(msg.Width, msg.Height); err != nil {
			return err
		}
		return s.desk.SetViewport(msg.Width, msg.Height)

	case TypePing:
		s.desk.Touch()
		s.reply(ctx, ServerMessage{Type: TypePong})
		return nil

	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
}

func (s *session) key(msg ClientMessage) error {
	switch msg.Key {
	case KeyEnter:
		if msg.Value != "" {
			if err := utils.ValidateInput(msg.Value); err != nil {
				return err
			}
			s.desk.Terminal(terminal.InputChanged{Value: msg.Value})
		}
		s.desk.Terminal(terminal.KeyEnter{})
	case KeyArrowUp:
		s.desk.Terminal(terminal.KeyArrowUp{})
	case KeyArrowDown:
		s.desk.Terminal(terminal.KeyArrowDown{})
	default:
		return fmt.Errorf("unknown key %q", msg.Key)
	}
	return nil
}

func pointerEvent(msg ClientMessage) interaction.Event {
	p := interaction.Point{X: msg.X, Y: msg.Y}
	switch msg.Type {
	case TypePointerDown:
		return interaction.PointerDown{Target: interaction.Target(msg.Target), Point: p}
	case TypePointerMove:
		return interaction.PointerMove{Point: p}
	default:
		return interaction.PointerUp{Point: p}
	}
}
