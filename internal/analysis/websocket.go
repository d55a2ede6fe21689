package analysis

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/imadgeboyega/kiekky-insights/internal/auth"
	"github.com/imadgeboyega/kiekky-insights/internal/fallback"
)

const (
	writeWait      = 10 * time.Second
	maxFrameSize   = 16 << 10
	sendBufferSize = 32
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Configure origin checking in production
		return true
	},
}

// Frame is a message from the client. "typing" frames ask for a live
// estimate of the draft; "analyze" frames run a full analysis of a sent message.
type Frame struct {
	Type         string  `json:"type"`
	Text         string  `json:"text"`
	Elapsed      float64 `json:"elapsed"`
	ResponseTime float64 `json:"response_time"`
}

// Reply is a message to the client
type Reply struct {
	Type       string          `json:"type"` // "estimate", "analysis" or "error"
	Generation uint64          `json:"generation"`
	Estimate   *LiveEstimate   `json:"estimate,omitempty"`
	Analysis   *Result         `json:"analysis,omitempty"`
	Source     fallback.Source `json:"source,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// generations hands out increasing generation numbers. Starting a new
// generation cancels the context of the previous one, and results carrying
// an older generation are discarded.
type generations struct {
	mu      sync.Mutex
	current uint64
	cancel  context.CancelFunc
}

func (g *generations) begin(parent context.Context) (uint64, context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel != nil {
		g.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	g.current++
	g.cancel = cancel
	return g.current, ctx
}

func (g *generations) isCurrent(gen uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return gen == g.current
}

func (g *generations) stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

// liveClient is one websocket connection streaming a user's draft
type liveClient struct {
	conn     *websocket.Conn
	service  Service
	userID   string
	send     chan Reply
	typing   generations
	analyses generations
}

// ServeTyping upgrades the request and streams live typing estimates
func (h *Handler) ServeTyping(w http.ResponseWriter, r *http.Request) {
	userID := auth.ResolveUserID(r.Context(), r.URL.Query().Get("user_id"))

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "err", err)
		return
	}

	client := &liveClient{
		conn:    conn,
		service: h.service,
		userID:  userID,
		send:    make(chan Reply, sendBufferSize),
	}

	go client.writePump()
	client.readPump(context.Background())
}

func (c *liveClient) readPump(ctx context.Context) {
	var inflight sync.WaitGroup
	defer func() {
		c.typing.stop()
		c.analyses.stop()
		inflight.Wait()
		close(c.send)
	}()

	c.conn.SetReadLimit(maxFrameSize)
	// drop the deadline inherited from the server's ReadTimeout
	c.conn.SetReadDeadline(time.Time{})

	for {
		var frame Frame
		if err := c.conn.ReadJSON(&frame); err != nil {
			return
		}

		switch frame.Type {
		case "typing":
			gen, _ := c.typing.begin(ctx)
			estimate := c.service.Live(frame.Text, frame.Elapsed)
			estimate.Generation = gen
			c.deliver(&c.typing, Reply{Type: "estimate", Generation: gen, Estimate: &estimate})

		case "analyze":
			gen, actx := c.analyses.begin(ctx)
			inflight.Add(1)
			go func(frame Frame) {
				defer inflight.Done()
				result, source, err := c.service.Analyze(actx, c.userID, AnalyzeRequest{
					Text:         frame.Text,
					TimeTaken:    frame.Elapsed,
					ResponseTime: frame.ResponseTime,
				})
				if err != nil {
					c.deliver(&c.analyses, Reply{Type: "error", Generation: gen, Error: err.Error()})
					return
				}
				c.deliver(&c.analyses, Reply{Type: "analysis", Generation: gen, Analysis: &result, Source: source})
			}(frame)

		default:
			c.deliver(nil, Reply{Type: "error", Error: "unknown frame type: " + frame.Type})
		}
	}
}

// deliver queues reply unless a newer generation has superseded it
func (c *liveClient) deliver(gens *generations, reply Reply) {
	if gens != nil && !gens.isCurrent(reply.Generation) {
		recordDroppedFrame()
		return
	}

	select {
	case c.send <- reply:
	default:
		recordDroppedFrame()
	}
}

func (c *liveClient) writePump() {
	defer c.conn.Close()

	for reply := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(reply); err != nil {
			return
		}
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
