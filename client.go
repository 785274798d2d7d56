package main

import (
	"encoding/json"
	"log"
	"math"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 50
)

// Client represents a WebSocket connection
type Client struct {
	hub          *Hub
	conn         *websocket.Conn
	send         chan []byte
	sessionID    string
	remoteAddr   string
	isController bool
	input        *RemoteInput
	msgCount     int
	msgResetAt   time.Time
}

// NewClient creates a new Client
func NewClient(hub *Hub, conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufSize),
		remoteAddr: remoteAddr,
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.hub.TrackDisconnect(c.remoteAddr)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		msgType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws error: %v", err)
			}
			break
		}

		// Rate limiting
		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			log.Printf("rate limit exceeded for %s, disconnecting", c.remoteAddr)
			break
		}

		// Binary input messages: 9 bytes [0x01, mx, my, fx, fy] with
		// each axis an int16 scaled by 1000
		if msgType == websocket.BinaryMessage && len(message) == 9 && message[0] == 0x01 {
			c.handleBinaryInput(message)
		} else {
			c.handleMessage(message)
		}
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// Check for binary marker (0xFF prefix from SendBinary)
			var err error
			if len(message) > 0 && message[0] == 0xFF {
				err = c.conn.WriteMessage(websocket.BinaryMessage, message[1:])
			} else {
				err = c.conn.WriteMessage(websocket.TextMessage, message)
			}
			if err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendJSON sends a JSON message to the client
func (c *Client) SendJSON(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal error: %v", err)
		return
	}
	c.SendRaw(data)
}

// SendRaw sends pre-marshaled bytes as a text message to the client
func (c *Client) SendRaw(data []byte) {
	defer func() { recover() }()
	select {
	case c.send <- data:
	default:
		// Client too slow, drop message
	}
}

// SendBinary sends pre-marshaled bytes as a binary WebSocket message.
// Prefixes with 0xFF marker byte so WritePump can distinguish from text.
func (c *Client) SendBinary(data []byte) {
	defer func() { recover() }()
	msg := make([]byte, len(data)+1)
	msg[0] = 0xFF // binary marker
	copy(msg[1:], data)
	select {
	case c.send <- msg:
	default:
	}
}

// handleMessage routes incoming messages (single-pass decode via InEnvelope)
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("unmarshal error: %v", err)
		return
	}

	switch env.T {
	case MsgJoin:
		c.handleJoin()
	case MsgInput:
		c.handleInput(env.D)
	case MsgControl:
		c.handleControl(env.D)
	case MsgLeave:
		c.handleLeave()
	}
}

func (c *Client) handleJoin() {
	if c.sessionID != "" {
		return
	}
	sess := c.hub.sessions.CreateSession()
	if sess == nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "too many active sessions"}})
		return
	}
	c.sessionID = sess.ID
	c.input = sess.Input
	sess.setDesktop(c)

	c.SendJSON(Envelope{T: MsgWelcome, Data: WelcomeMsg{
		SessionID: sess.ID,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
	}})
}

// handleBinaryInput decodes a compact 9-byte binary input message
func (c *Client) handleBinaryInput(msg []byte) {
	if c.sessionID == "" {
		return
	}
	axis := func(hi, lo byte) float64 {
		return float64(int16(uint16(hi)<<8|uint16(lo))) / 1000
	}
	c.applyInput(ClientInput{
		MX: axis(msg[1], msg[2]),
		MY: axis(msg[3], msg[4]),
		FX: axis(msg[5], msg[6]),
		FY: axis(msg[7], msg[8]),
	})
}

func (c *Client) handleInput(data json.RawMessage) {
	if c.sessionID == "" {
		return
	}
	var input ClientInput
	if err := json.Unmarshal(data, &input); err != nil {
		return
	}
	c.applyInput(input)
}

func (c *Client) applyInput(input ClientInput) {
	if c.input == nil {
		return
	}
	clampAxis := func(v float64) float64 {
		if math.IsNaN(v) {
			return 0
		}
		return Clamp(v, -1, 1)
	}
	c.input.Set(InputState{
		MoveX: clampAxis(input.MX),
		MoveY: clampAxis(input.MY),
		FireX: clampAxis(input.FX),
		FireY: clampAxis(input.FY),
	})
}

func (c *Client) handleControl(data json.RawMessage) {
	var msg ControlMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	sess := c.hub.sessions.GetSession(msg.SID)
	if sess == nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "session not found"}})
		return
	}

	c.sessionID = msg.SID
	c.isController = true
	// The controller steers through its own provider so a stale axis
	// from the desktop cannot bleed through after the handoff.
	c.input = &RemoteInput{}
	sess.Game.SetInput(c.input)
	sess.setController(c)
	c.SendJSON(Envelope{T: MsgControlOK, Data: map[string]string{"sid": msg.SID}})
}

func (c *Client) handleLeave() {
	if c.sessionID == "" {
		return
	}
	if c.isController {
		sess := c.hub.sessions.GetSession(c.sessionID)
		if sess != nil {
			// Hand the ship back to the desktop provider, zeroed so a
			// pre-attach axis does not resurface.
			sess.Input.Set(InputState{})
			sess.Game.SetInput(sess.Input)
			sess.setController(nil)
		}
	} else {
		c.hub.sessions.RemoveSession(c.sessionID)
	}
	c.sessionID = ""
	c.isController = false
	c.input = nil
}
