package main

import (
	"log"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const maxSessions = 100

// Session is one running arena: a game loop, the desktop client that
// renders it, and optionally a phone controller steering it.
type Session struct {
	ID    string
	Game  *Game
	Input *RemoteInput
	fps   int

	mu         sync.Mutex
	desktop    *Client
	controller *Client
	done       chan struct{}
}

// setDesktop binds the rendering client
func (s *Session) setDesktop(c *Client) {
	s.mu.Lock()
	s.desktop = c
	s.mu.Unlock()
}

// setController binds or clears the phone controller and tells the
// desktop client about it
func (s *Session) setController(c *Client) {
	s.mu.Lock()
	s.controller = c
	desktop := s.desktop
	s.mu.Unlock()

	if desktop == nil {
		return
	}
	if c != nil {
		desktop.SendJSON(Envelope{T: MsgCtrlOn})
	} else {
		desktop.SendJSON(Envelope{T: MsgCtrlOff})
	}
}

// broadcast streams msgpack state frames to the attached clients at the
// game's frame rate until the session is removed
func (s *Session) broadcast() {
	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			snap := s.Game.Snapshot()
			data, err := msgpack.Marshal(&snap)
			if err != nil {
				log.Printf("snapshot marshal error: %v", err)
				continue
			}
			s.mu.Lock()
			desktop, controller := s.desktop, s.controller
			s.mu.Unlock()
			if desktop != nil {
				desktop.SendBinary(data)
			}
			if controller != nil {
				controller.SendBinary(data)
			}
		}
	}
}

// SessionManager handles creation and lookup of sessions
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	db       *DB
	stats    *Stats
	fps      int
	minFPS   float64
}

// NewSessionManager creates a new SessionManager. db may be nil.
func NewSessionManager(db *DB, stats *Stats, fps int, minFPS float64) *SessionManager {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		db:       db,
		stats:    stats,
		fps:      fps,
		minFPS:   minFPS,
	}
}

// CreateSession starts a new game and its broadcast loop. Returns nil
// if the session limit is reached.
func (sm *SessionManager) CreateSession() *Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.sessions) >= maxSessions {
		return nil
	}

	input := &RemoteInput{}
	game := NewGame(DefaultWidth, DefaultHeight, NewSystemClock(), input, sm.stats)
	game.SetTickRate(sm.fps)
	game.SetMinFPS(sm.minFPS)
	if sm.db != nil {
		db := sm.db
		game.SetOnRunEnd(func(sum RunSummary) {
			if err := db.RecordRun(sum); err != nil {
				log.Printf("record run: %v", err)
			}
		})
	}

	sess := &Session{
		ID:    game.ID,
		Game:  game,
		Input: input,
		fps:   sm.fps,
		done:  make(chan struct{}),
	}
	sm.sessions[sess.ID] = sess

	game.Start()
	go game.Run()
	go sess.broadcast()
	sm.stats.Inc("sessions_created")
	return sess
}

// GetSession returns a session by ID
func (sm *SessionManager) GetSession(id string) *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[id]
}

// RemoveSession stops a session's game and broadcast loop
func (sm *SessionManager) RemoveSession(id string) {
	sm.mu.Lock()
	sess, ok := sm.sessions[id]
	if ok {
		delete(sm.sessions, id)
	}
	sm.mu.Unlock()
	if !ok {
		return
	}
	sess.Game.SetInput(nil)
	sess.Game.Stop()
	close(sess.done)
}

// Count returns the number of live sessions
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
