package main

import "encoding/json"

// Client -> Server message types
const (
	MsgJoin    = "join"    // start a session (desktop client)
	MsgInput   = "input"   // movement + fire intents
	MsgLeave   = "leave"   // leave the session
	MsgControl = "control" // phone controller attach
)

// Server -> Client message types
const (
	MsgWelcome   = "welcome"
	MsgState     = "state" // msgpack binary frame, not a JSON envelope
	MsgError     = "error"
	MsgControlOK = "control_ok" // controller attach confirmed
	MsgCtrlOn    = "ctrl_on"    // notify desktop: controller attached
	MsgCtrlOff   = "ctrl_off"   // notify desktop: controller detached
)

// Envelope wraps all outgoing control messages with a type field.
// State snapshots travel separately as msgpack binary frames.
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages; json.RawMessage avoids a
// double unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// ClientInput carries the two intent vectors, each axis in [-1, 1]
type ClientInput struct {
	MX float64 `json:"mx"`
	MY float64 `json:"my"`
	FX float64 `json:"fx"`
	FY float64 `json:"fy"`
}

// ControlMsg attaches a phone controller to a session
type ControlMsg struct {
	SID string `json:"sid"`
}

// WelcomeMsg is sent to a desktop client when its session starts
type WelcomeMsg struct {
	SessionID string  `json:"sid"`
	Width     float64 `json:"w"`
	Height    float64 `json:"h"`
}

// ErrorMsg sends an error to the client
type ErrorMsg struct {
	Msg string `json:"msg"`
}

// PlayerState is the player's slice of a snapshot
type PlayerState struct {
	X         float64 `json:"x" msgpack:"x"`
	Y         float64 `json:"y" msgpack:"y"`
	R         float64 `json:"r" msgpack:"r"`
	Score     int     `json:"sc" msgpack:"sc"`
	Shields   int     `json:"sh" msgpack:"sh"`
	Power     int     `json:"pw" msgpack:"pw"`
	Speed     float64 `json:"sp" msgpack:"sp"`
	Exploding bool    `json:"ex" msgpack:"ex"`
	ExplProg  float64 `json:"ep" msgpack:"ep"`
}

// BaddieState is one hostile ship in a snapshot
type BaddieState struct {
	X    float64 `json:"x" msgpack:"x"`
	Y    float64 `json:"y" msgpack:"y"`
	R    float64 `json:"r" msgpack:"r"`
	Type string  `json:"t" msgpack:"t"`
}

// BulletState is one bullet in a snapshot
type BulletState struct {
	X    float64 `json:"x" msgpack:"x"`
	Y    float64 `json:"y" msgpack:"y"`
	R    float64 `json:"r" msgpack:"r"`
	Side int     `json:"s" msgpack:"s"`
}

// UpgradeState is one drifting pickup in a snapshot
type UpgradeState struct {
	X    float64  `json:"x" msgpack:"x"`
	Y    float64  `json:"y" msgpack:"y"`
	Kind string   `json:"k" msgpack:"k"`
	C    [3]uint8 `json:"c" msgpack:"c"`
}

// SpawnState is one spawn point in a snapshot
type SpawnState struct {
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Queued int     `json:"q" msgpack:"q"`
}

// LevelState is the active level's slice of a snapshot
type LevelState struct {
	Index    int    `json:"i" msgpack:"i"`
	Greeting string `json:"g" msgpack:"g"`
	Paused   bool   `json:"p" msgpack:"p"`
}

// GameState is the full per-frame snapshot, msgpack-encoded for the
// renderer
type GameState struct {
	Tick     uint64         `json:"tick" msgpack:"tick"`
	Player   PlayerState    `json:"p" msgpack:"p"`
	Baddies  []BaddieState  `json:"b" msgpack:"b"`
	Bullets  []BulletState  `json:"r" msgpack:"r"`
	Upgrades []UpgradeState `json:"u" msgpack:"u"`
	Spawns   []SpawnState   `json:"sp" msgpack:"sp"`
	Level    LevelState     `json:"l" msgpack:"l"`
	Winner   bool           `json:"win" msgpack:"win"`
}

func playerState(p *Player) PlayerState {
	return PlayerState{
		X:         round1(p.Pos().X),
		Y:         round1(p.Pos().Y),
		R:         round1(p.Heading()),
		Score:     p.Score,
		Shields:   p.Shields,
		Power:     p.Gun.Power,
		Speed:     p.Speed,
		Exploding: p.Exploding,
		ExplProg:  p.ExplProg,
	}
}

func baddieState(b *Baddie) BaddieState {
	return BaddieState{
		X:    round1(b.Pos().X),
		Y:    round1(b.Pos().Y),
		R:    round1(b.Heading()),
		Type: b.Type.String(),
	}
}

func bulletState(b *Bullet) BulletState {
	return BulletState{
		X:    round1(b.Pos().X),
		Y:    round1(b.Pos().Y),
		R:    round1(b.Heading()),
		Side: int(b.Side),
	}
}

func upgradeState(u *Upgrade) UpgradeState {
	return UpgradeState{
		X:    round1(u.Pos().X),
		Y:    round1(u.Pos().Y),
		Kind: u.Kind.String(),
		C:    [3]uint8{u.Color.R, u.Color.G, u.Color.B},
	}
}
