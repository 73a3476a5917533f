package web

// Type is the first byte of every websocket message.
type Type = uint8

// client to server
const (
	_ Type = iota
	// Event carries a raw event in wire form.
	Event
	// WheelEvent carries the browser's own wheel deltas, normalised per
	// client: deltaX, deltaY, wheelDeltaX, wheelDeltaY, wheelDelta as
	// float32.
	WheelEvent
	// Offset carries the page offset of the input element: left, top as
	// float32.
	Offset
)

// server to client
const (
	// PlayerIdentify tells a client whether its input is used (1) or it
	// is spectating (0).
	PlayerIdentify Type = iota + 0x10
	// PointerLock asks the active client to request (1) or exit (0)
	// pointer lock.
	PointerLock
	// ServerInfo lists client id and average latency (u16, ms) pairs.
	ServerInfo
	// ClientClosing carries the id of a client that disconnected.
	ClientClosing
)

const (
	KeepAlive Type = 254
	Closing   Type = 255
)
