package models

// ConnectionState is the lifecycle of the social account connection.
type ConnectionState int

const (
	Disconnected ConnectionState = iota
	Connecting
	Connected
	ConnectionFailed
)

func (s ConnectionState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case ConnectionFailed:
		return "error"
	default:
		return "disconnected"
	}
}

// ConnectionStatus carries PageID only when Connected and Message only
// when ConnectionFailed.
type ConnectionStatus struct {
	State   ConnectionState
	PageID  string
	Message string
}

func (c ConnectionStatus) String() string {
	switch c.State {
	case Connecting:
		return "Connecting..."
	case Connected:
		return "Connected. Page ID: " + c.PageID
	case ConnectionFailed:
		return "Error: " + c.Message
	default:
		return "Not connected"
	}
}
