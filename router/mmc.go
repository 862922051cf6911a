package router

// TransportAction is a transport command carried by an MMC message
type TransportAction int

const (
	Rewind TransportAction = iota
	FastForward
	Stop
	Play
	Record
)

func (a TransportAction) String() string {
	switch a {
	case Rewind:
		return "rewind"
	case FastForward:
		return "fastForward"
	case Stop:
		return "stop"
	case Play:
		return "play"
	case Record:
		return "record"
	}
	return "unknown"
}

// MMC transport messages, lowercase hex of the full sysex including f0/f7
var mmcActions = map[string]TransportAction{
	"f07f7f0605f7": Rewind,
	"f07f7f0604f7": FastForward,
	"f07f7f0601f7": Stop,
	"f07f7f0602f7": Play,
	"f07f7f0606f7": Record,
}

// ActionFor looks up the transport action for an exact MMC hex string
func ActionFor(messageHex string) (TransportAction, bool) {
	a, ok := mmcActions[messageHex]
	return a, ok
}

// MMCMessage returns the hex string that triggers action
func MMCMessage(action TransportAction) (string, bool) {
	for hex, a := range mmcActions {
		if a == action {
			return hex, true
		}
	}
	return "", false
}

// Actions lists every transport action in table order
func Actions() []TransportAction {
	return []TransportAction{Rewind, FastForward, Stop, Play, Record}
}
