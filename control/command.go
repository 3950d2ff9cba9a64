// Package control defines lightweight command messages used by the UI to
// request actions from the application command loop. The command-loop
// centralizes state changes to avoid races and to simplify synchronization.
package control

// CommandType enumerates supported command operations.
type CommandType int

const (
	CmdTest CommandType = iota
	CmdNudge
	CmdRepeat
)

// Command is the message sent from UI to AppManager.commandLoop. The
// optional Reply channel can be used by the commandLoop to confirm
// completion back to the sender (useful for keeping UI state in sync).
type Command struct {
	Type  CommandType
	Delta float64    // frame nudge for CmdNudge
	On    bool       // desired state for CmdRepeat
	Reply chan error // optional reply channel
}
