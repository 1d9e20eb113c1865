package datamodule

// State is a step of the module loading lifecycle.
type State int

const (
	NotStarted State = iota
	ReadingIndex
	ScanningFolder
	ScriptLoading
	Complete
	Failed
)

var stateNames = [...]string{
	NotStarted:     "not_started",
	ReadingIndex:   "reading_index",
	ScanningFolder: "scanning_folder",
	ScriptLoading:  "script_loading",
	Complete:       "complete",
	Failed:         "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
