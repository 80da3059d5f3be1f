// Package workflow classifies open workflow executions into waiting and
// zombie task counts keyed by application.
package workflow

// History event types the classifier reacts to. Everything else is ignored.
const (
	EventActivityTaskScheduled = "ActivityTaskScheduled"
	EventActivityTaskStarted   = "ActivityTaskStarted"
	EventDecisionTaskStarted   = "DecisionTaskStarted"
)

// Event is one workflow history event.
type Event struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Identity string `json:"identity,omitempty"`
	Input    string `json:"input,omitempty"`
}

// Execution is the view of one open workflow execution: its identifiers plus
// the first and most recent history events.
type Execution struct {
	Domain     string `json:"domain"`
	WorkflowID string `json:"workflow_id"`
	RunID      string `json:"run_id"`
	First      Event  `json:"first"`
	Last       Event  `json:"last"`
}
