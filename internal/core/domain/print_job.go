package domain

import "time"

// PrintJobStatus is the lifecycle state of a print job.
type PrintJobStatus string

const (
	JobPending   PrintJobStatus = "PENDING"
	JobPrinting  PrintJobStatus = "PRINTING"
	JobCompleted PrintJobStatus = "COMPLETED"
	JobFailed    PrintJobStatus = "FAILED"
	JobCancelled PrintJobStatus = "CANCELLED"
)

// jobTransitions lists the allowed next states for every state.
var jobTransitions = map[PrintJobStatus][]PrintJobStatus{
	JobPending:  {JobPrinting, JobCancelled},
	JobPrinting: {JobCompleted, JobFailed},
}

// IsTerminal reports whether no further transition is possible.
func (s PrintJobStatus) IsTerminal() bool {
	return s == JobCompleted || s == JobFailed || s == JobCancelled
}

// CanTransitionTo reports whether moving from s to next is a valid lifecycle step.
func (s PrintJobStatus) CanTransitionTo(next PrintJobStatus) bool {
	for _, allowed := range jobTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PrintJob is created by the submission coordinator once the batch charge has been debited.
// EquivalentPagesCharged never changes after creation.
type PrintJob struct {
	JobID                  string         `json:"jobID"`
	BatchID                string         `json:"batchID"` // ReferenceJobID of the batch DEDUCT
	UserID                 string         `json:"userID"`
	Request                PrintRequest   `json:"request"`
	Status                 PrintJobStatus `json:"status"`
	EquivalentPagesCharged int64          `json:"equivalentPagesCharged"`
	SubmittedAt            time.Time      `json:"submittedAt"`
	CompletedAt            *time.Time     `json:"completedAt,omitempty"`
	ErrorMessage           *string        `json:"errorMessage,omitempty"`
	LastUpdatedAt          time.Time      `json:"lastUpdatedAt"`
}
