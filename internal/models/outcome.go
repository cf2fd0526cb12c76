package models

// OutcomeStatus classifies what happened to one uploaded file.
type OutcomeStatus string

const (
	StatusNew       OutcomeStatus = "new"
	StatusDuplicate OutcomeStatus = "duplicate"
	StatusError     OutcomeStatus = "error"
)

// Outcome is the per-file result of a batch ingestion. A batch of N
// files always yields exactly N outcomes, in input order.
type Outcome struct {
	Filename string        `json:"filename"`
	Status   OutcomeStatus `json:"status"`
	Message  string        `json:"message"`
}

// BatchSummary aggregates the outcome counts of one batch, as shown in
// the upload result list.
type BatchSummary struct {
	New        int `json:"new"`
	Duplicates int `json:"duplicates"`
	Errors     int `json:"errors"`
}

// Summarize tallies outcomes by status.
func Summarize(outcomes []Outcome) BatchSummary {
	var s BatchSummary
	for _, o := range outcomes {
		switch o.Status {
		case StatusNew:
			s.New++
		case StatusDuplicate:
			s.Duplicates++
		case StatusError:
			s.Errors++
		}
	}
	return s
}
