package mon

// CheckError is a structured required-input error surfaced before any
// external API is touched. Subject and body carry the same text.
type CheckError struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Required-input error messages, one per missing input.
const (
	msgELBName     = "Please provide name of the ELB"
	msgSWFDomain   = "Please provide name of the SWF domain"
	msgCredentials = "Please provide a path to AWS configuration"
	msgErrorLog    = "Please provide a path error log"
)

func missing(msg string) []CheckError {
	return []CheckError{{Subject: msg, Body: msg}}
}
