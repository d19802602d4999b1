package constant

const (
	// RequestIDHeaderKey is the response header carrying the per-request id.
	RequestIDHeaderKey = "X-Crit-Request-ID"

	// ContextKeyRequestID is the fiber locals key holding the request id.
	ContextKeyRequestID = "requestid"

	// AdminKeyHeaderKey is the header carrying the admin key for the
	// error-tracking service.
	AdminKeyHeaderKey = "Authorization"

	// AnalysisTaskSubject is the JetStream subject player analysis tasks are
	// published to.
	AnalysisTaskSubject = "ANALYSIS.player"

	// PartyAnalysisTaskSubject is the JetStream subject party analysis tasks
	// are published to.
	PartyAnalysisTaskSubject = "ANALYSIS.party"

	// AnalysisStreamName is the JetStream stream holding analysis tasks.
	AnalysisStreamName = "crit-analyses"

	// AnalysisStreamSubjects is the wildcard consumers subscribe with.
	AnalysisStreamSubjects = "ANALYSIS.*"

	// AnalysisQueueGroup is the queue group analysis workers subscribe with.
	AnalysisQueueGroup = "crit-analyses"
)

const (
	// BlobPlayerAnalysisPrefix keys serialized player analysis payloads.
	BlobPlayerAnalysisPrefix = "player-analyses/"

	// BlobPartyAnalysisPrefix keys serialized party analysis payloads.
	BlobPartyAnalysisPrefix = "party-analyses/"

	// BlobErrorLogPrefix keys serialized error payload dumps.
	BlobErrorLogPrefix = "error-logs/"
)
