package constant

const (
	QueueStreamName = "festival_pass_queue_stream"
)

const (
	AllWildcard   = "events.>"
	EmailWildcard = "events.email.>"

	SubjectSendPassEmail = "events.email.send_pass"
)
