package domain

// AudioPayload is one learner recording, held in memory for the duration of a practice session.
type AudioPayload struct {
	Filename string `json:"filename"`
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

func (a AudioPayload) Size() int { return len(a.Data) }

func (a AudioPayload) Empty() bool { return len(a.Data) == 0 }
