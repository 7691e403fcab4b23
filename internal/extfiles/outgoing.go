package extfiles

type OutgoingWriter struct {
	path string
}

func NewOutgoingWriter(path string) *OutgoingWriter {
	return &OutgoingWriter{path: path}
}

func (w *OutgoingWriter) RecordOutgoing(description string) error {
	return appendLine(w.path, description+"\n")
}
