package diagnostic

// Sink receives audit records as they are produced.
type Sink interface {
	Record(severity Severity, path, message string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(severity Severity, path, message string)

// Record implements Sink.
func (f SinkFunc) Record(severity Severity, path, message string) {
	f(severity, path, message)
}

// Discard drops every record.
var Discard Sink = SinkFunc(func(Severity, string, string) {})

// Tee returns a sink that forwards every record to each of sinks.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(severity Severity, path, message string) {
		for _, s := range sinks {
			s.Record(severity, path, message)
		}
	})
}
