package client

import "github.com/adamwoolhether/wire/request"

// Observer is notified of dispatch progress. Each method is called at
// most once per dispatch and never for a dispatch that fails before
// reaching it. Calls may arrive from any goroutine.
type Observer interface {
	// DispatchStarted is called after a successful build, before send.
	DispatchStarted(b request.Builder)
	// BytesRetrieved is called once the outcome has been classified as a
	// success, before conversion.
	BytesRetrieved(data []byte, b request.Builder)
}

// ObserverFuncs adapts functions to the [Observer] interface. Nil
// fields are skipped.
type ObserverFuncs struct {
	Started   func(b request.Builder)
	Retrieved func(data []byte, b request.Builder)
}

func (o ObserverFuncs) DispatchStarted(b request.Builder) {
	if o.Started != nil {
		o.Started(b)
	}
}

func (o ObserverFuncs) BytesRetrieved(data []byte, b request.Builder) {
	if o.Retrieved != nil {
		o.Retrieved(data, b)
	}
}
