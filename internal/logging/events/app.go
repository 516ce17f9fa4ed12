package events

import "github.com/atomicstack/suggestbox/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Offline(addr string, words int) {
	logging.Trace("app.offline", map[string]interface{}{"addr": addr, "words": words})
}

func (AppTracer) Exit(submitted int, err error) {
	payload := map[string]interface{}{"submitted": submitted}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.exit", payload)
}
