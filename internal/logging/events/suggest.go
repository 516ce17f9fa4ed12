package events

import "github.com/atomicstack/suggestbox/internal/logging"

type DebounceTracer struct{}

type SuggestTracer struct{}

var (
	Debounce = DebounceTracer{}
	Suggest  = SuggestTracer{}
)

func (DebounceTracer) Restart(tag int) {
	logging.Trace("debounce.restart", map[string]interface{}{"tag": tag})
}

func (DebounceTracer) Fire(tag int) {
	logging.Trace("debounce.fire", map[string]interface{}{"tag": tag})
}

func (DebounceTracer) Suppress(tag int) {
	logging.Trace("debounce.suppress", map[string]interface{}{"tag": tag})
}

func (SuggestTracer) Dispatch(generation uint64, query, locale string) {
	logging.Trace("suggest.dispatch", map[string]interface{}{
		"generation": generation,
		"query":      query,
		"locale":     locale,
	})
}

func (SuggestTracer) SkipEmpty() {
	logging.Trace("suggest.skip-empty", nil)
}

func (SuggestTracer) Result(generation uint64, count int) {
	logging.Trace("suggest.result", map[string]interface{}{"generation": generation, "count": count})
}

func (SuggestTracer) Stale(generation, current uint64) {
	logging.Trace("suggest.stale", map[string]interface{}{"generation": generation, "current": current})
}

func (SuggestTracer) Failure(generation uint64, err error) {
	if err == nil {
		return
	}
	logging.Trace("suggest.failure", map[string]interface{}{"generation": generation, "error": err.Error()})
}
