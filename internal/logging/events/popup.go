package events

import "github.com/atomicstack/suggestbox/internal/logging"

type PopupTracer struct{}

type SubmitTracer struct{}

type PopupReason string

const (
	PopupReasonEscape  PopupReason = "escape"
	PopupReasonOutside PopupReason = "outside"
	PopupReasonFocus   PopupReason = "focus"
	PopupReasonTyping  PopupReason = "typing"
)

var (
	Popup  = PopupTracer{}
	Submit = SubmitTracer{}
)

func (PopupTracer) Show(count int) {
	logging.Trace("popup.show", map[string]interface{}{"count": count})
}

func (PopupTracer) Cursor(cursor int, text string) {
	logging.Trace("popup.cursor", map[string]interface{}{"cursor": cursor, "text": text})
}

func (PopupTracer) Confirm(text string) {
	logging.Trace("popup.confirm", map[string]interface{}{"text": text})
}

func (PopupTracer) Cancel(reason PopupReason, restored string) {
	logging.Trace("popup.cancel", map[string]interface{}{"reason": string(reason), "restored": restored})
}

func (PopupTracer) Hide(reason PopupReason) {
	logging.Trace("popup.hide", map[string]interface{}{"reason": string(reason)})
}

func (SubmitTracer) Queue(query string) {
	logging.Trace("submit.queue", map[string]interface{}{"query": query})
}

func (SubmitTracer) Skip(query string) {
	logging.Trace("submit.skip", map[string]interface{}{"query": query})
}

func (SubmitTracer) Result(query string, err error) {
	payload := map[string]interface{}{"query": query}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("submit.result", payload)
}
