// Package ui contains the Bubble Tea program around the suggestion engine: a
// single-line search field with a candidate popup beneath it.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Messages with a
//     registered handler (keys, mouse, focus, resize, submissions) go through
//     the typed handler registry; everything else, which is the engine's own
//     debounce ticks and fetch results, is offered to suggest.Engine.
//   - Key presses reach the engine first. While the popup is showing it
//     consumes navigation, enter and escape; any other key hides the popup and
//     falls through to the field editing helpers in input.go.
//   - Edits that change the text call Engine.TextEdited, which restarts the
//     debounce countdown. Text written by the engine itself (previews, cancel)
//     goes through the editor adapter and never counts as an edit.
//
// State ownership:
//   - The field buffer lives in internal/ui/field; the popup only mirrors the
//     list and highlight the engine hands it.
//   - Mouse rows are tracked with a private bubblezone manager; View scans the
//     rendered frame so MouseMsg coordinates can be mapped to rows.
//   - Submissions run through the internal/ui/command bus and come back as
//     command.SubmittedMsg, feeding the recent searches list.
package ui
