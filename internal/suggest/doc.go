// Package suggest implements incremental search suggestions for a single-line
// edit field.
//
// Flow:
//   - Every user edit restarts the debounce Scheduler. When the countdown
//     elapses the Engine snapshots the editor text into a Query and hands it to
//     the Fetcher, which stamps it with the next generation number and returns
//     a tea.Cmd that performs the HTTP call off the update loop.
//   - The result comes back as a ResultMsg. Only the result whose generation
//     matches the most recent dispatch is applied; anything older is dropped,
//     whatever order the responses arrive in. There is no request
//     cancellation; generations are the only staleness mechanism.
//   - Applied candidates drive the Selection state machine. Every cursor move
//     rewrites the editor text to the highlighted candidate and selects the
//     part beyond what the user typed, so the next keystroke overwrites it.
//   - While the popup shows, key events pass through Classify first: confirm,
//     cancel and navigation are consumed; anything else hides the popup and is
//     forwarded to the editor.
//
// All of this runs on the Bubble Tea update loop, so the engine holds no locks.
// The editor and the list display are collaborators owned by the caller.
package suggest
