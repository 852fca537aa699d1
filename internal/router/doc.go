// Package router maps event kinds to handlers and runs the consumer loop.
//
// Handlers are registered per event kind. Run drains the event channel and
// calls one handler at a time, in arrival order; the next event is not
// looked at until the current handler returns. A handler error or panic is
// logged and counted, and the loop moves on.
//
// Lookup order for an event:
//  1. the handler registered for its kind (KindUnknown included)
//  2. the Fallback handler
//  3. none: the event is logged at debug level and dropped
package router
