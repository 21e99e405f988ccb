// SPDX-License-Identifier: Unlicense OR MIT

package app

// EventProxy sends application payloads into the event loop from any
// thread. The loop delivers them to the run callback as UserEvents, in
// send order.
type EventProxy struct {
	cx *loopContext
}

// Send queues data for delivery. It fails with ErrEventLoopClosed once
// the loop has stopped; payloads still queued at that point are
// dropped.
func (p *EventProxy) Send(data any) error {
	return p.cx.send(userEventMessage{data: data})
}
