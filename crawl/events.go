package crawl

import "github.com/fwojciec/linkcheck"

// Event delivery has two paths. The OnEvent callback is synchronous and
// lossless: it runs on the scheduler goroutine and a slow callback slows
// the crawl. Subscribe returns a buffered channel: delivery never blocks
// the scheduler, and events are dropped for a subscriber whose buffer is
// full. Pick the path that matches how fast the consumer is.

// DefaultSubscriberBuffer is the channel capacity used when Subscribe is
// called with a non-positive buffer size.
const DefaultSubscriberBuffer = 64

// Subscribe registers a buffered progress event channel. It must be
// called before Run; the channel is closed when the run reaches a
// terminal state.
func (c *Crawler) Subscribe(buffer int) <-chan linkcheck.Event {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}

	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	ch := make(chan linkcheck.Event, buffer)
	c.subs = append(c.subs, ch)
	return ch
}

// publish delivers an event to the callback and every subscriber.
// Subscriber sends never block; an event that does not fit a
// subscriber's buffer is dropped for that subscriber.
func (c *Crawler) publish(event linkcheck.Event) {
	if c.OnEvent != nil {
		c.OnEvent(event)
	}

	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	for _, ch := range c.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// closeSubscribers closes all subscriber channels at the end of a run.
func (c *Crawler) closeSubscribers() {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	for _, ch := range c.subs {
		close(ch)
	}
	c.subs = nil
}
