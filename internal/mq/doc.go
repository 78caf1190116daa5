// Package mq provides named in-process message queues for update responses.
//
// The binary manager answers every update request on a private channel
// whose name is derived from the requester's identity. Delivery is
// fire-and-forget: Send never blocks, lazily creates the target queue, and
// drops the message when the queue is full. The requester drains its queue
// with non-blocking Receive calls; a queue lives only for the duration of
// an exchange and is torn down once drained.
package mq
