// Package events publishes crowd and status activity to NATS when a broker
// is configured. Publishing is fire-and-forget; a nil publisher is a no-op
// so call sites never have to branch on configuration.
package events
