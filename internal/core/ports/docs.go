// Package ports defines the contracts between the ordering core and its
// infrastructure: persistence, transaction boundaries, event publishing and
// inbound-event deduplication.
package ports
