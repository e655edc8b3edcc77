// Package order models a purchase order through its lifecycle.
//
// The package includes:
//   - Order: the aggregate root owning lines, addresses, the payment summary,
//     notes and the status history
//   - Status: the nine lifecycle states and the transition table between them
//   - Line: one product entry with its quantity and prices
//   - PaymentSummary: totals derived from the lines by CalculatePaymentSummary
//   - HistoryEntry and History: the append-only record of status changes
//   - Event: the facts recorded by the aggregate (OrderPlaced, OrderStatusChanged,
//     OrderCancelled, OrderReadyForShipment, OrderModifiedByAdmin)
//
// Key business rules:
//   - A new order starts in Pending with at least one line and no discount
//   - Every status change is checked against the transition table and appends
//     exactly one history entry
//   - Shipped and Delivered record the moment they were reached
//   - The payment summary is always recomputed from the lines, never patched
//   - A discount can never exceed the order total
package order
