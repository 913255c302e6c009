// Package metrics owns the service's Prometheus collectors on a private
// registry, keeping the default registry clean for embedding.
package metrics
