/*
Package observability turns engine lifecycle events into Prometheus metrics and
structured audit logs. Both are plain domain.LifecycleHooks and can be merged.
*/
package observability
