/*
Package observability turns store lifecycle events into Prometheus metrics and structured logs.

Both are exposed as domain.LifecycleHooks so they can be installed with strata.WithLifecycleHooks
and composed with application hooks.
*/
package observability
