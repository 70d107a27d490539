/*
Package observability provides Prometheus metrics for the sift engine and its hosts.

It exposes a single Collector holding every metric, created against the default
registry or a custom one for tests. Hosts record HTTP traffic; the validation
endpoints record per-schema outcomes and issue codes.
*/
package observability
