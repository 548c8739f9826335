// internal/nodeid/doc.go

/*
Package nodeid provides a structured representation for resource addresses,
the identity under which a resolved resource is declared.

The canonical format is `type[name]`, e.g. `tp::conf[app]` or
`file[/etc/app/app.conf]`. The type is a lowercase, `::`-separated
identifier; the name is any non-empty string and may be wrapped in single or
double quotes when written by hand (`tp::dir['/var/lib/app']`).

Addresses order by type first and name second. Every component that emits
resources sorts by this order, so output never depends on map iteration.
*/
package nodeid
