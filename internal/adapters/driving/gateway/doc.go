// Package gateway exposes the intake and contact services over HTTP.
//
// Routes:
//
//	POST /sms            receive an SMS (form encoded or JSON)
//	GET  /records/{id}   fetch a stored data record
//	POST /contacts       save a contact submission (?id=...&type=...)
//	GET  /contacts       list contacts ordered by type and name
//	GET  /contacts/{id}  fetch a contact
//	GET  /metrics        Prometheus metrics, when a gatherer is configured
//	GET  /healthz        liveness probe
package gateway
