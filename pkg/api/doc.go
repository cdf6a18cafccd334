// Package api serves the decision pipeline over HTTP.
//
// Routes:
//
//	POST /api/v1/decide    run a scenario, returns every stage and the answer
//	POST /api/v1/generate  draw a random scenario
//	POST /api/v1/render    DOT or SVG of a criterion graph or the decision
//	GET  /health           liveness and build information
//	GET  /metrics          Prometheus exposition
//
// Errors are returned as {"error": ..., "code": ...} with a status derived
// from the error code: input problems map to 400, rate limiting to 429 and
// everything else to 500.
package api
