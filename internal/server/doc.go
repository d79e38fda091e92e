// Package server exposes the cipherlab workflows over HTTP.
//
// Routes mirror the classroom service participants already script against:
//
//	POST /download         encrypted credential bundle (form field "id")
//	GET  /artifacts/{id}   re-download a persisted bundle
//	GET  /fetch?id=        bundle key as hex
//	GET  /get_text?id=     enciphered excerpt
//	GET  /check1?id=&text=       excerpt guess
//	GET  /check2?id=&password=   password guess
//	GET  /healthz
//	GET  /metrics
//
// JSON responses carry either a "response" (or "secret_key") field or an
// "error" field. The guess endpoints are throttled per client.
package server
