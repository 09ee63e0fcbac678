// Package api implements the gateway's HTTP handlers.
//
// Every handler follows the same shape: optionally validate the JSON body,
// issue one request to the upstream store API with a method and path that
// mirror the route, check the upstream status and re-wrap the upstream body
// in a Spanish-localized envelope ({"mensaje", "datos"}).
package api
