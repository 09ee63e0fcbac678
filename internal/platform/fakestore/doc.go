// Package fakestore implements the HTTP client for the upstream store API
// (https://fakestoreapi.com by default) that the gateway proxies to.
//
// Each call maps to exactly one upstream request; nothing is retried, cached
// or pooled beyond what net/http does on its own.
package fakestore
