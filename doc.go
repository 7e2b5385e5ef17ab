// Package main provides the entry point for authdemo.
// It starts a web server using the Fiber framework that lets visitors
// register a username and password, log in and out, and view a page that
// is only reachable with a valid login session. Users are persisted with
// gorm and sessions are kept in a fiber session storage backend.
package main
