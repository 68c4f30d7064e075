// Package middleware groups the Fiber middleware shared by every feature.
//
// rayid tags each request with an id that the logger package attaches to
// request logs. auth checks the API key on everything except the public
// paths it is told to skip. The server registers rayid first so rejected
// requests are still traceable.
package middleware
