// Package model defines the data structures used throughout the application.
//
// The content types mirror the JSON documents served by the portfolio
// backend. This process never owns them: every screen fetches its own copy
// and throws it away when the screen goes away.
package model

// AdminSession is the authenticated administrator as returned by the
// backend's login endpoint. It is the "user" record persisted in local
// storage next to the raw token.
type AdminSession struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}
