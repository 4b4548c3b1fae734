// Package webex is a thin client for the Webex Calling configuration API.
//
// It covers exactly the surface the provisioner needs: resolving a
// location name to its identifier, listing the translation patterns of a
// location, and creating/updating/deleting individual patterns. The
// PatternStore type binds a client to one location and satisfies
// reconcile.Store, so the reconcile executor can apply a plan without
// knowing anything about the wire protocol.
//
// Token acquisition follows the service-app flow: an explicit token (flag
// or WEBEX_TOKEN) wins, otherwise a cached token is reused while it has
// at least a day of validity left, otherwise a fresh access token is
// minted from the service-app refresh token and written back to the
// cache.
package webex
