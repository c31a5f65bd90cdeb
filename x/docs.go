/*
Package x contains the shared pieces used by all extensions.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together in the app package to construct
the ledger. Every extension receives an Authenticator in its
constructor instead of importing the signature module directly.
*/
package x
