/*
Package x holds the authentication plumbing shared by all extensions, along
with the extensions themselves in subpackages.

Handlers never inspect transaction signatures directly. They receive an
Authenticator and ask it which conditions are fulfilled in the current
context. This keeps extensions composable: the same handler works whether
authorization came from a signature, a multi-party contract, or a test
double.
*/
package x
