/*
Package app assembles handlers into a running application. It provides
a Router that dispatches messages by path, and a Decorators chain that
wraps the router with cross cutting middleware such as logging,
recovery and savepoints.
*/
package app
