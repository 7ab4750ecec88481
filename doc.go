/*
Package soteria defines all common interfaces that connect the
various subpackages of the multisig authorization engine, as well as
implementations of some of the simpler components (when interfaces
would be too much overhead).

The root package knows nothing about the domain. It provides the
contracts that the host environment implements (key-value storage,
authenticated caller identities carried in the request context) and
that the extensions under x/ build upon (messages, transactions,
handlers, decorators).

We pass context through context.Context between app, middleware, and
handlers. To do so, soteria defines some common keys to store info,
such as block height and chain id. Each extension, such as x/multisig,
may add its own keys to enrich the context with specific data.
*/
package soteria
