/*
Package errors implements custom error interfaces for soteria.

The idea is to reuse as many errors from this package as possible and
define custom package errors when absolutely necessary. Errors are
registered with a unique code so that the result of processing any
transaction can be transported over the ABCI boundary without losing
the error kind.

Use Register to declare a new root error, Wrap/Wrapf to attach
context to an error on its way up the stack, and the root error's Is
method to test what kind of failure occurred:

  if multisig.ErrNotMember.Is(err) {
      ...
  }
*/
package errors
