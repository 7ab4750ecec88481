/*
Package cash defines a simple wallet implementation storing a set of
coins per address.

It provides a Controller interface to move and issue coins, used both
by the SendMsg handler in this package and by other extensions that
need to settle balances, such as contract treasuries.
*/
package cash
