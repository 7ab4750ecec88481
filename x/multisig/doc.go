/*
Package multisig implements a multi-party authorization engine.

A Contract holds a member set and an approval threshold. Any current
member can create a Proposal carrying a payload: a treasury transfer,
a member set update, or a raw instruction. Members vote on the
proposal; the member set and threshold are frozen into the proposal at
creation time so that later contract changes cannot affect in-flight
decisions.

Votes are tallied eagerly. The moment the approval count reaches the
frozen threshold the proposal becomes Approved. If enough members
reject that the threshold can no longer be reached, the proposal
becomes Rejected. An Approved proposal is applied through the execute
path exactly once, by a member, and only then mutates protected state
such as the contract treasury.

The signer that creates a contract becomes its admin. The admin can
cancel any open proposal and toggle an emergency pause flag that
blocks proposal creation, voting and execution. A proposer can always
retract their own open proposal.
*/
package multisig
