// Package workflows provides high-level orchestration for cipherlab operations.
//
// Workflows coordinate the corpus, the secrets core, artifact persistence
// and the audit trail to implement complete features. Each workflow handles
// one operation's business logic, independent of transport concerns: the
// cmd/ package and the HTTP server both call into the same Runner.
//
// # Available Workflows
//
//   - FetchKey: the hex bundle key for an identity
//   - IssueExcerpt: the enciphered excerpt assigned to an identity
//   - IssueBundle: the encrypted credential bundle for an identity
//   - CheckExcerpt: whether a guess equals the identity's excerpt
//   - CheckPassword: whether a guess equals the identity's password
//   - OpenBundle, Solve: instructor tools that undo a bundle or a cipher
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package. Identity
// validation always runs first, so ErrInvalidIdentity is reported before any
// corpus or key work happens.
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter
// and return early if it is already done.
package workflows
