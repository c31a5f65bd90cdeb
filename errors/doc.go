/*
Package errors defines the error kinds shared by all extensions.

Each kind is registered once with a unique code using Register, extensions
register their own kinds in their reserved code range. Any other error is
created by wrapping a kind with Wrap or Wrapf, which adds context and records
a stack trace at the innermost wrap. Use the kind Is method to test an error
of any depth, for example

	if errors.ErrNotFound.Is(err) {
		// no such escrow
	}

Printing an error with %+v includes the stack trace, %s only the message.
*/
package errors
