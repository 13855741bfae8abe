// Package interp renders form programs into detached field elements and
// dispatches button clicks to named callbacks on a caller-supplied
// Controller.
//
// Render is stateless: every call produces a fresh Form owned by the caller.
// Each recognised descriptor becomes one Field (StringField, PasswordField or
// ButtonField) in program order; descriptors of any other type are skipped and
// reported as diagnostics. Button clicks read the live values of the fields
// named in the descriptor's args, omit names the form did not render, and call
// the matching Controller callback. A missing callback is not an error: the
// form surfaces a notice through its Notifier and dispatches nothing.
//
// Hosts integrate through two small capabilities: a Notifier that shows
// messages to the user and a Mount that attaches a rendered Form to a display
// region, replacing whatever was mounted before.
package interp
