/*

Package weave defines interfaces used throughout the app, such as: storage,
transactions, handlers and conditions. It also contains helpers to work with
context, time and derived (keyless) conditions.
Look into this package to get an brief overview of design decisions made around
interfaces and extension building blocks.

*/

package weave
