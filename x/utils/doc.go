/*
Package utils provides the decorators wrapped around every transaction,
whatever its message. They log and measure the outcome and turn a panic into
a regular error.
*/
package utils
