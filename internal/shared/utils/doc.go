// Package utils holds request validation helpers and size limits shared by
// the HTTP layer.
package utils
