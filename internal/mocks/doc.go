// Package mocks provides hand-written test doubles for the store and
// auth interfaces. They are deliberately simple: fixed return values or
// an in-memory map, no mocking framework.
package mocks
