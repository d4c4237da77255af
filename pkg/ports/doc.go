/*
Package ports defines the interfaces between the solver core and its
pluggable infrastructure. Adapters (see pkg/adapters) provide concrete
implementations; the contract test helpers in this package verify that any
implementation honors the interface semantics.
*/
package ports
