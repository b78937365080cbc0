// Package schema owns the lifecycle of the registry database and the rules
// for deleting rows together with their dependents.
//
// Bootstrap applies the embedded migrations from the db package. Cascade
// walks the rule graph returned by Rules against an Executor; the gorm store
// supplies one bound to the transaction of the delete.
package schema
