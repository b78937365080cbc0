// Package seed loads YAML fixtures into the registry.
//
// A fixture lists records per kind, each with an optional ref label, and
// membership pairs by label:
//
//	complexes:
//	  - ref: site1
//	    name: Site-1
//	steps:
//	  - ref: design
//	    name: Design
//	objects:
//	  - ref: unit7
//	    complex: site1
//	    step: design
//	    name: Unit-7
//	    date_start: 2024-01-15
//	employees:
//	  - ref: smith
//	    name: J. Smith
//	links:
//	  object_employee:
//	    - object: unit7
//	      employee: smith
//
// Records are inserted parents first inside a single transaction.
package seed
