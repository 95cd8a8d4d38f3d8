// Package providerfactory maps provider identifiers to client constructors.
package providerfactory
