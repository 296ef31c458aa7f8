// Package domain contains the core business entities and value objects
// of the application: the commit and README request shapes, the
// structured analysis produced by the analyze phase, and their
// validation rules. It is independent of any delivery mechanism.
package domain
