package domain

// AvailabilityResult is one entry of the inventory service's answer. The
// remote is authoritative only for the codes it actually returns; a requested
// code missing from the response means its availability is unknown.
type AvailabilityResult struct {
	SKUCode string
	InStock bool
}
