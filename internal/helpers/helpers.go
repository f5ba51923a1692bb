package helpers

import "strings"

func StringTrim(s string) string {
	return strings.TrimSpace(s)
}

// PostalAddress is the canned result of the postal lookup stub.
type PostalAddress struct {
	PostalCode string `json:"postal_code"`
	StreetName string `json:"street_name"`
	City       string `json:"city"`
}

// cannedAddresses stands in for the real postal-code provider. The lookup is
// an external collaborator; the platform only needs a street suggestion for
// the booking form.
var cannedAddresses = map[string]PostalAddress{
	"018956": {PostalCode: "018956", StreetName: "Marina Boulevard", City: "Singapore"},
	"049315": {PostalCode: "049315", StreetName: "Raffles Place", City: "Singapore"},
	"123456": {PostalCode: "123456", StreetName: "Main St", City: "Singapore"},
	"238801": {PostalCode: "238801", StreetName: "Orchard Road", City: "Singapore"},
}

// LookupPostal returns the canned address for a postal code, if known.
func LookupPostal(code string) (PostalAddress, bool) {
	addr, ok := cannedAddresses[StringTrim(code)]
	return addr, ok
}
