package logging

// Network/URL syntax helpers for callers that validate addresses before
// logging or dialing. These share the package validator instance and are
// independent of the persistence pipeline.

// IsValidIP reports whether s is a syntactically valid IPv4 or IPv6 address.
func IsValidIP(s string) bool {
	return IsValidIPv4(s) || IsValidIPv6(s)
}

// IsValidIPv4 reports whether s is a syntactically valid IPv4 address.
func IsValidIPv4(s string) bool {
	return sharedValidator().Var(s, "ipv4") == nil
}

// IsValidIPv6 reports whether s is a syntactically valid IPv6 address.
func IsValidIPv6(s string) bool {
	return sharedValidator().Var(s, "ipv6") == nil
}

// IsValidURL reports whether s parses as a URL with a scheme.
func IsValidURL(s string) bool {
	return sharedValidator().Var(s, "url") == nil
}
