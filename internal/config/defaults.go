// Package config provides configuration handling for xdrgen.
package config

// DefaultLessInfoTypes returns the type names the openapi backend renders
// as plain strings instead of schema references.
func DefaultLessInfoTypes() []string {
	return []string{"accountid", "balanceid"}
}

// DefaultOpenAPI returns default openapi backend options.
func DefaultOpenAPI() OpenAPI {
	return OpenAPI{
		LessInfoTypes: DefaultLessInfoTypes(),
		Title:         "xdr",
		Version:       "1.0.0",
	}
}
