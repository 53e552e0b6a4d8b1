package docs

import _ "embed"

// OpenAPISpec holds the raw OpenAPI description served at /swagger/openapi.yaml.
//
//go:embed openapi.yaml
var OpenAPISpec []byte
