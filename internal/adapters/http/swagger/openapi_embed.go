package swagger

import "embed"

// OpenAPI contains the embedded OpenAPI YAML specification.
//
//go:embed openapi.yaml
var OpenAPI []byte

// Assets holds the ReDoc bundle when it is vendored into static/.
//
//go:embed static
var Assets embed.FS

// redocBundle is the bundle path inside Assets.
const redocBundle = "static/redoc.standalone.js"
