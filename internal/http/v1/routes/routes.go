package routes

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ctfkit/teapot-webservice/internal/http/v1/hello"
)

// Prefix is the mount point of every API operation.
const Prefix = "/api"

// Register wires all API operations under Prefix.
func Register(api huma.API) {
	grp := huma.NewGroup(api, Prefix)
	hello.Register(grp)
}

// Config returns the huma configuration for the service API.
//
// Responses are compact JSON with no $schema field or describedBy link, so
// the hello body is byte-stable. JSON is the only format: clients asking for
// anything else get JSON. With docs disabled huma registers no routes of its
// own and every other path falls through to the static files.
func Config(version string, docs bool) huma.Config {
	cfg := huma.DefaultConfig("Teapot Webservice API", version)
	cfg.CreateHooks = nil
	cfg.Transformers = nil
	cfg.OpenAPI.OnAddOperation = nil
	cfg.Formats = map[string]huma.Format{
		"application/json": compactJSON,
		"json":             compactJSON,
	}
	cfg.DefaultFormat = "application/json"

	if docs {
		cfg.OpenAPIPath = Prefix + "/openapi"
		cfg.DocsPath = Prefix + "/docs"
		cfg.SchemasPath = Prefix + "/schemas"
	} else {
		cfg.OpenAPIPath = ""
		cfg.DocsPath = ""
		cfg.SchemasPath = ""
	}
	return cfg
}

var compactJSON = huma.Format{
	Marshal: func(w io.Writer, v any) error {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return err
		}
		_, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
		return err
	},
	Unmarshal: json.Unmarshal,
}
