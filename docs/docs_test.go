package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDocs(t *testing.T) {
	for _, name := range []string{"report", "archive"} {
		t.Run(name, func(t *testing.T) {
			doc, err := swag.ReadDoc(name)
			if err != nil {
				t.Fatalf("ReadDoc: %v", err)
			}

			var parsed struct {
				Swagger string         `json:"swagger"`
				Paths   map[string]any `json:"paths"`
			}
			if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
				t.Fatalf("document is not valid json: %v", err)
			}
			if parsed.Swagger != "2.0" || parsed.Paths["/reports"] == nil {
				t.Errorf("unexpected document: %+v", parsed)
			}
		})
	}
}
