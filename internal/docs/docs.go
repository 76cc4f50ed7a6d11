package docs

import (
	"embed"
	"net/http"
)

// Spec OpenAPI y UI embebidas en el binario: la documentación viaja con la
// versión exacta del servicio que la sirve.
//
//go:embed openapi.yaml swagger.html
var fs embed.FS

// OpenAPIHandler sirve la spec OpenAPI del API de punto de venta.
func OpenAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := fs.ReadFile("openapi.yaml")
		if err != nil {
			http.Error(w, "openapi not found", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}

// SwaggerUIHandler sirve la página de Swagger UI.
func SwaggerUIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := fs.ReadFile("swagger.html")
		if err != nil {
			http.Error(w, "swagger ui not found", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}
