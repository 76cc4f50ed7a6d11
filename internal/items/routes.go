package items

import "github.com/go-chi/chi/v5"

// RegisterRoutes registra las rutas públicas del punto de venta.
// Mantener esto separado hace que main.go no crezca sin control.
func RegisterRoutes(route chi.Router, handler *Handler) {
	route.Route("/items", func(route chi.Router) {
		route.Get("/", handler.List)
		route.Get("/scan", handler.Scan)
		route.Get("/barcode/{barcode}", handler.BarcodeProbe)
		route.Post("/{id}/purchase", handler.StartPurchase)
	})
	route.Post("/checkout/pay", handler.Pay)
}

// RegisterAdminRoutes registra las rutas de administración de inventario.
// El caller las monta detrás del middleware de sesión admin.
func RegisterAdminRoutes(route chi.Router, handler *Handler) {
	route.Route("/items", func(route chi.Router) {
		route.Post("/", handler.Create)
		route.Get("/{id}", handler.GetByID)
		route.Put("/{id}", handler.Put)
		route.Delete("/{id}", handler.Delete)
		route.Post("/{id}/refund", handler.Refund)
	})
	route.Get("/barcodes/new", handler.NewBarcode)
}
